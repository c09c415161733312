package recipe

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/metrics"
	"Cook-App-Backend/internal/utils/storage"
	"Cook-App-Backend/pkg/activity"
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, ownerID string, req domain.CreateRecipeRequest) (domain.RecipeResponse, error)
		RateRecipe(ctx context.Context, recipeID string, stars int) (domain.RatingResponse, error)
		GetRecipe(ctx context.Context, recipeID string) (domain.RecipeResponse, error)
		ListRecipes(ctx context.Context, limit int) ([]domain.RecipeResponse, error)
		GetRecipesByUser(ctx context.Context, userID string, limit int) ([]domain.RecipeResponse, error)
	}

	recipeService struct {
		recipeRepository   RecipeRepository
		activityRepository activity.ActivityRepository
		media              storage.MediaStore
		recorder           metrics.Recorder
		logger             *zap.Logger
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	activityRepository activity.ActivityRepository,
	media storage.MediaStore,
	recorder metrics.Recorder,
	logger *zap.Logger,
) RecipeService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &recipeService{
		recipeRepository:   recipeRepository,
		activityRepository: activityRepository,
		media:              media,
		recorder:           recorder,
		logger:             logger,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, ownerID string, req domain.CreateRecipeRequest) (domain.RecipeResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return domain.RecipeResponse{}, domain.ErrRecipeNameRequired
	}
	if !domain.ValidDifficulty(req.Difficulty) {
		return domain.RecipeResponse{}, domain.ErrInvalidDifficulty
	}
	if len(req.Instructions) == 0 {
		return domain.RecipeResponse{}, domain.ErrInstructionsRequired
	}
	if req.DishID != "" && !primitive.IsValidObjectID(req.DishID) {
		return domain.RecipeResponse{}, domain.ErrInvalidID
	}

	imageURL, err := storage.UploadBase64(ctx, s.media, req.ImageB64, req.ImageMime, domain.RecipeImageFolder)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	ingredients := make([]entities.RecipeIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, entities.RecipeIngredient{Name: ing.Name, Quantity: ing.Quantity})
	}

	recipe := &entities.Recipe{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Ingredients:  ingredients,
		Difficulty:   req.Difficulty,
		Instructions: req.Instructions,
		ImageURL:     imageURL,
		CreatorID:    ownerID,
		DishID:       req.DishID,
		Ratings:      []int{},
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, domain.DependencyFailure(domain.MessageFailedCreateRecipe, err)
	}

	if err := s.activityRepository.AddCreatedRecipe(ctx, ownerID, recipe.ID.Hex()); err != nil {
		s.logger.Warn("failed to record created recipe", zap.String("user_id", ownerID), zap.Error(err))
	}
	s.recorder.RecordEvent("recipe_created")
	return ToRecipeResponse(recipe), nil
}

// RateRecipe validates before touching the store, so a rejected rating
// leaves the recipe unchanged.
func (s *recipeService) RateRecipe(ctx context.Context, recipeID string, stars int) (domain.RatingResponse, error) {
	if err := domain.ValidateStars(stars); err != nil {
		return domain.RatingResponse{}, err
	}
	if !primitive.IsValidObjectID(recipeID) {
		return domain.RatingResponse{}, domain.ErrInvalidID
	}

	recipe, err := s.recipeRepository.AddRecipeRating(ctx, recipeID, stars)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return domain.RatingResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RatingResponse{}, domain.DependencyFailure(domain.MessageFailedRateRecipe, err)
	}

	s.recorder.RecordEvent("recipe_rated")
	return domain.RatingResponse{
		ID:            recipe.ID.Hex(),
		AverageRating: recipe.AverageRating,
		RatingCount:   len(recipe.Ratings),
	}, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, recipeID string) (domain.RecipeResponse, error) {
	if !primitive.IsValidObjectID(recipeID) {
		return domain.RecipeResponse{}, domain.ErrInvalidID
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, domain.DependencyFailure(domain.MessageFailedGetRecipeDetail, err)
	}
	return ToRecipeResponse(recipe), nil
}

func (s *recipeService) ListRecipes(ctx context.Context, limit int) ([]domain.RecipeResponse, error) {
	recipes, err := s.recipeRepository.ListRecipes(ctx, clampLimit(limit))
	if err != nil {
		return nil, domain.DependencyFailure(domain.MessageFailedGetRecipes, err)
	}
	return ToRecipeResponses(recipes), nil
}

func (s *recipeService) GetRecipesByUser(ctx context.Context, userID string, limit int) ([]domain.RecipeResponse, error) {
	recipes, err := s.recipeRepository.GetRecipesByCreator(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, domain.DependencyFailure(domain.MessageFailedGetRecipes, err)
	}
	return ToRecipeResponses(recipes), nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return domain.DefaultRecipeLimit
	}
	if limit > domain.MaxRecipeLimit {
		return domain.MaxRecipeLimit
	}
	return limit
}

func ToRecipeResponse(r *entities.Recipe) domain.RecipeResponse {
	ingredients := make([]domain.RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, domain.RecipeIngredientResponse{Name: ing.Name, Quantity: ing.Quantity})
	}
	ratings := r.Ratings
	if ratings == nil {
		ratings = []int{}
	}
	instructions := r.Instructions
	if instructions == nil {
		instructions = []string{}
	}
	return domain.RecipeResponse{
		ID:            r.ID.Hex(),
		Name:          r.Name,
		Description:   r.Description,
		Ingredients:   ingredients,
		Difficulty:    r.Difficulty,
		Instructions:  instructions,
		ImageURL:      r.ImageURL,
		CreatorID:     r.CreatorID,
		DishID:        r.DishID,
		Ratings:       ratings,
		AverageRating: r.AverageRating,
		CreatedAt:     r.CreatedAt,
	}
}

func ToRecipeResponses(recipes []*entities.Recipe) []domain.RecipeResponse {
	out := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, ToRecipeResponse(r))
	}
	return out
}
