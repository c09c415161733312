package dish

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/metrics"
	"Cook-App-Backend/internal/utils/storage"
	"Cook-App-Backend/pkg/activity"
	"Cook-App-Backend/pkg/notification"
	"Cook-App-Backend/pkg/recipe"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type (
	DishService interface {
		CreateDish(ctx context.Context, ownerID string, req domain.CreateDishRequest) (domain.DishResponse, error)
		CreateDishWithRecipe(ctx context.Context, ownerID string, req domain.CreateDishWithRecipeRequest) (domain.DishWithRecipeResponse, error)
		RateDish(ctx context.Context, dishID string, stars int) (domain.RatingResponse, error)
		ToggleFavorite(ctx context.Context, dishID string, userID string) (domain.FavoriteResponse, error)
		GetDish(ctx context.Context, dishID string) (domain.DishResponse, error)
		ListDishes(ctx context.Context, skip int, limit int) ([]domain.DishResponse, error)
		SuggestToday(ctx context.Context) ([]domain.DishResponse, error)
		GetDishesByUser(ctx context.Context, userID string, limit int) ([]domain.DishResponse, error)
		Cleanup(ctx context.Context) (domain.CleanupResponse, error)
		MigrateLegacyImages(ctx context.Context) (domain.MigrationResponse, error)
	}

	dishService struct {
		dishRepository      DishRepository
		recipeRepository    recipe.RecipeRepository
		activityRepository  activity.ActivityRepository
		notificationService notification.NotificationService
		media               storage.MediaStore
		recorder            metrics.Recorder
		logger              *zap.Logger
	}
)

func NewDishService(
	dishRepository DishRepository,
	recipeRepository recipe.RecipeRepository,
	activityRepository activity.ActivityRepository,
	notificationService notification.NotificationService,
	media storage.MediaStore,
	recorder metrics.Recorder,
	logger *zap.Logger,
) DishService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dishService{
		dishRepository:      dishRepository,
		recipeRepository:    recipeRepository,
		activityRepository:  activityRepository,
		notificationService: notificationService,
		media:               media,
		recorder:            recorder,
		logger:              logger,
	}
}

// CreateDish uploads the optional image first. A failed upload fails the
// whole call before anything is written to the store.
func (s *dishService) CreateDish(ctx context.Context, ownerID string, req domain.CreateDishRequest) (domain.DishResponse, error) {
	dish, err := s.newDish(ctx, ownerID, req.Name, req.Ingredients, req.CookingTime, req.ImageB64, req.ImageMime)
	if err != nil {
		return domain.DishResponse{}, err
	}

	if err := s.dishRepository.CreateDish(ctx, dish); err != nil {
		s.discardImage(ctx, dish.ImageURL)
		return domain.DishResponse{}, domain.DependencyFailure(domain.MessageFailedCreateDish, err)
	}

	if err := s.activityRepository.AddCreatedDish(ctx, ownerID, dish.ID.Hex()); err != nil {
		s.logger.Warn("failed to record created dish", zap.String("user_id", ownerID), zap.Error(err))
	}
	s.recorder.RecordEvent("dish_created")
	return ToDishResponse(dish), nil
}

// CreateDishWithRecipe inserts the dish, then the recipe pointing at it, then
// links the dish back. Any failure after the dish insert removes what was
// written so no half-created pair survives.
func (s *dishService) CreateDishWithRecipe(ctx context.Context, ownerID string, req domain.CreateDishWithRecipeRequest) (domain.DishWithRecipeResponse, error) {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = entities.DifficultyMedium
	}
	if !domain.ValidDifficulty(difficulty) {
		return domain.DishWithRecipeResponse{}, domain.ErrInvalidDifficulty
	}
	if len(req.Instructions) == 0 {
		return domain.DishWithRecipeResponse{}, domain.ErrInstructionsRequired
	}

	dish, err := s.newDish(ctx, ownerID, req.Name, req.Ingredients, req.CookingTime, req.ImageB64, req.ImageMime)
	if err != nil {
		return domain.DishWithRecipeResponse{}, err
	}
	if err := s.dishRepository.CreateDish(ctx, dish); err != nil {
		s.discardImage(ctx, dish.ImageURL)
		return domain.DishWithRecipeResponse{}, domain.DependencyFailure(domain.MessageFailedCreateDish, err)
	}
	dishID := dish.ID.Hex()

	rec := &entities.Recipe{
		Name:         recipeName(req.RecipeName, dish.Name),
		Description:  req.RecipeDescription,
		Ingredients:  recipeIngredients(req.RecipeIngredients, dish.Ingredients),
		Difficulty:   difficulty,
		Instructions: req.Instructions,
		ImageURL:     dish.ImageURL,
		CreatorID:    ownerID,
		DishID:       dishID,
		Ratings:      []int{},
		CreatedAt:    dish.CreatedAt,
	}
	if err := s.recipeRepository.CreateRecipe(ctx, rec); err != nil {
		s.removeDish(ctx, dishID)
		s.discardImage(ctx, dish.ImageURL)
		return domain.DishWithRecipeResponse{}, domain.DependencyFailure(domain.MessageFailedCreateDishWithRecipe, err)
	}
	recipeID := rec.ID.Hex()

	if err := s.dishRepository.SetDishRecipe(ctx, dishID, recipeID); err != nil {
		if delErr := s.recipeRepository.DeleteRecipe(ctx, recipeID); delErr != nil {
			s.logger.Error("failed to remove recipe after link failure", zap.String("recipe_id", recipeID), zap.Error(delErr))
		}
		s.removeDish(ctx, dishID)
		s.discardImage(ctx, dish.ImageURL)
		return domain.DishWithRecipeResponse{}, domain.Wrap(domain.KindDependency, domain.ErrDishLinkFailed.Message, err)
	}

	if err := s.activityRepository.AddCreatedDish(ctx, ownerID, dishID); err != nil {
		s.logger.Warn("failed to record created dish", zap.String("user_id", ownerID), zap.Error(err))
	}
	if err := s.activityRepository.AddCreatedRecipe(ctx, ownerID, recipeID); err != nil {
		s.logger.Warn("failed to record created recipe", zap.String("user_id", ownerID), zap.Error(err))
	}
	s.recorder.RecordEvent("dish_with_recipe_created")

	return domain.DishWithRecipeResponse{
		DishID:     dishID,
		RecipeID:   recipeID,
		DishName:   dish.Name,
		RecipeName: rec.Name,
		ImageURL:   dish.ImageURL,
	}, nil
}

func (s *dishService) RateDish(ctx context.Context, dishID string, stars int) (domain.RatingResponse, error) {
	if err := domain.ValidateStars(stars); err != nil {
		return domain.RatingResponse{}, err
	}
	if !primitive.IsValidObjectID(dishID) {
		return domain.RatingResponse{}, domain.ErrInvalidID
	}

	dish, err := s.dishRepository.AddDishRating(ctx, dishID, stars)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return domain.RatingResponse{}, domain.ErrDishNotFound
		}
		return domain.RatingResponse{}, domain.DependencyFailure(domain.MessageFailedRateDish, err)
	}

	s.recorder.RecordEvent("dish_rated")
	return domain.RatingResponse{
		ID:            dish.ID.Hex(),
		AverageRating: dish.AverageRating,
		RatingCount:   len(dish.Ratings),
	}, nil
}

// ToggleFavorite flips the dish's liked_by entry and the user's
// favorite_dishes entry together, dish side first.
func (s *dishService) ToggleFavorite(ctx context.Context, dishID string, userID string) (domain.FavoriteResponse, error) {
	if !primitive.IsValidObjectID(dishID) {
		return domain.FavoriteResponse{}, domain.ErrInvalidID
	}
	current, err := s.findDish(ctx, dishID)
	if err != nil {
		return domain.FavoriteResponse{}, err
	}

	removing := slices.Contains(current.LikedBy, userID)
	var updated *entities.Dish

	dishSide := func() error {
		var err error
		if removing {
			updated, err = s.dishRepository.RemoveDishLike(ctx, dishID, userID)
		} else {
			updated, err = s.dishRepository.AddDishLike(ctx, dishID, userID)
		}
		if errors.Is(err, entities.ErrRecordNotFound) {
			return domain.ErrDishNotFound
		}
		if err != nil {
			return domain.DependencyFailure(domain.MessageFailedToggleFavorite, err)
		}
		return nil
	}
	userSide := func() error {
		if removing {
			return s.activityRepository.RemoveFavorite(ctx, userID, dishID)
		}
		return s.activityRepository.AddFavorite(ctx, userID, dishID)
	}
	onPartial := func(err error) {
		s.logger.Error("favorite left asymmetric",
			zap.String("dish_id", dishID),
			zap.String("user_id", userID),
			zap.Bool("removing", removing),
			zap.Error(err),
		)
	}

	if err := domain.TwoPhase(dishSide, userSide, onPartial); err != nil {
		return domain.FavoriteResponse{}, err
	}

	likeCount := len(updated.LikedBy)
	if !removing && updated.CreatorID != "" && domain.IsMilestone(likeCount) {
		if err := s.notificationService.NotifyFavoriteMilestone(ctx, updated.CreatorID, updated.Name, likeCount); err != nil {
			s.logger.Error("failed to notify favorite milestone", zap.String("dish_id", dishID), zap.Error(err))
		}
	}

	return domain.FavoriteResponse{
		DishID:    dishID,
		Favorited: !removing,
		LikeCount: likeCount,
	}, nil
}

func (s *dishService) GetDish(ctx context.Context, dishID string) (domain.DishResponse, error) {
	if !primitive.IsValidObjectID(dishID) {
		return domain.DishResponse{}, domain.ErrInvalidID
	}
	dish, err := s.findDish(ctx, dishID)
	if err != nil {
		return domain.DishResponse{}, err
	}
	return ToDishResponse(dish), nil
}

// clampDishLimit defaults a missing limit and caps an oversized one.
func clampDishLimit(limit int) int {
	if limit <= 0 {
		return domain.DefaultDishLimit
	}
	return min(limit, domain.MaxDishLimit)
}

func (s *dishService) ListDishes(ctx context.Context, skip int, limit int) ([]domain.DishResponse, error) {
	dishes, err := s.dishRepository.ListDishes(ctx, max(skip, 0), clampDishLimit(limit))
	if err != nil {
		return nil, domain.DependencyFailure(domain.MessageFailedGetDishes, err)
	}
	return ToDishResponses(dishes), nil
}

func (s *dishService) SuggestToday(ctx context.Context) ([]domain.DishResponse, error) {
	return s.ListDishes(ctx, 0, domain.SuggestTodayLimit)
}

func (s *dishService) GetDishesByUser(ctx context.Context, userID string, limit int) ([]domain.DishResponse, error) {
	dishes, err := s.dishRepository.GetDishesByCreator(ctx, userID, clampDishLimit(limit))
	if err != nil {
		return nil, domain.DependencyFailure(domain.MessageFailedGetDishes, err)
	}
	return ToDishResponses(dishes), nil
}

func (s *dishService) Cleanup(ctx context.Context) (domain.CleanupResponse, error) {
	deleted, err := s.dishRepository.DeleteUnnamedDishes(ctx)
	if err != nil {
		return domain.CleanupResponse{}, domain.DependencyFailure(domain.MessageFailedCleanup, err)
	}
	s.logger.Info("dish cleanup finished", zap.Int64("deleted", deleted))
	return domain.CleanupResponse{DeletedCount: deleted}, nil
}

// MigrateLegacyImages moves inline base64 images into the media store. A row
// that fails keeps its legacy fields and is counted, the rest carry on.
func (s *dishService) MigrateLegacyImages(ctx context.Context) (domain.MigrationResponse, error) {
	var res domain.MigrationResponse

	dishes, err := s.dishRepository.GetDishesWithLegacyImage(ctx)
	if err != nil {
		return res, domain.DependencyFailure(domain.MessageFailedMigrateImages, err)
	}
	for _, d := range dishes {
		id := d.ID.Hex()
		if err := s.migrateOne(ctx, d.ImageB64, d.ImageMime, domain.DishImageFolder, func(url string) error {
			return s.dishRepository.SetDishImageURL(ctx, id, url)
		}); err != nil {
			s.logger.Warn("failed to migrate dish image", zap.String("dish_id", id), zap.Error(err))
			res.Failed++
			continue
		}
		res.DishesMigrated++
	}

	recipes, err := s.recipeRepository.GetRecipesWithLegacyImage(ctx)
	if err != nil {
		return res, domain.DependencyFailure(domain.MessageFailedMigrateImages, err)
	}
	for _, r := range recipes {
		id := r.ID.Hex()
		if err := s.migrateOne(ctx, r.ImageB64, r.ImageMime, domain.RecipeImageFolder, func(url string) error {
			return s.recipeRepository.SetRecipeImageURL(ctx, id, url)
		}); err != nil {
			s.logger.Warn("failed to migrate recipe image", zap.String("recipe_id", id), zap.Error(err))
			res.Failed++
			continue
		}
		res.RecipesMigrated++
	}

	s.logger.Info("legacy image migration finished",
		zap.Int("dishes", res.DishesMigrated),
		zap.Int("recipes", res.RecipesMigrated),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

func (s *dishService) migrateOne(ctx context.Context, encoded string, mime string, folder string, save func(url string) error) error {
	url, err := storage.UploadBase64(ctx, s.media, encoded, mime, folder)
	if err != nil {
		return err
	}
	if url == "" {
		return domain.ErrInvalidImage
	}
	return save(url)
}

func (s *dishService) newDish(ctx context.Context, ownerID string, name string, ingredients []string, cookingTime int, imageB64 string, imageMime string) (*entities.Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrDishNameRequired
	}
	if cookingTime <= 0 {
		return nil, domain.ErrCookingTimeMissing
	}
	if ingredients == nil {
		ingredients = []string{}
	}

	imageURL, err := storage.UploadBase64(ctx, s.media, imageB64, imageMime, domain.DishImageFolder)
	if err != nil {
		return nil, err
	}

	return &entities.Dish{
		Name:        name,
		ImageURL:    imageURL,
		Ingredients: ingredients,
		CookingTime: cookingTime,
		CreatorID:   ownerID,
		Ratings:     []int{},
		LikedBy:     []string{},
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (s *dishService) findDish(ctx context.Context, dishID string) (*entities.Dish, error) {
	dish, err := s.dishRepository.GetDishByID(ctx, dishID)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return nil, domain.ErrDishNotFound
		}
		return nil, domain.DependencyFailure(domain.MessageFailedGetDishDetail, err)
	}
	return dish, nil
}

func (s *dishService) removeDish(ctx context.Context, dishID string) {
	if err := s.dishRepository.DeleteDish(ctx, dishID); err != nil {
		s.logger.Error("failed to remove dish during rollback", zap.String("dish_id", dishID), zap.Error(err))
	}
}

func (s *dishService) discardImage(ctx context.Context, imageURL string) {
	if imageURL == "" {
		return
	}
	if err := s.media.DeleteFile(ctx, s.media.GetObjectKeyFromLink(imageURL)); err != nil {
		s.logger.Warn("failed to discard uploaded image", zap.String("url", imageURL), zap.Error(err))
	}
}

func recipeName(name string, dishName string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return "How to make " + dishName
}

func recipeIngredients(req []domain.RecipeIngredientRequest, dishIngredients []string) []entities.RecipeIngredient {
	out := make([]entities.RecipeIngredient, 0, len(req))
	for _, ing := range req {
		out = append(out, entities.RecipeIngredient{Name: ing.Name, Quantity: ing.Quantity})
	}
	if len(out) > 0 {
		return out
	}
	for _, name := range dishIngredients {
		out = append(out, entities.RecipeIngredient{Name: name})
	}
	return out
}

func ToDishResponse(d *entities.Dish) domain.DishResponse {
	ingredients := d.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	likedBy := d.LikedBy
	if likedBy == nil {
		likedBy = []string{}
	}
	return domain.DishResponse{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		ImageURL:      d.ImageURL,
		Ingredients:   ingredients,
		CookingTime:   d.CookingTime,
		AverageRating: d.AverageRating,
		RatingCount:   len(d.Ratings),
		LikedBy:       likedBy,
		CreatorID:     d.CreatorID,
		RecipeID:      d.RecipeID,
		CreatedAt:     d.CreatedAt,
	}
}

func ToDishResponses(dishes []*entities.Dish) []domain.DishResponse {
	out := make([]domain.DishResponse, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, ToDishResponse(d))
	}
	return out
}

func ToDishSummary(d *entities.Dish) domain.DishSummary {
	return domain.DishSummary{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		ImageURL:      d.ImageURL,
		CookingTime:   d.CookingTime,
		AverageRating: d.AverageRating,
	}
}
