package search

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/entities"
	"Cook-App-Backend/pkg/dish"
	"Cook-App-Backend/pkg/ingredient"
	"Cook-App-Backend/pkg/recipe"
	"Cook-App-Backend/pkg/user"
	"context"
	"strings"

	"go.uber.org/zap"
)

type (
	SearchService interface {
		SearchIngredients(ctx context.Context, query string) ([]domain.IngredientResponse, error)
		SearchUsers(ctx context.Context, query string, excludeUserID string) ([]domain.UserResponse, error)
		SearchDishes(ctx context.Context, query string) ([]domain.DishSummary, error)
		SearchRecipes(ctx context.Context, query string) ([]domain.RecipeResponse, error)
		DishesByTime(ctx context.Context, maxTime int) ([]domain.DishSummary, error)
		DishesByTimeAndRating(ctx context.Context, maxTime int, minRating float64) ([]domain.DishSummary, error)
		RecipesByDifficulty(ctx context.Context, difficulty string) ([]domain.RecipeResponse, error)
		SearchAll(ctx context.Context, query string, excludeUserID string) (domain.CombinedSearchResponse, error)
	}

	searchService struct {
		ingredientService ingredient.IngredientService
		userService       user.UserService
		dishRepository    dish.DishRepository
		recipeRepository  recipe.RecipeRepository
		logger            *zap.Logger
	}
)

func NewSearchService(
	ingredientService ingredient.IngredientService,
	userService user.UserService,
	dishRepository dish.DishRepository,
	recipeRepository recipe.RecipeRepository,
	logger *zap.Logger,
) SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &searchService{
		ingredientService: ingredientService,
		userService:       userService,
		dishRepository:    dishRepository,
		recipeRepository:  recipeRepository,
		logger:            logger,
	}
}

func (s *searchService) SearchIngredients(ctx context.Context, query string) ([]domain.IngredientResponse, error) {
	return s.ingredientService.SearchIngredients(ctx, query, domain.SearchLimit)
}

func (s *searchService) SearchUsers(ctx context.Context, query string, excludeUserID string) ([]domain.UserResponse, error) {
	return s.userService.SearchUsers(ctx, query, excludeUserID, domain.SearchLimit)
}

func (s *searchService) SearchDishes(ctx context.Context, query string) ([]domain.DishSummary, error) {
	return s.searchDishes(ctx, query, domain.SearchLimit)
}

func (s *searchService) SearchRecipes(ctx context.Context, query string) ([]domain.RecipeResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidQueryString
	}
	recipes, err := s.recipeRepository.SearchRecipes(ctx, query, domain.SearchLimit)
	if err != nil {
		return nil, domain.DependencyFailure(domain.MessageFailedSearch, err)
	}
	return recipe.ToRecipeResponses(recipes), nil
}

func (s *searchService) DishesByTime(ctx context.Context, maxTime int) ([]domain.DishSummary, error) {
	return s.DishesByTimeAndRating(ctx, maxTime, 0)
}

func (s *searchService) DishesByTimeAndRating(ctx context.Context, maxTime int, minRating float64) ([]domain.DishSummary, error) {
	if maxTime < 1 {
		return nil, domain.ErrInvalidMaxTime
	}
	if minRating < 0 || minRating > domain.MaxStars {
		return nil, domain.ErrInvalidMinRating
	}
	dishes, err := s.dishRepository.FilterDishes(ctx, maxTime, minRating, domain.FilterLimit)
	if err != nil {
		return nil, domain.DependencyFailure(domain.MessageFailedSearch, err)
	}
	return toSummaries(dishes), nil
}

func (s *searchService) RecipesByDifficulty(ctx context.Context, difficulty string) ([]domain.RecipeResponse, error) {
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if !domain.ValidDifficulty(difficulty) {
		return nil, domain.ErrInvalidDifficulty
	}
	recipes, err := s.recipeRepository.GetRecipesByDifficulty(ctx, difficulty, domain.FilterLimit)
	if err != nil {
		return nil, domain.DependencyFailure(domain.MessageFailedSearch, err)
	}
	return recipe.ToRecipeResponses(recipes), nil
}

// SearchAll runs dish, user and ingredient search with a small limit each.
// An ingredient catalog failure is logged and yields no ingredients.
func (s *searchService) SearchAll(ctx context.Context, query string, excludeUserID string) (domain.CombinedSearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.CombinedSearchResponse{}, domain.ErrInvalidQueryString
	}

	dishes, err := s.searchDishes(ctx, query, domain.CombinedSearchLimit)
	if err != nil {
		return domain.CombinedSearchResponse{}, err
	}
	users, err := s.userService.SearchUsers(ctx, query, excludeUserID, domain.CombinedSearchLimit)
	if err != nil {
		return domain.CombinedSearchResponse{}, err
	}
	ingredients, err := s.ingredientService.SearchIngredients(ctx, query, domain.CombinedSearchLimit)
	if err != nil {
		s.logger.Warn("ingredient search failed in combined search", zap.Error(err))
		ingredients = []domain.IngredientResponse{}
	}

	return domain.CombinedSearchResponse{
		Dishes:       dishes,
		Users:        users,
		Ingredients:  ingredients,
		TotalResults: len(dishes) + len(users) + len(ingredients),
	}, nil
}

func (s *searchService) searchDishes(ctx context.Context, query string, limit int) ([]domain.DishSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidQueryString
	}
	dishes, err := s.dishRepository.SearchDishesByName(ctx, query, limit)
	if err != nil {
		return nil, domain.DependencyFailure(domain.MessageFailedSearch, err)
	}
	return toSummaries(dishes), nil
}

func toSummaries(dishes []*entities.Dish) []domain.DishSummary {
	out := make([]domain.DishSummary, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, dish.ToDishSummary(d))
	}
	return out
}
