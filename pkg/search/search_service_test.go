package search

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/metrics"
	"Cook-App-Backend/internal/storage/memory"
	"Cook-App-Backend/pkg/ingredient"
	"Cook-App-Backend/pkg/jwt"
	"Cook-App-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type brokenCatalog struct {
	ingredient.IngredientService
}

func (brokenCatalog) SearchIngredients(context.Context, string, int) ([]domain.IngredientResponse, error) {
	return nil, errors.New("catalog offline")
}

type fixture struct {
	store       *memory.Store
	users       user.UserService
	ingredients ingredient.IngredientService
	ctx         context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		store:       store,
		users:       user.NewUserService(store, store, store, store, store, jwt.NewJWTService("test-secret", time.Hour), nil, metrics.Nop{}, zap.NewNop(), "http://localhost"),
		ingredients: ingredient.NewIngredientService(store, nil, time.Minute, zap.NewNop()),
		ctx:         context.Background(),
	}
}

func (f *fixture) service(catalog ingredient.IngredientService) SearchService {
	if catalog == nil {
		catalog = f.ingredients
	}
	return NewSearchService(catalog, f.users, f.store, f.store, zap.NewNop())
}

func (f *fixture) addDish(t *testing.T, name string, cookingTime int, ratings ...int) {
	t.Helper()
	d := &entities.Dish{Name: name, CookingTime: cookingTime, Ratings: ratings, CreatedAt: time.Now()}
	d.AverageRating = entities.AverageRating(ratings)
	require.NoError(t, f.store.CreateDish(f.ctx, d))
}

func (f *fixture) addRecipe(t *testing.T, name string, difficulty string) {
	t.Helper()
	require.NoError(t, f.store.CreateRecipe(f.ctx, &entities.Recipe{Name: name, Difficulty: difficulty, CreatedAt: time.Now()}))
}

func TestDishesByTimeAndRating(t *testing.T) {
	f := newFixture(t)
	f.addDish(t, "Quick omelette", 10, 4, 5)
	f.addDish(t, "Slow stew", 180, 5)
	f.addDish(t, "Instant noodles", 5, 1, 2)
	svc := f.service(nil)

	got, err := svc.DishesByTime(f.ctx, 30)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.DishesByTimeAndRating(f.ctx, 30, 4)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Quick omelette", got[0].Name)
	assert.InDelta(t, 4.5, got[0].AverageRating, 1e-9)

	_, err = svc.DishesByTime(f.ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidMaxTime)

	_, err = svc.DishesByTimeAndRating(f.ctx, 30, 5.5)
	assert.ErrorIs(t, err, domain.ErrInvalidMinRating)
	_, err = svc.DishesByTimeAndRating(f.ctx, 30, -1)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestRecipesByDifficulty(t *testing.T) {
	f := newFixture(t)
	f.addRecipe(t, "Toast", entities.DifficultyEasy)
	f.addRecipe(t, "Souffle", entities.DifficultyHard)
	svc := f.service(nil)

	got, err := svc.RecipesByDifficulty(f.ctx, " Hard ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Souffle", got[0].Name)

	_, err = svc.RecipesByDifficulty(f.ctx, "extreme")
	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
}

func TestSearchRecipesAndDishes(t *testing.T) {
	f := newFixture(t)
	f.addRecipe(t, "Pumpkin soup", entities.DifficultyEasy)
	f.addDish(t, "Pumpkin pie", 60)
	svc := f.service(nil)

	recipes, err := svc.SearchRecipes(f.ctx, "pumpkin")
	require.NoError(t, err)
	assert.Len(t, recipes, 1)

	dishes, err := svc.SearchDishes(f.ctx, "PIE")
	require.NoError(t, err)
	assert.Len(t, dishes, 1)

	_, err = svc.SearchRecipes(f.ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidQueryString)
	_, err = svc.SearchDishes(f.ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQueryString)
}

func TestSearchAllCapsEachSection(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 7; i++ {
		f.addDish(t, fmt.Sprintf("curry %d", i), 20)
		_, err := f.ingredients.CreateIngredient(f.ctx, domain.CreateIngredientRequest{Name: fmt.Sprintf("curry leaf %d", i)})
		require.NoError(t, err)
	}
	me, err := f.users.GetOrCreateUser(f.ctx, domain.Claims{Email: "curry@example.com", SubjectID: "s0"})
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		_, err := f.users.GetOrCreateUser(f.ctx, domain.Claims{Email: fmt.Sprintf("curry%d@example.com", i), SubjectID: fmt.Sprintf("s%d", i+1)})
		require.NoError(t, err)
	}

	res, err := f.service(nil).SearchAll(f.ctx, "curry", me.ID)
	require.NoError(t, err)
	assert.Len(t, res.Dishes, domain.CombinedSearchLimit)
	assert.Len(t, res.Users, domain.CombinedSearchLimit)
	assert.Len(t, res.Ingredients, domain.CombinedSearchLimit)
	assert.Equal(t, 3*domain.CombinedSearchLimit, res.TotalResults)
	for _, u := range res.Users {
		assert.NotEqual(t, me.ID, u.ID)
	}
}

func TestSearchAllToleratesCatalogFailure(t *testing.T) {
	f := newFixture(t)
	f.addDish(t, "Garlic bread", 15)

	res, err := f.service(brokenCatalog{}).SearchAll(f.ctx, "garlic", "")
	require.NoError(t, err)
	assert.Len(t, res.Dishes, 1)
	assert.NotNil(t, res.Ingredients)
	assert.Empty(t, res.Ingredients)
	assert.Equal(t, 1, res.TotalResults)

	_, err = f.service(nil).SearchAll(f.ctx, " ", "")
	assert.ErrorIs(t, err, domain.ErrInvalidQueryString)
}
