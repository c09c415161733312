package recipe

import (
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/mongostore/mongotest"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRecipeRatingPipeline(t *testing.T) {
	repo := NewRecipeRepository(mongotest.Database(t))
	ctx := context.Background()

	r := &entities.Recipe{Name: "Kaya toast", Difficulty: entities.DifficultyEasy, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateRecipe(ctx, r))

	_, err := repo.AddRecipeRating(ctx, r.ID.Hex(), 5)
	require.NoError(t, err)
	got, err := repo.AddRecipeRating(ctx, r.ID.Hex(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 2}, got.Ratings)
	assert.InDelta(t, 3.5, got.AverageRating, 1e-9)

	byDifficulty, err := repo.GetRecipesByDifficulty(ctx, entities.DifficultyEasy, 10)
	require.NoError(t, err)
	require.Len(t, byDifficulty, 1)
	assert.InDelta(t, 3.5, byDifficulty[0].AverageRating, 1e-9)
}
