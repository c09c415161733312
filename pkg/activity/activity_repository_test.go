package activity

import (
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/mongostore/mongotest"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushViewedPipeline(t *testing.T) {
	repo := NewActivityRepository(mongotest.Database(t))
	ctx := context.Background()
	require.NoError(t, repo.InitActivity(ctx, "u1"))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < entities.MaxViewedHistory+10; i++ {
		entry := entities.ViewedEntry{Type: "dish", ID: fmt.Sprintf("d%02d", i), ViewedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.PushViewed(ctx, "u1", entry, entities.MaxViewedHistory))
	}
	// seeing d55 again moves it to the front instead of duplicating it
	again := entities.ViewedEntry{Type: "dish", ID: "d55", ViewedAt: base.Add(time.Hour * 5)}
	require.NoError(t, repo.PushViewed(ctx, "u1", again, entities.MaxViewedHistory))
	// same id with another type is a different entry
	recipe := entities.ViewedEntry{Type: "recipe", ID: "d59", ViewedAt: base.Add(time.Hour * 6)}
	require.NoError(t, repo.PushViewed(ctx, "u1", recipe, entities.MaxViewedHistory))

	got, err := repo.GetActivity(ctx, "u1")
	require.NoError(t, err)
	viewed := got.ViewedDishes
	require.Len(t, viewed, entities.MaxViewedHistory)
	assert.Equal(t, "recipe", viewed[0].Type)
	assert.Equal(t, "d59", viewed[0].ID)
	assert.Equal(t, "d55", viewed[1].ID)
	assert.Equal(t, "d59", viewed[2].ID)
	assert.Equal(t, "dish", viewed[2].Type)

	seen := map[string]bool{}
	for i, v := range viewed {
		key := v.Type + "/" + v.ID
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
		if i > 0 {
			assert.False(t, v.ViewedAt.After(viewed[i-1].ViewedAt), "entry %d is newer than its predecessor", i)
		}
	}
}

func TestPushViewedUpsertsMissingDocument(t *testing.T) {
	repo := NewActivityRepository(mongotest.Database(t))
	ctx := context.Background()

	entry := entities.ViewedEntry{Type: "recipe", ID: "r1", ViewedAt: time.Now().UTC()}
	require.NoError(t, repo.PushViewed(ctx, "fresh", entry, entities.MaxViewedHistory))

	got, err := repo.GetActivity(ctx, "fresh")
	require.NoError(t, err)
	require.Len(t, got.ViewedDishes, 1)
	assert.Equal(t, "r1", got.ViewedDishes[0].ID)
}

func TestCookedAndFavoritesAreSets(t *testing.T) {
	repo := NewActivityRepository(mongotest.Database(t))
	ctx := context.Background()
	require.NoError(t, repo.InitActivity(ctx, "u1"))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AddCooked(ctx, "u1", "d1"))
		require.NoError(t, repo.AddFavorite(ctx, "u1", "d2"))
	}
	require.NoError(t, repo.AddCooked(ctx, "u1", "d3"))

	got, err := repo.GetActivity(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"d1", "d3"}, got.CookedDishes)
	assert.Equal(t, []string{"d2"}, got.FavoriteDishes)

	require.NoError(t, repo.RemoveFavorite(ctx, "u1", "d2"))
	got, err = repo.GetActivity(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.FavoriteDishes)
}

func TestGetActivityUnknownUser(t *testing.T) {
	repo := NewActivityRepository(mongotest.Database(t))

	_, err := repo.GetActivity(context.Background(), "nobody")
	assert.ErrorIs(t, err, entities.ErrRecordNotFound)
}
