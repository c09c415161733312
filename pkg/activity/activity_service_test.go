package activity

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newActivityService() *activityService {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &activityService{
		activityRepository: memory.NewStore(),
		now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
}

func TestLogViewOrdersAndDeduplicates(t *testing.T) {
	svc := newActivityService()
	ctx := context.Background()
	user := "user-1"
	a, b := primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()

	require.NoError(t, svc.LogView(ctx, user, "", a))
	require.NoError(t, svc.LogView(ctx, user, domain.EntityTypeRecipe, a))
	require.NoError(t, svc.LogView(ctx, user, domain.EntityTypeDish, b))
	require.NoError(t, svc.LogView(ctx, user, domain.EntityTypeDish, a))

	viewed, err := svc.GetViewed(ctx, user, 0)
	require.NoError(t, err)
	require.Len(t, viewed, 3)
	assert.Equal(t, domain.ViewedEntryResponse{Type: "dish", ID: a, ViewedAt: viewed[0].ViewedAt}, viewed[0])
	assert.Equal(t, b, viewed[1].ID)
	assert.Equal(t, "recipe", viewed[2].Type)
	assert.True(t, viewed[0].ViewedAt.After(viewed[1].ViewedAt))
}

func TestLogViewKeepsFiftyEntries(t *testing.T) {
	svc := newActivityService()
	ctx := context.Background()

	ids := make([]string, 0, entities.MaxViewedHistory+5)
	for i := 0; i < entities.MaxViewedHistory+5; i++ {
		id := primitive.NewObjectID().Hex()
		ids = append(ids, id)
		require.NoError(t, svc.LogView(ctx, "u", "dish", id))
	}

	act, err := svc.GetActivity(ctx, "u")
	require.NoError(t, err)
	require.Len(t, act.ViewedDishes, entities.MaxViewedHistory)
	assert.Equal(t, ids[len(ids)-1], act.ViewedDishes[0].ID)
	assert.Equal(t, ids[5], act.ViewedDishes[entities.MaxViewedHistory-1].ID)

	few, err := svc.GetViewed(ctx, "u", 3)
	require.NoError(t, err)
	assert.Len(t, few, 3)
}

func TestLogViewValidation(t *testing.T) {
	svc := newActivityService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.LogView(ctx, "u", "video", primitive.NewObjectID().Hex()), domain.ErrInvalidEntityType)
	assert.ErrorIs(t, svc.LogView(ctx, "u", "dish", "xyz"), domain.ErrInvalidID)
}

func TestAddCookedIsASet(t *testing.T) {
	svc := newActivityService()
	ctx := context.Background()
	dish := primitive.NewObjectID().Hex()

	require.NoError(t, svc.AddCooked(ctx, "u", dish))
	require.NoError(t, svc.AddCooked(ctx, "u", dish))

	act, err := svc.GetActivity(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, []string{dish}, act.CookedDishes)

	assert.ErrorIs(t, svc.AddCooked(ctx, "u", "bad"), domain.ErrInvalidID)
}

func TestGetActivityForNewUserIsEmpty(t *testing.T) {
	svc := newActivityService()
	act, err := svc.GetActivity(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, act.FavoriteDishes)
	assert.Empty(t, act.ViewedDishes)
}
