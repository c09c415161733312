package dish

import (
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/mongostore"
	"Cook-App-Backend/internal/storage/mongostore/mongotest"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddDishRatingPipeline(t *testing.T) {
	repo := NewDishRepository(mongotest.Database(t))
	ctx := context.Background()

	dish := &entities.Dish{Name: "Laksa", CookingTime: 40, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateDish(ctx, dish))
	id := dish.ID.Hex()

	var got *entities.Dish
	var err error
	for _, stars := range []int{3, 4, 4} {
		got, err = repo.AddDishRating(ctx, id, stars)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{3, 4, 4}, got.Ratings)
	assert.InDelta(t, 11.0/3.0, got.AverageRating, 1e-9)

	_, err = repo.AddDishRating(ctx, primitive.NewObjectID().Hex(), 5)
	assert.ErrorIs(t, err, entities.ErrRecordNotFound)
}

func TestConcurrentRatingsAreAllKept(t *testing.T) {
	repo := NewDishRepository(mongotest.Database(t))
	ctx := context.Background()

	dish := &entities.Dish{Name: "Rendang", CookingTime: 180, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateDish(ctx, dish))

	const raters = 20
	var wg sync.WaitGroup
	for i := 0; i < raters; i++ {
		wg.Add(1)
		go func(stars int) {
			defer wg.Done()
			_, err := repo.AddDishRating(ctx, dish.ID.Hex(), stars)
			assert.NoError(t, err)
		}(i%5 + 1)
	}
	wg.Wait()

	got, err := repo.GetDishByID(ctx, dish.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, got.Ratings, raters)
	assert.InDelta(t, entities.AverageRating(got.Ratings), got.AverageRating, 1e-9)
}

func TestDishLikesAreASet(t *testing.T) {
	repo := NewDishRepository(mongotest.Database(t))
	ctx := context.Background()

	dish := &entities.Dish{Name: "Satay", CookingTime: 30, LikedBy: []string{}, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateDish(ctx, dish))

	_, err := repo.AddDishLike(ctx, dish.ID.Hex(), "u1")
	require.NoError(t, err)
	got, err := repo.AddDishLike(ctx, dish.ID.Hex(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.LikedBy)

	got, err = repo.RemoveDishLike(ctx, dish.ID.Hex(), "u1")
	require.NoError(t, err)
	assert.Empty(t, got.LikedBy)
}

func TestDeleteUnnamedDishes(t *testing.T) {
	db := mongotest.Database(t)
	repo := NewDishRepository(db)
	ctx := context.Background()

	_, err := db.Collection(mongostore.CollectionDishes).InsertMany(ctx, []interface{}{
		bson.M{"cooking_time": 10},
		bson.M{"name": nil, "cooking_time": 10},
		bson.M{"name": "", "cooking_time": 10},
		bson.M{"name": "Nasi lemak", "cooking_time": 10, "created_at": time.Now().UTC()},
	})
	require.NoError(t, err)

	deleted, err := repo.DeleteUnnamedDishes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	left, err := repo.ListDishes(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Nasi lemak", left[0].Name)

	deleted, err = repo.DeleteUnnamedDishes(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestSetDishImageURLClearsLegacyFields(t *testing.T) {
	repo := NewDishRepository(mongotest.Database(t))
	ctx := context.Background()

	dish := &entities.Dish{Name: "Roti", CookingTime: 15, ImageB64: "aGk=", ImageMime: "image/png", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateDish(ctx, dish))

	legacy, err := repo.GetDishesWithLegacyImage(ctx)
	require.NoError(t, err)
	require.Len(t, legacy, 1)

	require.NoError(t, repo.SetDishImageURL(ctx, dish.ID.Hex(), "https://media.test/dishes/roti.png"))

	legacy, err = repo.GetDishesWithLegacyImage(ctx)
	require.NoError(t, err)
	assert.Empty(t, legacy)
	got, err := repo.GetDishByID(ctx, dish.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "https://media.test/dishes/roti.png", got.ImageURL)
	assert.Empty(t, got.ImageB64)
}
