package activity

import (
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/mongostore"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	ActivityRepository interface {
		InitActivity(ctx context.Context, userID string) error
		GetActivity(ctx context.Context, userID string) (*entities.UserActivity, error)
		PushViewed(ctx context.Context, userID string, entry entities.ViewedEntry, max int) error
		AddCooked(ctx context.Context, userID string, dishID string) error
		AddFavorite(ctx context.Context, userID string, dishID string) error
		RemoveFavorite(ctx context.Context, userID string, dishID string) error
		AddCreatedDish(ctx context.Context, userID string, dishID string) error
		AddCreatedRecipe(ctx context.Context, userID string, recipeID string) error
	}

	activityRepository struct {
		activity *mongo.Collection
	}
)

func NewActivityRepository(db *mongo.Database) ActivityRepository {
	return &activityRepository{activity: db.Collection(mongostore.CollectionActivity)}
}

func (r *activityRepository) InitActivity(ctx context.Context, userID string) error {
	_, err := r.activity.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": entities.NewUserActivity(userID)},
		options.Update().SetUpsert(true),
	)
	return mongostore.TranslateError(err)
}

func (r *activityRepository) GetActivity(ctx context.Context, userID string) (*entities.UserActivity, error) {
	var activity entities.UserActivity
	if err := r.activity.FindOne(ctx, bson.M{"user_id": userID}).Decode(&activity); err != nil {
		return nil, mongostore.TranslateError(err)
	}
	return &activity, nil
}

// PushViewed rewrites viewed_dishes in one pipeline update: the new entry
// first, any older entry for the same (type, id) removed, capped at max.
func (r *activityRepository) PushViewed(ctx context.Context, userID string, entry entities.ViewedEntry, max int) error {
	newEntry := bson.D{
		{Key: "type", Value: entry.Type},
		{Key: "id", Value: entry.ID},
		{Key: "viewed_at", Value: entry.ViewedAt},
	}
	notSame := bson.D{{Key: "$not", Value: bson.A{
		bson.D{{Key: "$and", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$$v.type", entry.Type}}},
			bson.D{{Key: "$eq", Value: bson.A{"$$v.id", entry.ID}}},
		}}},
	}}}
	rest := bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$viewed_dishes", bson.A{}}}}},
		{Key: "as", Value: "v"},
		{Key: "cond", Value: notSame},
	}}}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "viewed_dishes", Value: bson.D{{Key: "$slice", Value: bson.A{
			bson.D{{Key: "$concatArrays", Value: bson.A{
				bson.D{{Key: "$literal", Value: bson.A{newEntry}}},
				rest,
			}}},
			max,
		}}}}}}},
	}

	_, err := r.activity.UpdateOne(ctx, bson.M{"user_id": userID}, pipeline, options.Update().SetUpsert(true))
	return mongostore.TranslateError(err)
}

func (r *activityRepository) AddCooked(ctx context.Context, userID string, dishID string) error {
	return r.addToSet(ctx, userID, "cooked_dishes", dishID)
}

func (r *activityRepository) AddFavorite(ctx context.Context, userID string, dishID string) error {
	return r.addToSet(ctx, userID, "favorite_dishes", dishID)
}

func (r *activityRepository) RemoveFavorite(ctx context.Context, userID string, dishID string) error {
	_, err := r.activity.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$pull": bson.M{"favorite_dishes": dishID}},
	)
	return mongostore.TranslateError(err)
}

func (r *activityRepository) AddCreatedDish(ctx context.Context, userID string, dishID string) error {
	return r.addToSet(ctx, userID, "created_dishes", dishID)
}

func (r *activityRepository) AddCreatedRecipe(ctx context.Context, userID string, recipeID string) error {
	return r.addToSet(ctx, userID, "created_recipes", recipeID)
}

func (r *activityRepository) addToSet(ctx context.Context, userID string, field string, value string) error {
	_, err := r.activity.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$addToSet": bson.M{field: value}},
		options.Update().SetUpsert(true),
	)
	return mongostore.TranslateError(err)
}
