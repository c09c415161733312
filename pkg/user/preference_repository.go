package user

import (
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/mongostore"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	PreferenceRepository interface {
		InitPreferences(ctx context.Context, userID string) error
		GetPreferences(ctx context.Context, userID string) (*entities.UserPreferences, error)
		SetReminders(ctx context.Context, userID string, reminders []string) error
	}

	preferenceRepository struct {
		preferences *mongo.Collection
	}
)

func NewPreferenceRepository(db *mongo.Database) PreferenceRepository {
	return &preferenceRepository{preferences: db.Collection(mongostore.CollectionPreferences)}
}

func (r *preferenceRepository) InitPreferences(ctx context.Context, userID string) error {
	_, err := r.preferences.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": entities.NewUserPreferences(userID)},
		options.Update().SetUpsert(true),
	)
	return mongostore.TranslateError(err)
}

func (r *preferenceRepository) GetPreferences(ctx context.Context, userID string) (*entities.UserPreferences, error) {
	var prefs entities.UserPreferences
	if err := r.preferences.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prefs); err != nil {
		return nil, mongostore.TranslateError(err)
	}
	return &prefs, nil
}

func (r *preferenceRepository) SetReminders(ctx context.Context, userID string, reminders []string) error {
	if reminders == nil {
		reminders = []string{}
	}
	_, err := r.preferences.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"reminders": reminders}},
		options.Update().SetUpsert(true),
	)
	return mongostore.TranslateError(err)
}
