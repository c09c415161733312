package notification

import (
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/mongostore"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	NotificationRepository interface {
		InitNotifications(ctx context.Context, userID string) error
		GetNotifications(ctx context.Context, userID string) (*entities.UserNotifications, error)
		PushNotification(ctx context.Context, userID string, notification entities.Notification) error
	}

	notificationRepository struct {
		notifications *mongo.Collection
	}
)

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{notifications: db.Collection(mongostore.CollectionNotifications)}
}

func (r *notificationRepository) InitNotifications(ctx context.Context, userID string) error {
	_, err := r.notifications.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": bson.M{"user_id": userID, "notifications": bson.A{}, "unread_count": 0}},
		options.Update().SetUpsert(true),
	)
	return mongostore.TranslateError(err)
}

func (r *notificationRepository) GetNotifications(ctx context.Context, userID string) (*entities.UserNotifications, error) {
	var doc entities.UserNotifications
	if err := r.notifications.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		return nil, mongostore.TranslateError(err)
	}
	return &doc, nil
}

// PushNotification appends and bumps the unread counter in one update.
func (r *notificationRepository) PushNotification(ctx context.Context, userID string, notification entities.Notification) error {
	_, err := r.notifications.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$push": bson.M{"notifications": notification},
			"$inc":  bson.M{"unread_count": 1},
		},
		options.Update().SetUpsert(true),
	)
	return mongostore.TranslateError(err)
}
