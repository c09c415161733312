package user

import (
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/mongostore"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	// SocialRepository edits one side of a follow edge per call. Each call is a
	// single-document update guarded so that set semantics and counters hold.
	SocialRepository interface {
		InitSocial(ctx context.Context, userID string) error
		GetSocial(ctx context.Context, userID string) (*entities.UserSocial, error)
		AddFollowing(ctx context.Context, followerID string, targetID string) (bool, error)
		AddFollower(ctx context.Context, targetID string, followerID string) (added bool, followerCount int, err error)
		RemoveFollowing(ctx context.Context, followerID string, targetID string) (bool, error)
		RemoveFollower(ctx context.Context, targetID string, followerID string) (removed bool, followerCount int, err error)
	}

	socialRepository struct {
		social *mongo.Collection
	}
)

func NewSocialRepository(db *mongo.Database) SocialRepository {
	return &socialRepository{social: db.Collection(mongostore.CollectionSocial)}
}

func (r *socialRepository) InitSocial(ctx context.Context, userID string) error {
	_, err := r.social.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": entities.NewUserSocial(userID)},
		options.Update().SetUpsert(true),
	)
	return mongostore.TranslateError(err)
}

func (r *socialRepository) GetSocial(ctx context.Context, userID string) (*entities.UserSocial, error) {
	var social entities.UserSocial
	if err := r.social.FindOne(ctx, bson.M{"user_id": userID}).Decode(&social); err != nil {
		return nil, mongostore.TranslateError(err)
	}
	return &social, nil
}

func (r *socialRepository) AddFollowing(ctx context.Context, followerID string, targetID string) (bool, error) {
	res, err := r.social.UpdateOne(ctx,
		bson.M{"user_id": followerID, "following": bson.M{"$ne": targetID}},
		bson.M{"$push": bson.M{"following": targetID}, "$inc": bson.M{"following_count": 1}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *socialRepository) AddFollower(ctx context.Context, targetID string, followerID string) (bool, int, error) {
	return r.updateFollowers(ctx,
		bson.M{"user_id": targetID, "followers": bson.M{"$ne": followerID}},
		bson.M{"$push": bson.M{"followers": followerID}, "$inc": bson.M{"follower_count": 1}},
		targetID,
	)
}

func (r *socialRepository) RemoveFollowing(ctx context.Context, followerID string, targetID string) (bool, error) {
	res, err := r.social.UpdateOne(ctx,
		bson.M{"user_id": followerID, "following": targetID},
		bson.M{"$pull": bson.M{"following": targetID}, "$inc": bson.M{"following_count": -1}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *socialRepository) RemoveFollower(ctx context.Context, targetID string, followerID string) (bool, int, error) {
	return r.updateFollowers(ctx,
		bson.M{"user_id": targetID, "followers": followerID},
		bson.M{"$pull": bson.M{"followers": followerID}, "$inc": bson.M{"follower_count": -1}},
		targetID,
	)
}

// updateFollowers applies a guarded update and reports whether it matched,
// together with the follower count as it stands afterwards.
func (r *socialRepository) updateFollowers(ctx context.Context, filter bson.M, update bson.M, targetID string) (bool, int, error) {
	var social entities.UserSocial
	err := r.social.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&social)
	if err == nil {
		return true, social.FollowerCount, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, 0, err
	}

	current, err := r.GetSocial(ctx, targetID)
	if err != nil {
		return false, 0, err
	}
	return false, current.FollowerCount, nil
}
