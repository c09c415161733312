package user

import (
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/mongostore"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		DisplayIDExists(ctx context.Context, displayID string, excludeUserID string) (bool, error)
		TouchLastLogin(ctx context.Context, id string, at time.Time) error
		UpdateProfile(ctx context.Context, id string, patch entities.ProfileUpdate) (*entities.User, error)
		SearchUsersByDisplayID(ctx context.Context, query string, excludeUserID string, limit int) ([]*entities.User, error)
	}

	userRepository struct {
		users *mongo.Collection
	}
)

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{users: db.Collection(mongostore.CollectionUsers)}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.users.InsertOne(ctx, user)
	return mongostore.TranslateError(err)
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	oid, err := mongostore.ObjectID(id)
	if err != nil {
		return nil, err
	}
	var user entities.User
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, mongostore.TranslateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, mongostore.TranslateError(err)
	}
	return &user, nil
}

func (r *userRepository) DisplayIDExists(ctx context.Context, displayID string, excludeUserID string) (bool, error) {
	filter := bson.M{"display_id": displayID}
	if oid, err := primitive.ObjectIDFromHex(excludeUserID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}
	n, err := r.users.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := mongostore.ObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"lastLoginAt": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return entities.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, patch entities.ProfileUpdate) (*entities.User, error) {
	oid, err := mongostore.ObjectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Avatar != nil {
		set["avatar"] = *patch.Avatar
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.DisplayID != nil {
		set["display_id"] = *patch.DisplayID
	}

	var user entities.User
	err = r.users.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return nil, mongostore.TranslateError(err)
	}
	return &user, nil
}

func (r *userRepository) SearchUsersByDisplayID(ctx context.Context, query string, excludeUserID string, limit int) ([]*entities.User, error) {
	filter := bson.M{"display_id": mongostore.ContainsFold(query)}
	if oid, err := primitive.ObjectIDFromHex(excludeUserID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}
	return mongostore.FindAll[entities.User](ctx, r.users, filter, options.Find().SetLimit(int64(limit)))
}
