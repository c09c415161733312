package mongostore

import (
	"Cook-App-Backend/entities"
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollectionUsers         = "users"
	CollectionDishes        = "dishes"
	CollectionRecipes       = "recipes"
	CollectionSocial        = "user_social"
	CollectionActivity      = "user_activity"
	CollectionNotifications = "user_notifications"
	CollectionPreferences   = "user_preferences"
)

// Connect opens the client once and pings the primary.
func Connect(ctx context.Context, uri string, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, client.Database(database), nil
}

// EnsureIndexes creates the unique indexes the user and auxiliary collections
// rely on. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "display_id", Value: 1}}, Options: unique},
		},
		CollectionSocial:        {{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique}},
		CollectionActivity:      {{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique}},
		CollectionNotifications: {{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique}},
		CollectionPreferences:   {{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique}},
		CollectionDishes: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "creator_id", Value: 1}}},
		},
		CollectionRecipes: {
			{Keys: bson.D{{Key: "creator_id", Value: 1}}},
			{Keys: bson.D{{Key: "difficulty", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// TranslateError maps driver errors onto the store-neutral sentinels.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return entities.ErrRecordNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", entities.ErrDuplicateKey, err)
	default:
		return err
	}
}

// ObjectID parses a hex id. A malformed id cannot match any document.
func ObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, entities.ErrRecordNotFound
	}
	return oid, nil
}

// ContainsFold matches q as a literal, case-insensitive substring.
func ContainsFold(q string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
}

// NamedOnly matches documents whose name is a non-empty string.
func NamedOnly() bson.D {
	return bson.D{{Key: "name", Value: bson.D{{Key: "$type", Value: "string"}, {Key: "$ne", Value: ""}}}}
}

// Unnamed matches documents whose name is missing, null or empty.
func Unnamed() bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "name", Value: bson.D{{Key: "$exists", Value: false}}}},
		bson.D{{Key: "name", Value: nil}},
		bson.D{{Key: "name", Value: ""}},
	}}}
}

// HasLegacyImage matches rows that still carry an inline base64 image.
func HasLegacyImage() bson.D {
	return bson.D{{Key: "image_b64", Value: bson.D{{Key: "$type", Value: "string"}, {Key: "$ne", Value: ""}}}}
}

// AppendRatingPipeline appends stars and recomputes average_rating in the
// same update so concurrent ratings cannot overwrite each other.
func AppendRatingPipeline(stars int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "ratings", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
			bson.D{{Key: "$ifNull", Value: bson.A{"$ratings", bson.A{}}}},
			bson.A{stars},
		}}}}}}},
		{{Key: "$set", Value: bson.D{{Key: "average_rating", Value: bson.D{{Key: "$avg", Value: "$ratings"}}}}}},
	}
}

// FindAll decodes every document of a cursor into T.
func FindAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]*T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, cursor.Err()
}
