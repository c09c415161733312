package dish

import (
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/mongostore"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	DishRepository interface {
		CreateDish(ctx context.Context, dish *entities.Dish) error
		GetDishByID(ctx context.Context, id string) (*entities.Dish, error)
		DeleteDish(ctx context.Context, id string) error
		SetDishRecipe(ctx context.Context, dishID string, recipeID string) error
		AddDishRating(ctx context.Context, id string, stars int) (*entities.Dish, error)
		AddDishLike(ctx context.Context, dishID string, userID string) (*entities.Dish, error)
		RemoveDishLike(ctx context.Context, dishID string, userID string) (*entities.Dish, error)
		ListDishes(ctx context.Context, skip int, limit int) ([]*entities.Dish, error)
		GetDishesByCreator(ctx context.Context, creatorID string, limit int) ([]*entities.Dish, error)
		SearchDishesByName(ctx context.Context, query string, limit int) ([]*entities.Dish, error)
		FilterDishes(ctx context.Context, maxCookingTime int, minRating float64, limit int) ([]*entities.Dish, error)
		DeleteUnnamedDishes(ctx context.Context) (int64, error)
		GetDishesWithLegacyImage(ctx context.Context) ([]*entities.Dish, error)
		SetDishImageURL(ctx context.Context, id string, imageURL string) error
	}

	dishRepository struct {
		dishes *mongo.Collection
	}
)

func NewDishRepository(db *mongo.Database) DishRepository {
	return &dishRepository{dishes: db.Collection(mongostore.CollectionDishes)}
}

func (r *dishRepository) CreateDish(ctx context.Context, dish *entities.Dish) error {
	if dish.ID.IsZero() {
		dish.ID = primitive.NewObjectID()
	}
	_, err := r.dishes.InsertOne(ctx, dish)
	return mongostore.TranslateError(err)
}

func (r *dishRepository) GetDishByID(ctx context.Context, id string) (*entities.Dish, error) {
	oid, err := mongostore.ObjectID(id)
	if err != nil {
		return nil, err
	}
	var dish entities.Dish
	if err := r.dishes.FindOne(ctx, bson.M{"_id": oid}).Decode(&dish); err != nil {
		return nil, mongostore.TranslateError(err)
	}
	return &dish, nil
}

func (r *dishRepository) DeleteDish(ctx context.Context, id string) error {
	oid, err := mongostore.ObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.dishes.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return entities.ErrRecordNotFound
	}
	return nil
}

func (r *dishRepository) SetDishRecipe(ctx context.Context, dishID string, recipeID string) error {
	return r.updateByID(ctx, dishID, bson.M{"$set": bson.M{"recipe_id": recipeID}})
}

func (r *dishRepository) AddDishRating(ctx context.Context, id string, stars int) (*entities.Dish, error) {
	return r.findAndUpdate(ctx, id, mongostore.AppendRatingPipeline(stars))
}

func (r *dishRepository) AddDishLike(ctx context.Context, dishID string, userID string) (*entities.Dish, error) {
	return r.findAndUpdate(ctx, dishID, bson.M{"$addToSet": bson.M{"liked_by": userID}})
}

func (r *dishRepository) RemoveDishLike(ctx context.Context, dishID string, userID string) (*entities.Dish, error) {
	return r.findAndUpdate(ctx, dishID, bson.M{"$pull": bson.M{"liked_by": userID}})
}

func (r *dishRepository) ListDishes(ctx context.Context, skip int, limit int) ([]*entities.Dish, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	return mongostore.FindAll[entities.Dish](ctx, r.dishes, mongostore.NamedOnly(), opts)
}

func (r *dishRepository) GetDishesByCreator(ctx context.Context, creatorID string, limit int) ([]*entities.Dish, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return mongostore.FindAll[entities.Dish](ctx, r.dishes, bson.M{"creator_id": creatorID}, opts)
}

func (r *dishRepository) SearchDishesByName(ctx context.Context, query string, limit int) ([]*entities.Dish, error) {
	filter := bson.M{"name": mongostore.ContainsFold(query)}
	return mongostore.FindAll[entities.Dish](ctx, r.dishes, filter, options.Find().SetLimit(int64(limit)))
}

func (r *dishRepository) FilterDishes(ctx context.Context, maxCookingTime int, minRating float64, limit int) ([]*entities.Dish, error) {
	filter := bson.M{"cooking_time": bson.M{"$lte": maxCookingTime}}
	if minRating > 0 {
		filter["average_rating"] = bson.M{"$gte": minRating}
	}
	return mongostore.FindAll[entities.Dish](ctx, r.dishes, filter, options.Find().SetLimit(int64(limit)))
}

func (r *dishRepository) DeleteUnnamedDishes(ctx context.Context) (int64, error) {
	res, err := r.dishes.DeleteMany(ctx, mongostore.Unnamed())
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *dishRepository) GetDishesWithLegacyImage(ctx context.Context) ([]*entities.Dish, error) {
	return mongostore.FindAll[entities.Dish](ctx, r.dishes, mongostore.HasLegacyImage())
}

func (r *dishRepository) SetDishImageURL(ctx context.Context, id string, imageURL string) error {
	return r.updateByID(ctx, id, bson.M{
		"$set":   bson.M{"image_url": imageURL},
		"$unset": bson.M{"image_b64": "", "image_mime": ""},
	})
}

func (r *dishRepository) updateByID(ctx context.Context, id string, update interface{}) error {
	oid, err := mongostore.ObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.dishes.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return entities.ErrRecordNotFound
	}
	return nil
}

func (r *dishRepository) findAndUpdate(ctx context.Context, id string, update interface{}) (*entities.Dish, error) {
	oid, err := mongostore.ObjectID(id)
	if err != nil {
		return nil, err
	}
	var dish entities.Dish
	err = r.dishes.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&dish)
	if err != nil {
		return nil, mongostore.TranslateError(err)
	}
	return &dish, nil
}
