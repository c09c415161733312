package recipe

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
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		DeleteRecipe(ctx context.Context, id string) error
		AddRecipeRating(ctx context.Context, id string, stars int) (*entities.Recipe, error)
		ListRecipes(ctx context.Context, limit int) ([]*entities.Recipe, error)
		GetRecipesByCreator(ctx context.Context, creatorID string, limit int) ([]*entities.Recipe, error)
		SearchRecipes(ctx context.Context, query string, limit int) ([]*entities.Recipe, error)
		GetRecipesByDifficulty(ctx context.Context, difficulty string, limit int) ([]*entities.Recipe, error)
		GetRecipesWithLegacyImage(ctx context.Context) ([]*entities.Recipe, error)
		SetRecipeImageURL(ctx context.Context, id string, imageURL string) error
	}

	recipeRepository struct {
		recipes *mongo.Collection
	}
)

func NewRecipeRepository(db *mongo.Database) RecipeRepository {
	return &recipeRepository{recipes: db.Collection(mongostore.CollectionRecipes)}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	if recipe.ID.IsZero() {
		recipe.ID = primitive.NewObjectID()
	}
	_, err := r.recipes.InsertOne(ctx, recipe)
	return mongostore.TranslateError(err)
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	oid, err := mongostore.ObjectID(id)
	if err != nil {
		return nil, err
	}
	var recipe entities.Recipe
	if err := r.recipes.FindOne(ctx, bson.M{"_id": oid}).Decode(&recipe); err != nil {
		return nil, mongostore.TranslateError(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	oid, err := mongostore.ObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.recipes.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return entities.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) AddRecipeRating(ctx context.Context, id string, stars int) (*entities.Recipe, error) {
	oid, err := mongostore.ObjectID(id)
	if err != nil {
		return nil, err
	}
	var recipe entities.Recipe
	err = r.recipes.FindOneAndUpdate(ctx, bson.M{"_id": oid}, mongostore.AppendRatingPipeline(stars),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&recipe)
	if err != nil {
		return nil, mongostore.TranslateError(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) ListRecipes(ctx context.Context, limit int) ([]*entities.Recipe, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return mongostore.FindAll[entities.Recipe](ctx, r.recipes, bson.M{}, opts)
}

func (r *recipeRepository) GetRecipesByCreator(ctx context.Context, creatorID string, limit int) ([]*entities.Recipe, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return mongostore.FindAll[entities.Recipe](ctx, r.recipes, bson.M{"creator_id": creatorID}, opts)
}

func (r *recipeRepository) SearchRecipes(ctx context.Context, query string, limit int) ([]*entities.Recipe, error) {
	pattern := mongostore.ContainsFold(query)
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
	}}
	return mongostore.FindAll[entities.Recipe](ctx, r.recipes, filter, options.Find().SetLimit(int64(limit)))
}

func (r *recipeRepository) GetRecipesByDifficulty(ctx context.Context, difficulty string, limit int) ([]*entities.Recipe, error) {
	filter := bson.M{"difficulty": difficulty}
	return mongostore.FindAll[entities.Recipe](ctx, r.recipes, filter, options.Find().SetLimit(int64(limit)))
}

func (r *recipeRepository) GetRecipesWithLegacyImage(ctx context.Context) ([]*entities.Recipe, error) {
	return mongostore.FindAll[entities.Recipe](ctx, r.recipes, mongostore.HasLegacyImage())
}

func (r *recipeRepository) SetRecipeImageURL(ctx context.Context, id string, imageURL string) error {
	oid, err := mongostore.ObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.recipes.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set":   bson.M{"image_url": imageURL},
		"$unset": bson.M{"image_b64": "", "image_mime": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return entities.ErrRecordNotFound
	}
	return nil
}
