package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type RecipeIngredient struct {
	Name     string `bson:"name" json:"name"`
	Quantity string `bson:"quantity" json:"quantity"`
}

type Recipe struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Ingredients   []RecipeIngredient `bson:"ingredients" json:"ingredients"`
	Difficulty    string             `bson:"difficulty" json:"difficulty"`
	Instructions  []string           `bson:"instructions" json:"instructions"`
	ImageURL      string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatorID     string             `bson:"creator_id" json:"creator_id"`
	DishID        string             `bson:"dish_id,omitempty" json:"dish_id,omitempty"`
	Ratings       []int              `bson:"ratings" json:"ratings"`
	AverageRating float64            `bson:"average_rating" json:"average_rating"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`

	ImageB64  string `bson:"image_b64,omitempty" json:"-"`
	ImageMime string `bson:"image_mime,omitempty" json:"-"`
}
