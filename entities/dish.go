package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Dish struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	ImageURL      string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Ingredients   []string           `bson:"ingredients" json:"ingredients"`
	CookingTime   int                `bson:"cooking_time" json:"cooking_time"`
	CreatorID     string             `bson:"creator_id" json:"creator_id"`
	RecipeID      string             `bson:"recipe_id,omitempty" json:"recipe_id,omitempty"`
	Ratings       []int              `bson:"ratings" json:"ratings"`
	AverageRating float64            `bson:"average_rating" json:"average_rating"`
	LikedBy       []string           `bson:"liked_by" json:"liked_by"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`

	// Rows written before media moved to the object store carry the image inline.
	ImageB64  string `bson:"image_b64,omitempty" json:"-"`
	ImageMime string `bson:"image_mime,omitempty" json:"-"`
}
