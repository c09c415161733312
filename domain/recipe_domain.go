package domain

import (
	"time"
)

var (
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessRateRecipe      = "recipe rated successfully"

	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedRateRecipe      = "failed to rate recipe"

	ErrRecipeNotFound       = NewError(KindNotFound, "recipe not found")
	ErrRecipeNameRequired   = NewError(KindValidation, "recipe name is required")
	ErrInvalidDifficulty    = NewError(KindValidation, "difficulty must be easy, medium or hard")
	ErrInstructionsRequired = NewError(KindValidation, "at least one instruction is required")
	ErrRecipeCreateFailed   = NewError(KindDependency, "failed to create recipe")
)

const (
	DefaultRecipeLimit = 20
	MaxRecipeLimit     = 100
)

type (
	RecipeIngredientRequest struct {
		Name     string `json:"name" validate:"required"`
		Quantity string `json:"quantity"`
	}

	CreateRecipeRequest struct {
		Name         string                    `json:"name" validate:"required,max=200"`
		Description  string                    `json:"description" validate:"max=2000"`
		Ingredients  []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
		Difficulty   string                    `json:"difficulty" validate:"required,oneof=easy medium hard"`
		Instructions []string                  `json:"instructions" validate:"required,min=1,dive,required"`
		DishID       string                    `json:"dish_id,omitempty" validate:"omitempty,mongodb"`
		ImageB64     string                    `json:"image_b64,omitempty"`
		ImageMime    string                    `json:"image_mime,omitempty"`
	}

	RecipeIngredientResponse struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
	}

	RecipeResponse struct {
		ID            string                     `json:"id"`
		Name          string                     `json:"name"`
		Description   string                     `json:"description"`
		Ingredients   []RecipeIngredientResponse `json:"ingredients"`
		Difficulty    string                     `json:"difficulty"`
		Instructions  []string                   `json:"instructions"`
		ImageURL      string                     `json:"image_url,omitempty"`
		CreatorID     string                     `json:"creator_id,omitempty"`
		DishID        string                     `json:"dish_id,omitempty"`
		Ratings       []int                      `json:"ratings"`
		AverageRating float64                    `json:"average_rating"`
		CreatedAt     time.Time                  `json:"created_at"`
	}
)

func ValidDifficulty(d string) bool {
	switch d {
	case "easy", "medium", "hard":
		return true
	}
	return false
}
