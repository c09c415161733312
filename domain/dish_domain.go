package domain

import "time"

var (
	MessageSuccessCreateDish           = "dish created successfully"
	MessageSuccessCreateDishWithRecipe = "dish and recipe created successfully"
	MessageSuccessGetDishes            = "success get dishes"
	MessageSuccessGetDishDetail        = "success get dish detail"
	MessageSuccessRateDish             = "rating added"
	MessageSuccessToggleFavorite       = "favorite updated"
	MessageSuccessCleanup              = "cleanup completed"
	MessageSuccessMigrateImages        = "image migration completed"

	MessageFailedCreateDish           = "failed to create dish"
	MessageFailedCreateDishWithRecipe = "failed to create dish with recipe"
	MessageFailedGetDishes            = "failed to get dishes"
	MessageFailedGetDishDetail        = "failed to get dish detail"
	MessageFailedRateDish             = "failed to rate dish"
	MessageFailedToggleFavorite       = "failed to update favorite"
	MessageFailedCleanup              = "failed to cleanup dishes"
	MessageFailedMigrateImages        = "failed to migrate images"

	ErrDishNotFound       = NewError(KindNotFound, "dish not found")
	ErrDishNameRequired   = NewError(KindValidation, "dish name is required")
	ErrCookingTimeMissing = NewError(KindValidation, "cooking time is required")
	ErrDishCreateFailed   = NewError(KindDependency, "failed to create dish")
	ErrDishLinkFailed     = NewError(KindDependency, "failed to link recipe to dish")
)

const (
	DefaultDishLimit  = 20
	MaxDishLimit      = 100
	SuggestTodayLimit = 12

	DishImageFolder   = "dishes"
	RecipeImageFolder = "recipes"
)

type (
	CreateDishRequest struct {
		Name        string   `json:"name" form:"name" validate:"required,max=200"`
		Ingredients []string `json:"ingredients" form:"ingredients" validate:"dive,required"`
		CookingTime int      `json:"cooking_time" form:"cooking_time" validate:"required,min=1"`
		ImageB64    string   `json:"image_b64,omitempty" form:"image_b64"`
		ImageMime   string   `json:"image_mime,omitempty" form:"image_mime"`
	}

	CreateDishWithRecipeRequest struct {
		Name        string   `json:"name" form:"name" validate:"required,max=200"`
		Ingredients []string `json:"ingredients" form:"ingredients" validate:"dive,required"`
		CookingTime int      `json:"cooking_time" form:"cooking_time" validate:"required,min=1"`
		ImageB64    string   `json:"image_b64,omitempty" form:"image_b64"`
		ImageMime   string   `json:"image_mime,omitempty" form:"image_mime"`

		RecipeName        string                    `json:"recipe_name" form:"recipe_name" validate:"omitempty,max=200"`
		RecipeDescription string                    `json:"recipe_description" form:"recipe_description"`
		RecipeIngredients []RecipeIngredientRequest `json:"recipe_ingredients" validate:"dive"`
		Difficulty        string                    `json:"difficulty" form:"difficulty" validate:"omitempty,oneof=easy medium hard"`
		Instructions      []string                  `json:"instructions" form:"instructions" validate:"required,min=1,dive,required"`
	}

	DishResponse struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		ImageURL      string    `json:"image_url"`
		Ingredients   []string  `json:"ingredients"`
		CookingTime   int       `json:"cooking_time"`
		AverageRating float64   `json:"average_rating"`
		RatingCount   int       `json:"rating_count"`
		LikedBy       []string  `json:"liked_by"`
		CreatorID     string    `json:"creator_id,omitempty"`
		RecipeID      string    `json:"recipe_id,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
	}

	DishSummary struct {
		ID            string  `json:"id"`
		Name          string  `json:"name"`
		ImageURL      string  `json:"image_url"`
		CookingTime   int     `json:"cooking_time"`
		AverageRating float64 `json:"average_rating"`
	}

	DishWithRecipeResponse struct {
		DishID     string `json:"dish_id"`
		RecipeID   string `json:"recipe_id"`
		DishName   string `json:"dish_name"`
		RecipeName string `json:"recipe_name"`
		ImageURL   string `json:"image_url,omitempty"`
	}

	RateRequest struct {
		Rating int `json:"rating" query:"rating"`
	}

	RatingResponse struct {
		ID            string  `json:"id"`
		AverageRating float64 `json:"average_rating"`
		RatingCount   int     `json:"rating_count"`
	}

	FavoriteResponse struct {
		DishID    string `json:"dish_id"`
		Favorited bool   `json:"favorited"`
		LikeCount int    `json:"like_count"`
	}

	CleanupResponse struct {
		DeletedCount int64 `json:"deleted_count"`
	}

	MigrationResponse struct {
		DishesMigrated  int `json:"dishes_migrated"`
		RecipesMigrated int `json:"recipes_migrated"`
		Failed          int `json:"failed"`
	}
)
