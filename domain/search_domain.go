package domain

var (
	MessageSuccessSearch           = "search completed"
	MessageSuccessCreateIngredient = "ingredient created successfully"

	MessageFailedSearch           = "failed to search"
	MessageFailedCreateIngredient = "failed to create ingredient"

	ErrIngredientExists = NewError(KindConflict, "ingredient already exists")
	ErrInvalidMaxTime   = NewError(KindValidation, "max_time must be at least 1")
	ErrInvalidMinRating = NewError(KindValidation, "min_rating must be between 0 and 5")
)

const (
	SearchLimit         = 10
	FilterLimit         = 50
	CombinedSearchLimit = 5
)

type (
	CreateIngredientRequest struct {
		Name     string   `json:"name" validate:"required,max=255"`
		Category string   `json:"category" validate:"max=100"`
		Unit     string   `json:"unit" validate:"max=50"`
		Aliases  []string `json:"aliases" validate:"dive,required"`
	}

	IngredientResponse struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Category string   `json:"category"`
		Unit     string   `json:"unit"`
		Aliases  []string `json:"aliases"`
	}

	CombinedSearchResponse struct {
		Dishes       []DishSummary        `json:"dishes"`
		Users        []UserResponse       `json:"users"`
		Ingredients  []IngredientResponse `json:"ingredients"`
		TotalResults int                  `json:"total_results"`
	}
)
