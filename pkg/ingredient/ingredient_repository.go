package ingredient

import (
	"Cook-App-Backend/entities"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type (
	IngredientRepository interface {
		SearchIngredients(ctx context.Context, query string, limit int) ([]*entities.Ingredient, error)
		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *ingredientRepository) SearchIngredients(ctx context.Context, query string, limit int) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	pattern := "%" + likeEscaper.Replace(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", pattern).
		Order("name asc").
		Limit(limit).
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	err := r.db.WithContext(ctx).Create(ingredient).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entities.ErrDuplicateKey
	}
	return err
}
