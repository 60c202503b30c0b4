package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"droscher.com/CookBook/pkg/model"
)

type IngredientRepository interface {
	FindAll(ctx context.Context) ([]model.Ingredient, error)
	FindOneOrNone(ctx context.Context, id uint) (*model.Ingredient, error)
	FindByName(ctx context.Context, query string) (*model.Ingredient, error)
	SearchByName(ctx context.Context, query string) ([]model.Ingredient, error)
	Add(ctx context.Context, ingredient model.Ingredient) (*model.Ingredient, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*model.Ingredient, error)
	Delete(ctx context.Context, ingredient model.Ingredient) error
	DeleteByID(ctx context.Context, id uint) error
	GetDishes(ctx context.Context, ingredientID uint) ([]model.Dish, error)
	BulkAddIngredients(ctx context.Context, names []string) ([]model.Ingredient, error)
}

type Ingredients struct {
	Base[model.Ingredient]
}

var _ IngredientRepository = (*Ingredients)(nil)

func NewIngredients(repo *Repository) *Ingredients {
	return &Ingredients{Base: NewBase[model.Ingredient](repo)}
}

func (i *Ingredients) GetDishes(ctx context.Context, ingredientID uint) ([]model.Dish, error) {
	var dishes []model.Dish

	err := i.repo.Session(ctx, func(tx *gorm.DB) error {
		return tx.Joins("INNER JOIN dish_ingredients di on di.dish_id = dishes.id").
			Where("di.ingredient_id = ?", ingredientID).
			Order("dishes.id").
			Find(&dishes).Error
	})
	if err != nil {
		return nil, err
	}

	return dishes, nil
}

// BulkAddIngredients inserts the names not already stored, matching names exactly, and
// returns the stored ingredients for every requested name.
func (i *Ingredients) BulkAddIngredients(ctx context.Context, names []string) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient

	err := i.repo.Session(ctx, func(tx *gorm.DB) error {
		if len(names) == 0 {
			return nil
		}

		if err := tx.Where("name IN ?", names).Order("id").Find(&ingredients).Error; err != nil {
			return err
		}

		seen := make(map[string]struct{}, len(names))
		for _, ingredient := range ingredients {
			seen[ingredient.Name] = struct{}{}
		}

		newIngredients := make([]model.Ingredient, 0, len(names))

		for _, name := range names {
			if _, found := seen[name]; found {
				continue
			}

			seen[name] = struct{}{}
			newIngredients = append(newIngredients, model.Ingredient{Name: name})
		}

		if len(newIngredients) == 0 {
			return nil
		}

		if err := tx.Create(&newIngredients).Error; err != nil {
			return err
		}

		ingredients = append(ingredients, newIngredients...)

		return nil
	})
	if err != nil {
		i.repo.Logger.Error("error adding ingredients", zap.Strings("names", names), zap.Error(err))

		return nil, err
	}

	return ingredients, nil
}
