package viewmodel

import (
	"context"

	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/repository"
)

type IngredientDetail struct {
	ID     uint          `json:"id"`
	Name   string        `json:"name"`
	Dishes []DishSummary `json:"dishes"`
}

type IngredientViewModel struct {
	Base[model.Ingredient, []model.Dish]
	ingredients repository.IngredientRepository
}

func NewIngredientViewModel(ingredients repository.IngredientRepository) *IngredientViewModel {
	return &IngredientViewModel{
		Base: newBase[model.Ingredient, []model.Dish](ingredients, "ingredient", ingredientColumns, func(ctx context.Context, ingredient model.Ingredient) ([]model.Dish, error) {
			return ingredients.GetDishes(ctx, ingredient.ID)
		}),
		ingredients: ingredients,
	}
}

func (i *IngredientViewModel) BulkAdd(ctx context.Context, names []string) ([]model.Ingredient, error) {
	return i.ingredients.BulkAddIngredients(ctx, names)
}

// Detail serializes the current ingredient and the dishes using it.
func (i *IngredientViewModel) Detail(ctx context.Context) (*IngredientDetail, error) {
	ingredient, ok := i.Current()
	if !ok {
		return nil, i.notLoaded()
	}

	dishes, err := i.Related(ctx)
	if err != nil {
		return nil, err
	}

	return &IngredientDetail{ID: ingredient.ID, Name: ingredient.Name, Dishes: summarizeDishes(dishes)}, nil
}

func ingredientColumns(ingredient model.Ingredient) map[string]any {
	return map[string]any{"name": ingredient.Name}
}
