package viewmodel

import (
	"context"
	"fmt"

	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/repository"
)

type WeightedIngredient struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type DishDetail struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Recipe      string               `json:"recipe"`
	ImageURL    string               `json:"image_url"`
	CookID      *uint                `json:"cook_id"`
	Ingredients []WeightedIngredient `json:"ingredients"`
}

type DishViewModel struct {
	Base[model.Dish, []model.IngredientWeight]
	dishes repository.DishRepository
}

func NewDishViewModel(dishes repository.DishRepository) *DishViewModel {
	return &DishViewModel{
		Base: newBase[model.Dish, []model.IngredientWeight](dishes, "dish", dishColumns, func(ctx context.Context, dish model.Dish) ([]model.IngredientWeight, error) {
			return dishes.GetIngredients(ctx, dish.ID)
		}),
		dishes: dishes,
	}
}

// AddOrUpdateIngredient sets the weight of an ingredient in the current dish and reloads the
// dish's ingredients.
func (d *DishViewModel) AddOrUpdateIngredient(ctx context.Context, ingredientID uint, weight float64) error {
	dish, ok := d.Current()
	if !ok {
		return d.notLoaded()
	}

	updated, err := d.dishes.AddOrUpdateIngredient(ctx, dish.ID, ingredientID, weight)
	if err != nil {
		return err
	}

	if updated == nil {
		return fmt.Errorf("%w: ingredient %d for dish %d", repository.ErrNotFound, ingredientID, dish.ID)
	}

	_, err = d.LoadRelatedData(ctx)

	return err
}

func (d *DishViewModel) RemoveIngredient(ctx context.Context, ingredientID uint) error {
	dish, ok := d.Current()
	if !ok {
		return d.notLoaded()
	}

	if err := d.dishes.RemoveIngredient(ctx, dish.ID, ingredientID); err != nil {
		return err
	}

	_, err := d.LoadRelatedData(ctx)

	return err
}

func (d *DishViewModel) AvailableCooks(ctx context.Context) ([]model.Cook, error) {
	return d.dishes.GetAvailableCooks(ctx)
}

func (d *DishViewModel) AvailableIngredients(ctx context.Context) ([]model.Ingredient, error) {
	return d.dishes.GetAvailableIngredients(ctx)
}

// SetDishCook changes the owner of the current dish and reloads it. A nil cookID removes the
// owner.
func (d *DishViewModel) SetDishCook(ctx context.Context, cookID *uint) error {
	dish, ok := d.Current()
	if !ok {
		return d.notLoaded()
	}

	if err := d.dishes.SetDishCook(ctx, dish.ID, cookID); err != nil {
		return err
	}

	return d.Load(ctx, dish.ID)
}

// Detail serializes the current dish and its ingredient weights.
func (d *DishViewModel) Detail(ctx context.Context) (*DishDetail, error) {
	dish, ok := d.Current()
	if !ok {
		return nil, d.notLoaded()
	}

	weights, err := d.Related(ctx)
	if err != nil {
		return nil, err
	}

	detail := DishDetail{
		ID:          dish.ID,
		Name:        dish.Name,
		Description: dish.Description,
		Recipe:      dish.Recipe,
		CookID:      dish.CookID,
		Ingredients: make([]WeightedIngredient, 0, len(weights)),
	}

	if dish.ImageURL != nil {
		detail.ImageURL = *dish.ImageURL
	}

	for _, weight := range weights {
		detail.Ingredients = append(detail.Ingredients, WeightedIngredient{ID: weight.ID, Name: weight.Name, Weight: weight.Weight})
	}

	return &detail, nil
}

func dishColumns(dish model.Dish) map[string]any {
	return map[string]any{
		"name":        dish.Name,
		"description": dish.Description,
		"recipe":      dish.Recipe,
		"image_url":   dish.ImageURL,
		"cook_id":     dish.CookID,
	}
}
