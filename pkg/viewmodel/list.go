package viewmodel

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"droscher.com/CookBook/pkg/integrations"
	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/repository"
)

var ErrNoIntegration = errors.New("no recipe integration configured")

type listRepository[T model.Entity] interface {
	FindAll(ctx context.Context) ([]T, error)
	SearchByName(ctx context.Context, query string) ([]T, error)
	Add(ctx context.Context, entity T) (*T, error)
}

// ListViewModel holds the collection shown by a list view. Every query replaces the collection.
type ListViewModel[T model.Entity] struct {
	repository listRepository[T]
	name       string
	items      []T
}

func newListViewModel[T model.Entity](repository listRepository[T], name string) ListViewModel[T] {
	return ListViewModel[T]{repository: repository, name: name}
}

func (l *ListViewModel[T]) Items() []T {
	return l.items
}

func (l *ListViewModel[T]) LoadAll(ctx context.Context) ([]T, error) {
	return l.replace(l.repository.FindAll(ctx))
}

// SearchByName keeps the entities whose name contains query, ignoring case. An empty query
// loads everything.
func (l *ListViewModel[T]) SearchByName(ctx context.Context, query string) ([]T, error) {
	if query == "" {
		return l.LoadAll(ctx)
	}

	return l.replace(l.repository.SearchByName(ctx, query))
}

// Add stores a new entity and reloads the collection.
func (l *ListViewModel[T]) Add(ctx context.Context, entity *T) (*T, error) {
	added, err := addEntity[T](ctx, l.repository, l.name, entity)
	if err != nil {
		return nil, err
	}

	if _, err := l.LoadAll(ctx); err != nil {
		return nil, err
	}

	return added, nil
}

func (l *ListViewModel[T]) replace(items []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}

	l.items = items

	return items, nil
}

type CookListViewModel struct {
	ListViewModel[model.Cook]
	cooks    repository.CookRepository
	topCooks []model.TopCook
}

func NewCookListViewModel(cooks repository.CookRepository) *CookListViewModel {
	return &CookListViewModel{ListViewModel: newListViewModel[model.Cook](cooks, "cook"), cooks: cooks}
}

// TopCooks loads the limit cooks with the most dishes.
func (c *CookListViewModel) TopCooks(ctx context.Context, limit int) ([]model.TopCook, error) {
	top, err := c.cooks.GetTopCooks(ctx, limit)
	if err != nil {
		return nil, err
	}

	c.topCooks = top

	return top, nil
}

func (c *CookListViewModel) LoadedTopCooks() []model.TopCook {
	return c.topCooks
}

type DishListViewModel struct {
	ListViewModel[model.Dish]
	dishes      repository.DishRepository
	ingredients repository.IngredientRepository
	integration integrations.Integration
	logger      *zap.Logger
}

func NewDishListViewModel(
	dishes repository.DishRepository,
	ingredients repository.IngredientRepository,
	integration integrations.Integration,
	logger *zap.Logger,
) *DishListViewModel {
	return &DishListViewModel{
		ListViewModel: newListViewModel[model.Dish](dishes, "dish"),
		dishes:        dishes,
		ingredients:   ingredients,
		integration:   integration,
		logger:        logger,
	}
}

// FilterByIngredient keeps the dishes that use the ingredient.
func (d *DishListViewModel) FilterByIngredient(ctx context.Context, ingredientID uint) ([]model.Dish, error) {
	return d.replace(d.dishes.FindByIngredient(ctx, ingredientID))
}

func (d *DishListViewModel) AvailableCooks(ctx context.Context) ([]model.Cook, error) {
	return d.dishes.GetAvailableCooks(ctx)
}

func (d *DishListViewModel) AvailableIngredients(ctx context.Context) ([]model.Ingredient, error) {
	return d.dishes.GetAvailableIngredients(ctx)
}

// ImportFromURL adds the dish described by the recipe page at url. Its ingredients are added
// when new and linked to the dish with no weight.
func (d *DishListViewModel) ImportFromURL(ctx context.Context, url string) (*model.Dish, error) {
	if d.integration == nil {
		return nil, ErrNoIntegration
	}

	found, names, err := d.integration.FindRecipe(url)
	if err != nil {
		return nil, err
	}

	dish, err := addEntity[model.Dish](ctx, d.dishes, "dish", found)
	if err != nil {
		return nil, err
	}

	ingredients, err := d.ingredients.BulkAddIngredients(ctx, names)
	if err != nil {
		return nil, err
	}

	for _, ingredient := range ingredients {
		if _, err := d.dishes.AddOrUpdateIngredient(ctx, dish.ID, ingredient.ID, 0); err != nil {
			return nil, fmt.Errorf("linking %q to %q: %w", ingredient.Name, dish.Name, err)
		}
	}

	d.logger.Info("imported dish", zap.Uint("id", dish.ID), zap.String("url", url), zap.Int("ingredients", len(ingredients)))

	if _, err := d.LoadAll(ctx); err != nil {
		return nil, err
	}

	return dish, nil
}

type IngredientListViewModel struct {
	ListViewModel[model.Ingredient]
	ingredients repository.IngredientRepository
}

func NewIngredientListViewModel(ingredients repository.IngredientRepository) *IngredientListViewModel {
	return &IngredientListViewModel{
		ListViewModel: newListViewModel[model.Ingredient](ingredients, "ingredient"),
		ingredients:   ingredients,
	}
}

// BulkAdd adds the names not yet stored and reloads the collection.
func (i *IngredientListViewModel) BulkAdd(ctx context.Context, names []string) ([]model.Ingredient, error) {
	added, err := i.ingredients.BulkAddIngredients(ctx, names)
	if err != nil {
		return nil, err
	}

	if _, err := i.LoadAll(ctx); err != nil {
		return nil, err
	}

	return added, nil
}
