// Package seed fills a catalog from a YAML description of cooks, dishes and ingredients.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"go.openly.dev/pointy"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/repository"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Catalog struct {
	Ingredients []string `yaml:"ingredients" validate:"dive,required"`
	Cooks       []Cook   `yaml:"cooks"       validate:"dive"`
	Dishes      []Dish   `yaml:"dishes"      validate:"dive"`
}

type Cook struct {
	Name   string `yaml:"name"   validate:"required"`
	Bio    string `yaml:"bio"`
	Dishes []Dish `yaml:"dishes" validate:"dive"`
}

type Dish struct {
	Name        string       `yaml:"name"        validate:"required"`
	Description string       `yaml:"description"`
	Recipe      string       `yaml:"recipe"`
	ImageURL    string       `yaml:"image_url"   validate:"omitempty,url"`
	Ingredients []Ingredient `yaml:"ingredients" validate:"dive"`
}

type Ingredient struct {
	Name   string  `yaml:"name"   validate:"required"`
	Weight float64 `yaml:"weight" validate:"gte=0"`
}

type Summary struct {
	Cooks       int
	Dishes      int
	Ingredients int
	Links       int
}

// Load decodes and checks a catalog. Unknown keys are rejected.
func Load(reader io.Reader) (*Catalog, error) {
	var catalog Catalog

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	if err := decoder.Decode(&catalog); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	if err := validate.Struct(&catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &catalog, nil
}

type Seeder struct {
	cooks       repository.CookRepository
	dishes      repository.DishRepository
	ingredients repository.IngredientRepository
	logger      *zap.Logger
}

func NewSeeder(
	cooks repository.CookRepository,
	dishes repository.DishRepository,
	ingredients repository.IngredientRepository,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{cooks: cooks, dishes: dishes, ingredients: ingredients, logger: logger}
}

// Seed adds every cook and dish of the catalog. Ingredients are matched to stored ones by
// exact name and only added when missing.
func (s *Seeder) Seed(ctx context.Context, catalog *Catalog) (Summary, error) {
	var summary Summary

	ingredientIDs, err := s.addIngredients(ctx, catalog)
	if err != nil {
		return summary, err
	}

	summary.Ingredients = len(ingredientIDs)

	for _, cook := range catalog.Cooks {
		added, err := s.cooks.Add(ctx, model.Cook{Name: cook.Name, Bio: cook.Bio})
		if err != nil {
			return summary, fmt.Errorf("adding cook %q: %w", cook.Name, err)
		}

		summary.Cooks++

		if err := s.addDishes(ctx, cook.Dishes, &added.ID, ingredientIDs, &summary); err != nil {
			return summary, err
		}
	}

	if err := s.addDishes(ctx, catalog.Dishes, nil, ingredientIDs, &summary); err != nil {
		return summary, err
	}

	s.logger.Info("seeded catalog",
		zap.Int("cooks", summary.Cooks),
		zap.Int("dishes", summary.Dishes),
		zap.Int("ingredients", summary.Ingredients),
		zap.Int("links", summary.Links))

	return summary, nil
}

func (s *Seeder) addIngredients(ctx context.Context, catalog *Catalog) (map[string]uint, error) {
	names := append([]string{}, catalog.Ingredients...)

	collect := func(dishes []Dish) {
		for _, dish := range dishes {
			for _, ingredient := range dish.Ingredients {
				names = append(names, ingredient.Name)
			}
		}
	}

	collect(catalog.Dishes)

	for _, cook := range catalog.Cooks {
		collect(cook.Dishes)
	}

	ingredients, err := s.ingredients.BulkAddIngredients(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("adding ingredients: %w", err)
	}

	ids := make(map[string]uint, len(ingredients))
	for _, ingredient := range ingredients {
		ids[ingredient.Name] = ingredient.ID
	}

	return ids, nil
}

func (s *Seeder) addDishes(ctx context.Context, dishes []Dish, cookID *uint, ingredientIDs map[string]uint, summary *Summary) error {
	for _, dish := range dishes {
		entity := model.Dish{Name: dish.Name, Description: dish.Description, Recipe: dish.Recipe, CookID: cookID}
		if dish.ImageURL != "" {
			entity.ImageURL = pointy.String(dish.ImageURL)
		}

		added, err := s.dishes.Add(ctx, entity)
		if err != nil {
			return fmt.Errorf("adding dish %q: %w", dish.Name, err)
		}

		summary.Dishes++

		for _, ingredient := range dish.Ingredients {
			if _, err := s.dishes.AddOrUpdateIngredient(ctx, added.ID, ingredientIDs[ingredient.Name], ingredient.Weight); err != nil {
				return fmt.Errorf("adding %q to dish %q: %w", ingredient.Name, dish.Name, err)
			}

			summary.Links++
		}
	}

	return nil
}
