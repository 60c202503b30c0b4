package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"droscher.com/CookBook/pkg/model"
)

type DishRepository interface { //nolint:interfacebloat // this is an acceptable interface
	FindAll(ctx context.Context) ([]model.Dish, error)
	FindOneOrNone(ctx context.Context, id uint) (*model.Dish, error)
	FindByName(ctx context.Context, query string) (*model.Dish, error)
	SearchByName(ctx context.Context, query string) ([]model.Dish, error)
	Add(ctx context.Context, dish model.Dish) (*model.Dish, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*model.Dish, error)
	Delete(ctx context.Context, dish model.Dish) error
	DeleteByID(ctx context.Context, id uint) error
	FindByIngredient(ctx context.Context, ingredientID uint) ([]model.Dish, error)
	AddOrUpdateIngredient(ctx context.Context, dishID uint, ingredientID uint, weight float64) (*model.Dish, error)
	RemoveIngredient(ctx context.Context, dishID uint, ingredientID uint) error
	GetIngredients(ctx context.Context, dishID uint) ([]model.IngredientWeight, error)
	GetAvailableCooks(ctx context.Context) ([]model.Cook, error)
	GetAvailableIngredients(ctx context.Context) ([]model.Ingredient, error)
	SetDishCook(ctx context.Context, dishID uint, cookID *uint) error
}

type Dishes struct {
	Base[model.Dish]
}

var _ DishRepository = (*Dishes)(nil)

func NewDishes(repo *Repository) *Dishes {
	return &Dishes{Base: NewBase[model.Dish](repo)}
}

func (d *Dishes) FindByIngredient(ctx context.Context, ingredientID uint) ([]model.Dish, error) {
	var dishes []model.Dish

	err := d.repo.Session(ctx, func(tx *gorm.DB) error {
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

// AddOrUpdateIngredient stores the weight of an ingredient in a dish, replacing any weight
// already stored for the pair. It returns nil when either the dish or the ingredient is missing.
func (d *Dishes) AddOrUpdateIngredient(ctx context.Context, dishID uint, ingredientID uint, weight float64) (*model.Dish, error) {
	var dish *model.Dish

	err := d.repo.Session(ctx, func(tx *gorm.DB) error {
		found, err := take[model.Dish](tx, dishID)
		if err != nil || found == nil {
			return err
		}

		ingredient, err := take[model.Ingredient](tx, ingredientID)
		if err != nil || ingredient == nil {
			return err
		}

		row := model.DishIngredient{DishID: dishID, IngredientID: ingredientID, Weight: weight}

		err = tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dish_id"}, {Name: "ingredient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"weight"}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		dish = found

		return nil
	})
	if err != nil {
		d.repo.Logger.Error("error storing dish ingredient",
			zap.Uint("dish_id", dishID), zap.Uint("ingredient_id", ingredientID), zap.Error(err))

		return nil, err
	}

	return dish, nil
}

func (d *Dishes) RemoveIngredient(ctx context.Context, dishID uint, ingredientID uint) error {
	return d.repo.Session(ctx, func(tx *gorm.DB) error {
		return tx.Where("dish_id = ? AND ingredient_id = ?", dishID, ingredientID).
			Delete(&model.DishIngredient{}).Error
	})
}

func (d *Dishes) GetIngredients(ctx context.Context, dishID uint) ([]model.IngredientWeight, error) {
	var ingredients []model.IngredientWeight

	err := d.repo.Session(ctx, func(tx *gorm.DB) error {
		return tx.Table("ingredients").
			Select("ingredients.id, ingredients.name, di.weight").
			Joins("INNER JOIN dish_ingredients di on di.ingredient_id = ingredients.id").
			Where("di.dish_id = ?", dishID).
			Order("ingredients.id").
			Scan(&ingredients).Error
	})
	if err != nil {
		return nil, err
	}

	return ingredients, nil
}

func (d *Dishes) GetAvailableCooks(ctx context.Context) ([]model.Cook, error) {
	var cooks []model.Cook

	err := d.repo.Session(ctx, func(tx *gorm.DB) error {
		return tx.Order("name, id").Find(&cooks).Error
	})
	if err != nil {
		return nil, err
	}

	return cooks, nil
}

func (d *Dishes) GetAvailableIngredients(ctx context.Context) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient

	err := d.repo.Session(ctx, func(tx *gorm.DB) error {
		return tx.Order("name, id").Find(&ingredients).Error
	})
	if err != nil {
		return nil, err
	}

	return ingredients, nil
}

// SetDishCook changes the owner of a dish. A nil cookID leaves the dish without an owner.
func (d *Dishes) SetDishCook(ctx context.Context, dishID uint, cookID *uint) error {
	return d.repo.Session(ctx, func(tx *gorm.DB) error {
		dish, err := take[model.Dish](tx, dishID)
		if err != nil {
			return err
		}

		if dish == nil {
			return fmt.Errorf("%w: dish %d", ErrNotFound, dishID)
		}

		if cookID != nil {
			cook, err := take[model.Cook](tx, *cookID)
			if err != nil {
				return err
			}

			if cook == nil {
				return fmt.Errorf("%w: cook %d", ErrNotFound, *cookID)
			}
		}

		return tx.Model(dish).Update("cook_id", cookID).Error
	})
}
