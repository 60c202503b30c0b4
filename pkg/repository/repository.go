package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"droscher.com/CookBook/pkg/model"
)

var ErrNotFound = errors.New("record not found")

// Base implements the operations shared by every catalog entity. Each call opens its own
// session; nothing is held between calls.
type Base[T model.Entity] struct {
	repo *Repository
}

func NewBase[T model.Entity](repo *Repository) Base[T] {
	return Base[T]{repo: repo}
}

func (b Base[T]) FindAll(ctx context.Context) ([]T, error) {
	var entities []T

	err := b.repo.Session(ctx, func(tx *gorm.DB) error {
		return tx.Order("id").Find(&entities).Error
	})
	if err != nil {
		return nil, err
	}

	return entities, nil
}

// FindOneOrNone returns nil without an error when no row has the given id.
func (b Base[T]) FindOneOrNone(ctx context.Context, id uint) (*T, error) {
	var entity *T

	err := b.repo.Session(ctx, func(tx *gorm.DB) error {
		found, err := take[T](tx, id)
		entity = found

		return err
	})
	if err != nil {
		return nil, err
	}

	return entity, nil
}

// FindByName returns the lowest-id entity whose name contains query, ignoring case.
func (b Base[T]) FindByName(ctx context.Context, query string) (*T, error) {
	matches, err := b.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, nil //nolint:nilnil // absence is not an error for reads
	}

	return &matches[0], nil
}

// SearchByName returns every entity whose name contains query, ignoring case, lowest id first.
// Names are folded in Go: sqlite's LOWER and LIKE only fold ASCII, and LIKE would treat % and _
// in the query as wildcards.
func (b Base[T]) SearchByName(ctx context.Context, query string) ([]T, error) {
	entities, err := b.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]T, 0, len(entities))

	for _, entity := range entities {
		if strings.Contains(strings.ToLower(nameOf(entity)), needle) {
			matches = append(matches, entity)
		}
	}

	return matches, nil
}

func (b Base[T]) Add(ctx context.Context, entity T) (*T, error) {
	err := b.repo.Session(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&entity).Error
	})
	if err != nil {
		b.repo.Logger.Error("error adding entity", zap.String("type", typeName[T]()), zap.Error(err))

		return nil, err
	}

	return &entity, nil
}

// Update applies fields to the row with the given id and returns the refreshed row.
func (b Base[T]) Update(ctx context.Context, id uint, fields map[string]any) (*T, error) {
	var entity *T

	err := b.repo.Session(ctx, func(tx *gorm.DB) error {
		existing, err := take[T](tx, id)
		if err != nil {
			return err
		}

		if existing == nil {
			return fmt.Errorf("%w: %s %d", ErrNotFound, typeName[T](), id)
		}

		if len(fields) > 0 {
			if err := tx.Model(existing).Omit(clause.Associations).Updates(fields).Error; err != nil {
				return err
			}
		}

		entity, err = take[T](tx, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return entity, nil
}

// Delete removes the stored row with the entity's id. Storage constraint violations are
// returned unchanged.
func (b Base[T]) Delete(ctx context.Context, entity T) error {
	id := entity.PrimaryKey()

	return b.repo.Session(ctx, func(tx *gorm.DB) error {
		existing, err := take[T](tx, id)
		if err != nil {
			return err
		}

		if existing == nil {
			return fmt.Errorf("%w: %s %d", ErrNotFound, typeName[T](), id)
		}

		return tx.Delete(existing).Error
	})
}

// DeleteByID removes the row with the given id if there is one.
func (b Base[T]) DeleteByID(ctx context.Context, id uint) error {
	return b.repo.Session(ctx, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(new(T)).Error
	})
}

func take[T model.Entity](tx *gorm.DB, id uint) (*T, error) {
	var entity T

	result := tx.Where("id = ?", id).Take(&entity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil //nolint:nilnil // absence is not an error for reads
		}

		return nil, result.Error
	}

	return &entity, nil
}

func nameOf[T model.Entity](entity T) string {
	switch e := any(entity).(type) {
	case model.Cook:
		return e.Name
	case model.Dish:
		return e.Name
	case model.Ingredient:
		return e.Name
	default:
		return ""
	}
}

func typeName[T model.Entity]() string {
	var entity T

	switch any(entity).(type) {
	case model.Cook:
		return "cook"
	case model.Dish:
		return "dish"
	default:
		return "ingredient"
	}
}
