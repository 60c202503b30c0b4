// Package viewmodel mediates between the repositories and the views. A detail view-model
// holds at most one current entity and its related collection; a list view-model holds the
// collection shown by a list screen.
package viewmodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"droscher.com/CookBook/pkg/model"
)

var (
	ErrNotLoaded   = errors.New("nothing loaded")
	ErrEmptyEntity = errors.New("cannot add an empty entity")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type entityRepository[T model.Entity] interface {
	FindOneOrNone(ctx context.Context, id uint) (*T, error)
	Add(ctx context.Context, entity T) (*T, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*T, error)
	Delete(ctx context.Context, entity T) error
}

// Base holds the currently loaded entity of type T and its related collection R.
type Base[T model.Entity, R any] struct {
	repository  entityRepository[T]
	name        string
	current     *T
	related     *R
	columns     func(entity T) map[string]any
	loadRelated func(ctx context.Context, entity T) (R, error)
}

func newBase[T model.Entity, R any](
	repository entityRepository[T],
	name string,
	columns func(T) map[string]any,
	loadRelated func(context.Context, T) (R, error),
) Base[T, R] {
	return Base[T, R]{repository: repository, name: name, columns: columns, loadRelated: loadRelated}
}

// Add stores a new entity. Required fields must be set.
func (b *Base[T, R]) Add(ctx context.Context, entity *T) (*T, error) {
	return addEntity[T](ctx, b.repository, b.name, entity)
}

// Load makes the entity with the given id current. When there is no such entity nothing is
// loaded afterwards. The related collection is always dropped.
func (b *Base[T, R]) Load(ctx context.Context, id uint) error {
	b.current = nil
	b.related = nil

	entity, err := b.repository.FindOneOrNone(ctx, id)
	if err != nil {
		return err
	}

	b.current = entity

	return nil
}

func (b *Base[T, R]) Current() (T, bool) {
	if b.current == nil {
		var zero T

		return zero, false
	}

	return *b.current, true
}

func (b *Base[T, R]) Loaded() bool {
	return b.current != nil
}

// Modify applies fn to the current entity in memory. Use Update to persist the change.
func (b *Base[T, R]) Modify(fn func(entity *T)) error {
	if b.current == nil {
		return b.notLoaded()
	}

	fn(b.current)

	return nil
}

func (b *Base[T, R]) Delete(ctx context.Context) error {
	if b.current == nil {
		return b.notLoaded()
	}

	if err := b.repository.Delete(ctx, *b.current); err != nil {
		return err
	}

	b.current = nil
	b.related = nil

	return nil
}

// Update persists every column of the current entity except its identity.
func (b *Base[T, R]) Update(ctx context.Context) error {
	if b.current == nil {
		return b.notLoaded()
	}

	updated, err := b.repository.Update(ctx, (*b.current).PrimaryKey(), b.columns(*b.current))
	if err != nil {
		return err
	}

	b.current = updated

	return nil
}

// LoadRelatedData replaces the cached related collection of the current entity.
func (b *Base[T, R]) LoadRelatedData(ctx context.Context) (R, error) {
	var zero R

	if b.current == nil {
		return zero, b.notLoaded()
	}

	related, err := b.loadRelated(ctx, *b.current)
	if err != nil {
		return zero, err
	}

	b.related = &related

	return related, nil
}

// Related returns the cached related collection, loading it first if needed.
func (b *Base[T, R]) Related(ctx context.Context) (R, error) {
	if b.related != nil {
		return *b.related, nil
	}

	return b.LoadRelatedData(ctx)
}

func (b *Base[T, R]) notLoaded() error {
	return fmt.Errorf("%w: %s", ErrNotLoaded, b.name)
}

type adder[T model.Entity] interface {
	Add(ctx context.Context, entity T) (*T, error)
}

func addEntity[T model.Entity](ctx context.Context, repository adder[T], name string, entity *T) (*T, error) {
	if entity == nil {
		return nil, fmt.Errorf("%w: %s is nil", ErrEmptyEntity, name)
	}

	if err := validate.Struct(entity); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEmptyEntity, name, err)
	}

	return repository.Add(ctx, *entity)
}
