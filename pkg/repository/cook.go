package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"droscher.com/CookBook/pkg/model"
)

type CookRepository interface {
	FindAll(ctx context.Context) ([]model.Cook, error)
	FindOneOrNone(ctx context.Context, id uint) (*model.Cook, error)
	FindByName(ctx context.Context, query string) (*model.Cook, error)
	SearchByName(ctx context.Context, query string) ([]model.Cook, error)
	Add(ctx context.Context, cook model.Cook) (*model.Cook, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*model.Cook, error)
	Delete(ctx context.Context, cook model.Cook) error
	DeleteByID(ctx context.Context, id uint) error
	GetTopCooks(ctx context.Context, limit int) ([]model.TopCook, error)
	GetDishesByCookID(ctx context.Context, cookID uint) ([]model.Dish, error)
}

type Cooks struct {
	Base[model.Cook]
}

var _ CookRepository = (*Cooks)(nil)

func NewCooks(repo *Repository) *Cooks {
	return &Cooks{Base: NewBase[model.Cook](repo)}
}

// GetTopCooks ranks cooks by the number of dishes they own, most first. Cooks with the same
// number of dishes are ordered by id.
func (c *Cooks) GetTopCooks(ctx context.Context, limit int) ([]model.TopCook, error) {
	var cooks []model.TopCook

	err := c.repo.Session(ctx, func(tx *gorm.DB) error {
		return tx.Table("cooks").
			Select("cooks.id, cooks.name, cooks.bio, count(dishes.id) as dish_count").
			Joins("LEFT JOIN dishes on dishes.cook_id = cooks.id").
			Group("cooks.id, cooks.name, cooks.bio").
			Order("dish_count desc, cooks.id asc").
			Limit(limit).
			Scan(&cooks).Error
	})
	if err != nil {
		c.repo.Logger.Error("error getting top cooks", zap.Int("limit", limit), zap.Error(err))

		return nil, err
	}

	return cooks, nil
}

func (c *Cooks) GetDishesByCookID(ctx context.Context, cookID uint) ([]model.Dish, error) {
	var dishes []model.Dish

	err := c.repo.Session(ctx, func(tx *gorm.DB) error {
		return tx.Where("cook_id = ?", cookID).Order("id").Find(&dishes).Error
	})
	if err != nil {
		return nil, err
	}

	return dishes, nil
}
