package viewmodel

import (
	"context"

	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/repository"
)

type DishSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type CookDetail struct {
	ID     uint          `json:"id"`
	Name   string        `json:"name"`
	Bio    string        `json:"bio"`
	Dishes []DishSummary `json:"dishes"`
}

type CookViewModel struct {
	Base[model.Cook, []model.Dish]
}

func NewCookViewModel(cooks repository.CookRepository) *CookViewModel {
	return &CookViewModel{
		Base: newBase[model.Cook, []model.Dish](cooks, "cook", cookColumns, func(ctx context.Context, cook model.Cook) ([]model.Dish, error) {
			return cooks.GetDishesByCookID(ctx, cook.ID)
		}),
	}
}

// Detail serializes the current cook and its dishes.
func (c *CookViewModel) Detail(ctx context.Context) (*CookDetail, error) {
	cook, ok := c.Current()
	if !ok {
		return nil, c.notLoaded()
	}

	dishes, err := c.Related(ctx)
	if err != nil {
		return nil, err
	}

	return &CookDetail{ID: cook.ID, Name: cook.Name, Bio: cook.Bio, Dishes: summarizeDishes(dishes)}, nil
}

func cookColumns(cook model.Cook) map[string]any {
	return map[string]any{"name": cook.Name, "bio": cook.Bio}
}

func summarizeDishes(dishes []model.Dish) []DishSummary {
	summaries := make([]DishSummary, 0, len(dishes))

	for _, dish := range dishes {
		summary := DishSummary{ID: dish.ID, Name: dish.Name, Description: dish.Description}
		if dish.ImageURL != nil {
			summary.ImageURL = *dish.ImageURL
		}

		summaries = append(summaries, summary)
	}

	return summaries
}
