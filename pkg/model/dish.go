package model

type Dish struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"not null"   validate:"required"`
	Description string  `gorm:"not null"`
	Recipe      string  `gorm:"not null"`
	ImageURL    *string
	CookID      *uint   `gorm:"index"`

	Cook *Cook `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (d Dish) PrimaryKey() uint {
	return d.ID
}

// DishIngredient is the association row between a dish and an ingredient.
type DishIngredient struct {
	DishID       uint    `gorm:"primaryKey;autoIncrement:false"`
	IngredientID uint    `gorm:"primaryKey;autoIncrement:false"`
	Weight       float64 `gorm:"not null"`

	Dish       Dish       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Ingredient Ingredient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

// IngredientWeight is an ingredient of a dish along with its weight in that dish.
type IngredientWeight struct {
	ID     uint
	Name   string
	Weight float64
}
