package model

type Ingredient struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"   validate:"required"`
}

func (i Ingredient) PrimaryKey() uint {
	return i.ID
}

// Entity is the set of catalog records that share the generic repository and view-model.
type Entity interface {
	Cook | Dish | Ingredient

	PrimaryKey() uint
}

// Models lists every table of the schema in dependency order.
func Models() []any {
	return []any{&Cook{}, &Dish{}, &Ingredient{}, &DishIngredient{}}
}
