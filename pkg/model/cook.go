package model

type Cook struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"   validate:"required"`
	Bio  string `gorm:"not null"`
}

func (c Cook) PrimaryKey() uint {
	return c.ID
}

// TopCook is a cook together with the number of dishes it owns.
type TopCook struct {
	ID        uint
	Name      string
	Bio       string
	DishCount int64
}
