package entities

type ShoppingListItem struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	UserID         uint    `gorm:"index" json:"user_id"`
	IngredientID   uint    `json:"ingredient_id"`
	QuantityNeeded float64 `json:"quantity_needed"`
	UnitID         uint    `json:"unit_id"`
	IsPurchased    bool    `json:"is_purchased"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
	Unit       *Unit       `gorm:"foreignKey:UnitID" json:"-"`
	Timestamp
}
