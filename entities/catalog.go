package entities

type Category struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Name             string `gorm:"size:50;uniqueIndex" json:"name"`
	UserID           uint   `json:"user_id"`
	ParentCategoryID *uint  `json:"parent_category_id,omitempty"`

	Parent *Category `gorm:"foreignKey:ParentCategoryID" json:"-"`
	Timestamp
}

type UnitType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:15;uniqueIndex" json:"name"`

	Timestamp
}

type Unit struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:15;uniqueIndex" json:"name"`
	UnitTypeID uint   `json:"unit_type_id"`

	UnitType *UnitType `gorm:"foreignKey:UnitTypeID" json:"-"`
	Timestamp
}

type Ingredient struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:50;uniqueIndex" json:"name"`
	UserID     uint   `json:"user_id"`
	UnitTypeID uint   `json:"unit_type_id"`
	IsApproved bool   `json:"is_approved"`

	UnitType   *UnitType   `gorm:"foreignKey:UnitTypeID" json:"-"`
	Categories []*Category `gorm:"many2many:categories_ingredients" json:"-"`
	Timestamp
}
