package entities

type Recipe struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	UserID          uint   `gorm:"index" json:"user_id"`
	Name            string `gorm:"size:50;not null" json:"name"`
	Description     string `gorm:"size:100" json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Commensals      int    `json:"commensals"`
	Version         int    `gorm:"not null;default:1" json:"version"`

	User        *User               `gorm:"foreignKey:UserID" json:"-"`
	Categories  []*Category         `gorm:"many2many:categories_recipes" json:"-"`
	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID" json:"-"`
	Steps       []*Step             `gorm:"foreignKey:RecipeID" json:"-"`
	Timestamp
}

type RecipeIngredient struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	RecipeID     uint    `gorm:"uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint    `gorm:"uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	UnitID       uint    `json:"unit_id"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
	Unit       *Unit       `gorm:"foreignKey:UnitID" json:"-"`
	Timestamp
}

type Step struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RecipeID    uint   `gorm:"uniqueIndex:idx_recipe_step_order" json:"recipe_id"`
	Order       int    `gorm:"column:step_order;uniqueIndex:idx_recipe_step_order" json:"order"`
	Description string `gorm:"size:100;not null" json:"description"`

	Timestamp
}

type Favorite struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID uint `gorm:"uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
	Timestamp
}
