package migration

import (
	"fmt"

	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"unit type", &entities.UnitType{}},
		{"unit", &entities.Unit{}},
		{"category", &entities.Category{}},
		{"ingredient", &entities.Ingredient{}},
		{"recipe", &entities.Recipe{}},
		{"recipe ingredient", &entities.RecipeIngredient{}},
		{"step", &entities.Step{}},
		{"favorite", &entities.Favorite{}},
		{"shopping list item", &entities.ShoppingListItem{}},
		{"image", &entities.Image{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}
	return nil
}
