package seed

import (
	"context"
	"fmt"

	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"gorm.io/gorm"
)

type categorySeed struct {
	name   string
	parent string
}

type ingredientSeed struct {
	name     string
	unitType string
}

var (
	unitTypes = []string{"peso", "volumen", "unitario"}

	units = []struct {
		name     string
		unitType string
	}{
		{"gramos", "peso"},
		{"kilogramos", "peso"},
		{"mililitros", "volumen"},
		{"litros", "volumen"},
		{"cucharadas", "unitario"},
		{"cucharaditas", "unitario"},
		{"unidades", "unitario"},
	}

	categories = []categorySeed{
		{"Root", ""},
		{"Categorias", "Root"},
		{"Tipo de cocina", "Root"},
		{"Origen", "Root"},
		{"Comida", "Categorias"},
		{"Desayuno", "Categorias"},
		{"Cena", "Categorias"},
		{"Postre", "Categorias"},
		{"Snack", "Categorias"},
		{"Al vapor", "Tipo de cocina"},
		{"Guiso", "Tipo de cocina"},
		{"Frito", "Tipo de cocina"},
		{"Asado", "Tipo de cocina"},
		{"Italiana", "Origen"},
		{"Española", "Origen"},
		{"Japonesa", "Origen"},
	}

	ingredients = []ingredientSeed{
		{"Harina", "peso"},
		{"Azúcar", "peso"},
		{"Arroz", "peso"},
		{"Leche", "volumen"},
		{"Aceite de oliva", "volumen"},
		{"Huevo", "unitario"},
		{"Cebolla", "unitario"},
		{"Tomate", "unitario"},
	}
)

// Seed inserts the reference catalog owned by ownerID. Existing rows are
// matched by name and left alone.
func Seed(ctx context.Context, db *gorm.DB, ownerID uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner := entities.User{ID: ownerID, Username: "admin", Email: "admin@example.com", Role: entities.RoleAdmin}
		if err := tx.Where(entities.User{ID: ownerID}).FirstOrCreate(&owner).Error; err != nil {
			return fmt.Errorf("seed owner: %w", err)
		}
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT setval(pg_get_serial_sequence('users', 'id'), (SELECT MAX(id) FROM users))").Error; err != nil {
				return fmt.Errorf("seed owner sequence: %w", err)
			}
		}

		typeIDs := make(map[string]uint, len(unitTypes))
		for _, name := range unitTypes {
			ut := entities.UnitType{Name: name}
			if err := tx.Where(entities.UnitType{Name: name}).FirstOrCreate(&ut).Error; err != nil {
				return fmt.Errorf("seed unit type %s: %w", name, err)
			}
			typeIDs[name] = ut.ID
		}

		for _, u := range units {
			unit := entities.Unit{Name: u.name, UnitTypeID: typeIDs[u.unitType]}
			if err := tx.Where(entities.Unit{Name: u.name}).FirstOrCreate(&unit).Error; err != nil {
				return fmt.Errorf("seed unit %s: %w", u.name, err)
			}
		}

		categoryIDs := make(map[string]uint, len(categories))
		for _, c := range categories {
			category := entities.Category{Name: c.name, UserID: ownerID}
			if c.parent != "" {
				parentID := categoryIDs[c.parent]
				category.ParentCategoryID = &parentID
			}
			if err := tx.Where(entities.Category{Name: c.name}).FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", c.name, err)
			}
			categoryIDs[c.name] = category.ID
		}

		for _, i := range ingredients {
			ingredient := entities.Ingredient{
				Name:       i.name,
				UserID:     ownerID,
				UnitTypeID: typeIDs[i.unitType],
				IsApproved: true,
			}
			if err := tx.Where(entities.Ingredient{Name: i.name}).FirstOrCreate(&ingredient).Error; err != nil {
				return fmt.Errorf("seed ingredient %s: %w", i.name, err)
			}
		}
		return nil
	})
}
