package shopping

import (
	"context"
	"testing"
	"time"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/testutil"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/logger"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingService(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	log := logger.Nop()
	resolver := catalog.NewCatalogService(catalog.NewCatalogRepository(db), nil, time.Minute, log)
	svc := NewShoppingService(db, NewShoppingRepository(db), resolver, log)

	u := testutil.CreateUser(t, db, "shopper", entities.RoleUser)
	o := testutil.CreateUser(t, db, "someone", entities.RoleUser)
	me := domain.Actor{UserID: u.ID, Role: u.Role}
	them := domain.Actor{UserID: o.ID, Role: o.Role}

	egg := testutil.Ingredient(t, db, "Huevo").ID
	rice := testutil.Ingredient(t, db, "Arroz").ID
	units := testutil.Unit(t, db, "unidades").ID
	grams := testutil.Unit(t, db, "gramos").ID

	t.Run("add merges open items", func(t *testing.T) {
		first, err := svc.AddItem(ctx, domain.AddShoppingItemRequest{Ingredient: egg, Quantity: 2, Unit: units}, me)
		require.NoError(t, err)
		assert.Equal(t, "Huevo", first.IngredientName)
		assert.Equal(t, "unidades", first.UnitName)

		second, err := svc.AddItem(ctx, domain.AddShoppingItemRequest{Ingredient: egg, Quantity: 4, Unit: units}, me)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 6.0, second.QuantityNeeded)
	})

	t.Run("unknown references", func(t *testing.T) {
		_, err := svc.AddItem(ctx, domain.AddShoppingItemRequest{Ingredient: 999, Quantity: 1, Unit: units}, me)
		var ref *domain.ReferenceNotFoundError
		require.ErrorAs(t, err, &ref)
		assert.Equal(t, "ingredient", ref.Field)
	})

	t.Run("purchased items are not merged", func(t *testing.T) {
		items, err := svc.ListItems(ctx, me)
		require.NoError(t, err)
		require.Len(t, items, 1)

		bought := true
		updated, err := svc.UpdateItem(ctx, items[0].ID, domain.UpdateShoppingItemRequest{IsPurchased: &bought}, me)
		require.NoError(t, err)
		assert.True(t, updated.IsPurchased)

		fresh, err := svc.AddItem(ctx, domain.AddShoppingItemRequest{Ingredient: egg, Quantity: 1, Unit: units}, me)
		require.NoError(t, err)
		assert.NotEqual(t, items[0].ID, fresh.ID)
	})

	t.Run("other users cannot touch my items", func(t *testing.T) {
		items, err := svc.ListItems(ctx, me)
		require.NoError(t, err)
		_, err = svc.UpdateItem(ctx, items[0].ID, domain.UpdateShoppingItemRequest{}, them)
		assert.ErrorIs(t, err, domain.ErrUnauthorizedShoppingItem)
		assert.ErrorIs(t, svc.DeleteItem(ctx, items[0].ID, them), domain.ErrUnauthorizedShoppingItem)

		theirs, err := svc.ListItems(ctx, them)
		require.NoError(t, err)
		assert.Empty(t, theirs)
	})

	t.Run("add recipe to list", func(t *testing.T) {
		recipe := &entities.Recipe{UserID: o.ID, Name: "Arroz con huevo", DurationMinutes: 10, Commensals: 1, Version: 1}
		require.NoError(t, db.Create(recipe).Error)
		require.NoError(t, db.Create(&entities.RecipeIngredient{RecipeID: recipe.ID, IngredientID: egg, Quantity: 2, UnitID: units}).Error)
		require.NoError(t, db.Create(&entities.RecipeIngredient{RecipeID: recipe.ID, IngredientID: rice, Quantity: 150, UnitID: grams}).Error)

		items, err := svc.AddRecipeToList(ctx, recipe.ID, me)
		require.NoError(t, err)

		var openEgg, riceItem *domain.ShoppingItemResponse
		for i := range items {
			switch {
			case items[i].Ingredient == egg && !items[i].IsPurchased:
				openEgg = &items[i]
			case items[i].Ingredient == rice:
				riceItem = &items[i]
			}
		}
		require.NotNil(t, openEgg)
		require.NotNil(t, riceItem)
		assert.Equal(t, 3.0, openEgg.QuantityNeeded)
		assert.Equal(t, 150.0, riceItem.QuantityNeeded)

		_, err = svc.AddRecipeToList(ctx, 4321, me)
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		items, err := svc.ListItems(ctx, me)
		require.NoError(t, err)
		require.NoError(t, svc.DeleteItem(ctx, items[0].ID, me))
		assert.ErrorIs(t, svc.DeleteItem(ctx, items[0].ID, me), domain.ErrShoppingItemNotFound)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.ListItems(ctx, domain.Actor{})
		assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
	})
}
