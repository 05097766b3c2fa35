package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetShoppingList    = "success get shopping list"
	MessageSuccessAddShoppingItem    = "shopping list item added"
	MessageSuccessUpdateShoppingItem = "shopping list item updated"
	MessageSuccessDeleteShoppingItem = "shopping list item deleted"
	MessageSuccessAddRecipeToList    = "recipe ingredients added to shopping list"

	MessageFailedGetShoppingList    = "failed to get shopping list"
	MessageFailedAddShoppingItem    = "failed to add shopping list item"
	MessageFailedUpdateShoppingItem = "failed to update shopping list item"
	MessageFailedDeleteShoppingItem = "failed to delete shopping list item"
	MessageFailedAddRecipeToList    = "failed to add recipe to shopping list"

	ErrShoppingItemNotFound     = errors.New("shopping list item not found")
	ErrUnauthorizedShoppingItem = errors.New("unauthorized access to shopping list item")
)

type (
	AddShoppingItemRequest struct {
		Ingredient uint    `json:"ingredient" validate:"required,gt=0"`
		Quantity   float64 `json:"quantity_needed" validate:"required,gt=0"`
		Unit       uint    `json:"unit" validate:"required,gt=0"`
	}

	UpdateShoppingItemRequest struct {
		Quantity    *float64 `json:"quantity_needed" validate:"omitempty,gt=0"`
		IsPurchased *bool    `json:"is_purchased"`
	}

	ShoppingItemResponse struct {
		ID             uint      `json:"id"`
		Ingredient     uint      `json:"ingredient"`
		IngredientName string    `json:"ingredient_name"`
		QuantityNeeded float64   `json:"quantity_needed"`
		Unit           uint      `json:"unit"`
		UnitName       string    `json:"unit_name"`
		IsPurchased    bool      `json:"is_purchased"`
		UpdatedAt      time.Time `json:"updated_at"`
	}
)
