package handlers

import (
	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/api/presenters"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/middleware"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/shopping"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingHandler interface {
		GetItems(c *fiber.Ctx) error
		AddItem(c *fiber.Ctx) error
		UpdateItem(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		AddRecipe(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		shoppingService shopping.ShoppingService
		validator       *validator.Validate
	}
)

func NewShoppingHandler(shoppingService shopping.ShoppingService, validator *validator.Validate) ShoppingHandler {
	return &shoppingHandler{
		shoppingService: shoppingService,
		validator:       validator,
	}
}

func (h *shoppingHandler) GetItems(c *fiber.Ctx) error {
	res, err := h.shoppingService.ListItems(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetShoppingList, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShoppingList)
}

func (h *shoppingHandler) AddItem(c *fiber.Ctx) error {
	req := new(domain.AddShoppingItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddShoppingItem, err)
	}

	res, err := h.shoppingService.AddItem(c.Context(), *req, middleware.ActorFrom(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedAddShoppingItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddShoppingItem)
}

func (h *shoppingHandler) UpdateItem(c *fiber.Ctx) error {
	itemID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateShoppingItem, err)
	}

	req := new(domain.UpdateShoppingItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateShoppingItem, err)
	}

	res, err := h.shoppingService.UpdateItem(c.Context(), itemID, *req, middleware.ActorFrom(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateShoppingItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateShoppingItem)
}

func (h *shoppingHandler) DeleteItem(c *fiber.Ctx) error {
	itemID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteShoppingItem, err)
	}

	if err := h.shoppingService.DeleteItem(c.Context(), itemID, middleware.ActorFrom(c)); err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteShoppingItem, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteShoppingItem)
}

func (h *shoppingHandler) AddRecipe(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddRecipeToList, err)
	}

	res, err := h.shoppingService.AddRecipeToList(c.Context(), recipeID, middleware.ActorFrom(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedAddRecipeToList, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAddRecipeToList)
}
