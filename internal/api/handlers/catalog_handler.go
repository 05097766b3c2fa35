package handlers

import (
	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/api/presenters"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/catalog"
	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		GetCategories(c *fiber.Ctx) error
		GetUnits(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService) CatalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
	}
}

func (h *catalogHandler) GetCategories(c *fiber.Ctx) error {
	res, err := h.catalogService.GetCategories(c.Context())
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetCategories, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCategories)
}

func (h *catalogHandler) GetUnits(c *fiber.Ctx) error {
	unitTypeID, err := queryID(c, "unit_type")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetUnits, err)
	}

	res, err := h.catalogService.GetUnits(c.Context(), unitTypeID)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetUnits, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUnits)
}

func (h *catalogHandler) GetIngredients(c *fiber.Ctx) error {
	page := pagination(c)
	items, total, err := h.catalogService.GetIngredients(c.Context(), c.Query("search"), page)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"ingredients": items,
		"pagination":  domain.NewPaginationResponse(page, total),
	}, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}
