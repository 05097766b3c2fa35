package handlers

import (
	"strings"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/api/presenters"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/image"
	"github.com/gofiber/fiber/v2"
)

type (
	ImageHandler interface {
		GetImages(c *fiber.Ctx) error
		GetAdminImages(c *fiber.Ctx) error
	}

	imageHandler struct {
		imageService image.ImageService
	}
)

func NewImageHandler(imageService image.ImageService) ImageHandler {
	return &imageHandler{
		imageService: imageService,
	}
}

func (h *imageHandler) GetImages(c *fiber.Ctx) error {
	return h.list(c, false)
}

// GetAdminImages is mounted behind AdminOnly and includes processing status.
func (h *imageHandler) GetAdminImages(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *imageHandler) list(c *fiber.Ctx, admin bool) error {
	ownerID, err := queryID(c, "external_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetImages, err)
	}

	filter := domain.ImageFilter{
		Kind:       c.Query("type"),
		OwnerID:    ownerID,
		OrderBy:    c.Query("orderby", "id"),
		Desc:       strings.EqualFold(c.Query("orderway"), "desc"),
		Pagination: pagination(c),
	}
	res, err := h.imageService.List(c.Context(), filter, admin)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetImages, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetImages)
}
