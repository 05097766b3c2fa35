package handlers

import (
	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/api/presenters"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/middleware"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/image"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Me(c *fiber.Ctx) error
		GetProfileImage(c *fiber.Ctx) error
		UploadProfileImage(c *fiber.Ctx) error
		DeleteProfileImage(c *fiber.Ctx) error
	}

	userHandler struct {
		imageService image.ImageService
	}
)

func NewUserHandler(imageService image.ImageService) UserHandler {
	return &userHandler{
		imageService: imageService,
	}
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	return presenters.SuccessResponse(c, fiber.Map{
		"user_id": actor.UserID,
		"role":    actor.Role,
	}, fiber.StatusOK, domain.MessageSuccessGetMe)
}

func (h *userHandler) GetProfileImage(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	img, err := h.imageService.Get(c.Context(), actor.UserID, entities.ImageKindUser)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetImage, err)
	}
	if img == nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetImage, domain.ErrImageNotFound)
	}
	return presenters.SuccessResponse(c, image.View(img, actor.IsAdmin()), fiber.StatusOK, domain.MessageSuccessGetImage)
}

func (h *userHandler) UploadProfileImage(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	header, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNoImage, err)
	}

	img, err := h.imageService.IngestFile(c.Context(), header, actor.UserID, entities.ImageKindUser)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, image.View(img, actor.IsAdmin()), fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *userHandler) DeleteProfileImage(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	if err := h.imageService.Remove(c.Context(), actor.UserID, entities.ImageKindUser); err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteImage, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteImage)
}
