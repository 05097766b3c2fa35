package presenters

import (
	"errors"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

type ErrorDetail struct {
	Reason string `json:"reason"`
	Field  string `json:"field,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		detail := ErrorDetail{Reason: err.Error()}
		var payload *domain.PayloadError
		var ref *domain.ReferenceNotFoundError
		switch {
		case errors.As(err, &payload):
			detail.Field = payload.Field
		case errors.As(err, &ref):
			detail.Field = ref.Field
		}
		res.Error = detail
	}
	return c.Status(statusCode).JSON(res)
}

// StatusFromError maps service errors onto HTTP status codes.
func StatusFromError(err error) int {
	var payload *domain.PayloadError
	var ref *domain.ReferenceNotFoundError
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &payload), errors.As(err, &ref), errors.Is(err, domain.ErrUnsupportedFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenNotFound):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotAllowed),
		errors.Is(err, domain.ErrUnauthorizedRecipeAccess),
		errors.Is(err, domain.ErrUnauthorizedShoppingItem):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound),
		errors.Is(err, domain.ErrShoppingItemNotFound),
		errors.Is(err, domain.ErrImageNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Fail writes err with the status StatusFromError picks for it.
func Fail(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFromError(err), message, err)
}
