package presenters

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, fiber.StatusOK},
		{"payload", domain.NewPayloadError("name", "required"), fiber.StatusBadRequest},
		{"reference", &domain.ReferenceNotFoundError{Field: "unit", ID: 9}, fiber.StatusBadRequest},
		{"wrapped format", fmt.Errorf("photo: %w", domain.ErrUnsupportedFormat), fiber.StatusBadRequest},
		{"token", domain.ErrTokenExpired, fiber.StatusUnauthorized},
		{"forbidden", domain.ErrUnauthorizedRecipeAccess, fiber.StatusForbidden},
		{"missing", domain.ErrRecipeNotFound, fiber.StatusNotFound},
		{"conflict", domain.ErrConflict, fiber.StatusConflict},
		{"other", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFromError(tc.err))
		})
	}
}
