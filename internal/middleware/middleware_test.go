package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJWT struct{}

func (stubJWT) GenerateTokenUser(uint, string) (string, error) { return "", nil }
func (stubJWT) ValidateTokenUser(string) (*gojwt.Token, error) { return nil, nil }
func (stubJWT) GetUserIDByToken(token string) (uint, string, error) {
	if token == "good" {
		return 7, domain.RoleAdmin, nil
	}
	return 0, "", domain.ErrTokenInvalid
}

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers = append(handlers, func(c *fiber.Ctx) error {
		actor := ActorFrom(c)
		return c.JSON(fiber.Map{"user_id": actor.UserID, "role": actor.Role})
	})
	app.Get("/", handlers...)
	return app
}

func do(t *testing.T, app *fiber.App, token string) int {
	req := httptest.NewRequest("GET", "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	return res.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	m := NewMiddleware()
	app := newApp(m.AuthMiddleware(stubJWT{}))

	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, ""))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "bad"))
	assert.Equal(t, fiber.StatusOK, do(t, app, "good"))
}

func TestOptionalAuth(t *testing.T) {
	m := NewMiddleware()
	app := newApp(m.OptionalAuth(stubJWT{}))

	assert.Equal(t, fiber.StatusOK, do(t, app, ""))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "bad"))
	assert.Equal(t, fiber.StatusOK, do(t, app, "good"))
}

func TestAdminOnly(t *testing.T) {
	m := NewMiddleware()
	app := newApp(m.OptionalAuth(stubJWT{}), m.AdminOnly())

	assert.Equal(t, fiber.StatusForbidden, do(t, app, ""))
	assert.Equal(t, fiber.StatusOK, do(t, app, "good"))
}
