package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeFormFromJSON(t *testing.T) {
	var got domain.RecipeForm
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		form, err := recipeForm(c)
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		got = form
		return c.SendStatus(fiber.StatusOK)
	})

	body := `{
		"name": "Sopa",
		"commensals": 3,
		"description": null,
		"categories": [2, 1],
		"steps_data": "[{\"order\":1,\"description\":\"Hervir\"}]",
		"ingredients_data": [{"ingredient": 1, "quantity": 2, "unit": 3}]
	}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	assert.Equal(t, []string{"Sopa"}, got.Values["name"])
	assert.Equal(t, []string{"3"}, got.Values["commensals"])
	assert.NotContains(t, got.Values, "description")
	assert.Equal(t, []string{"[2, 1]"}, got.Values["categories"])
	assert.Equal(t, []string{`[{"order":1,"description":"Hervir"}]`}, got.Values["steps_data"])
	assert.Equal(t, []string{`[{"ingredient": 1, "quantity": 2, "unit": 3}]`}, got.Values["ingredients_data"])

	req = httptest.NewRequest("POST", "/", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestPagination(t *testing.T) {
	app := fiber.New()
	var got domain.PaginationQuery
	app.Get("/", func(c *fiber.Ctx) error {
		got = pagination(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/?page=0&limit=1000", nil))
	require.NoError(t, err)
	assert.Equal(t, domain.PaginationQuery{Page: 1, Limit: 20}, got)
}
