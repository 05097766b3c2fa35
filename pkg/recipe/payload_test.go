package recipe

import (
	"mime/multipart"
	"testing"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/testutil"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	utils.InitValidator()
}

func form(values map[string]string) domain.RecipeForm {
	f := domain.RecipeForm{Values: map[string][]string{}}
	for k, v := range values {
		f.Values[k] = []string{v}
	}
	return f
}

func validCreate() map[string]string {
	return map[string]string{
		"name":             "Tortilla",
		"description":      "Classic",
		"duration_minutes": "30",
		"commensals":       "4",
		"ingredients_data": `[{"ingredient": 1, "quantity": 2, "unit": 3}]`,
		"steps_data":       `[{"order": 1, "description": "Beat the eggs"}]`,
	}
}

func TestParseRecipePayload(t *testing.T) {
	t.Run("valid create", func(t *testing.T) {
		req, err := ParseRecipePayload(utils.Validate, form(validCreate()), true)
		require.NoError(t, err)
		assert.Equal(t, "Tortilla", *req.Name)
		assert.Equal(t, 30, *req.DurationMinutes)
		assert.True(t, req.HasIngredients)
		assert.Equal(t, []domain.RecipeIngredientItem{{Ingredient: 1, Quantity: 2, Unit: 3}}, req.Ingredients)
		assert.Equal(t, []domain.RecipeStepItem{{Order: 1, Description: "Beat the eggs"}}, req.Steps)
		assert.False(t, req.HasCategories)
		assert.Nil(t, req.Version)
	})

	t.Run("update with nothing leaves everything absent", func(t *testing.T) {
		req, err := ParseRecipePayload(utils.Validate, form(nil), false)
		require.NoError(t, err)
		assert.Nil(t, req.Name)
		assert.False(t, req.HasIngredients)
		assert.False(t, req.HasSteps)
		assert.False(t, req.HasCategories)
	})

	t.Run("empty array is a present empty target", func(t *testing.T) {
		req, err := ParseRecipePayload(utils.Validate, form(map[string]string{"ingredients_data": "[]"}), false)
		require.NoError(t, err)
		assert.True(t, req.HasIngredients)
		assert.Empty(t, req.Ingredients)
	})

	t.Run("legacy field names", func(t *testing.T) {
		req, err := ParseRecipePayload(utils.Validate, form(map[string]string{
			"ingredients": `[{"ingredient": 4, "quantity": 1.5, "unit": 2}]`,
			"steps":       `[{"order": 2, "description": "Fry"}]`,
		}), false)
		require.NoError(t, err)
		assert.Equal(t, uint(4), req.Ingredients[0].Ingredient)
		assert.Equal(t, 2, req.Steps[0].Order)
	})

	t.Run("categories in several shapes", func(t *testing.T) {
		f := form(nil)
		f.Values["categories"] = []string{"3", "1,2", "[5, 3]"}
		req, err := ParseRecipePayload(utils.Validate, f, false)
		require.NoError(t, err)
		assert.True(t, req.HasCategories)
		assert.Equal(t, []uint{1, 2, 3, 5}, req.CategoryIDs)

		req, err = ParseRecipePayload(utils.Validate, form(map[string]string{"categories": ""}), false)
		require.NoError(t, err)
		assert.True(t, req.HasCategories)
		assert.Empty(t, req.CategoryIDs)
	})

	t.Run("files", func(t *testing.T) {
		f := form(nil)
		f.Files = map[string]*multipart.FileHeader{
			"photo":        testutil.FileHeader(t, "photo", "p.png", []byte("x")),
			"step_image_0": testutil.FileHeader(t, "step_image_0", "s.png", []byte("x")),
			"step_image_2": testutil.FileHeader(t, "step_image_2", "s.png", []byte("x")),
		}
		req, err := ParseRecipePayload(utils.Validate, f, false)
		require.NoError(t, err)
		assert.NotNil(t, req.Photo)
		assert.Len(t, req.StepImages, 2)
		assert.Contains(t, req.StepImages, 2)
	})
}

func TestParseRecipePayloadErrors(t *testing.T) {
	cases := []struct {
		name     string
		creating bool
		mutate   func(map[string]string)
		field    string
	}{
		{"missing name on create", true, func(m map[string]string) { delete(m, "name") }, "name"},
		{"blank name", false, func(m map[string]string) { m["name"] = "   " }, "name"},
		{"long name", false, func(m map[string]string) { m["name"] = string(make([]rune, 51)) + "x" }, "name"},
		{"long description", false, func(m map[string]string) {
			b := make([]byte, 101)
			for i := range b {
				b[i] = 'a'
			}
			m["description"] = string(b)
		}, "description"},
		{"zero duration", true, func(m map[string]string) { m["duration_minutes"] = "0" }, "duration_minutes"},
		{"text commensals", false, func(m map[string]string) { m["commensals"] = "many" }, "commensals"},
		{"missing commensals on create", true, func(m map[string]string) { delete(m, "commensals") }, "commensals"},
		{"malformed ingredients json", true, func(m map[string]string) { m["ingredients_data"] = `[{"ingredient": 1,` }, "ingredients_data"},
		{"ingredients not an array", false, func(m map[string]string) { m["ingredients_data"] = `{"ingredient": 1}` }, "ingredients_data"},
		{"negative quantity", false, func(m map[string]string) {
			m["ingredients_data"] = `[{"ingredient": 1, "quantity": -2, "unit": 3}]`
		}, "ingredients_data[0].quantity"},
		{"missing unit", false, func(m map[string]string) {
			m["ingredients_data"] = `[{"ingredient": 1, "quantity": 2, "unit": 3}, {"ingredient": 2, "quantity": 1}]`
		}, "ingredients_data[1].unit"},
		{"string ingredient id", false, func(m map[string]string) {
			m["ingredients_data"] = `[{"ingredient": "one", "quantity": 2, "unit": 3}]`
		}, "ingredients_data[0].ingredient"},
		{"fractional order", false, func(m map[string]string) {
			m["steps_data"] = `[{"order": 1.5, "description": "x"}]`
		}, "steps_data[0].order"},
		{"empty step description", false, func(m map[string]string) {
			m["steps_data"] = `[{"order": 1, "description": "ok"}, {"order": 2, "description": ""}]`
		}, "steps_data[1].description"},
		{"blank step description", false, func(m map[string]string) {
			m["steps_data"] = `[{"order": 1, "description": "   "}]`
		}, "steps_data[0].description"},
		{"step order zero", false, func(m map[string]string) {
			m["steps_data"] = `[{"order": 0, "description": "x"}]`
		}, "steps_data[0].order"},
		{"bad category id", false, func(m map[string]string) { m["categories"] = "1,abc" }, "categories"},
		{"bad version", false, func(m map[string]string) { m["version"] = "-1" }, "version"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := validCreate()
			tc.mutate(values)
			_, err := ParseRecipePayload(utils.Validate, form(values), tc.creating)

			var perr *domain.PayloadError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.field, perr.Field)
		})
	}

	t.Run("bad step image index", func(t *testing.T) {
		f := form(nil)
		f.Files = map[string]*multipart.FileHeader{
			"step_image_x": testutil.FileHeader(t, "step_image_x", "s.png", []byte("x")),
		}
		_, err := ParseRecipePayload(utils.Validate, f, false)
		var perr *domain.PayloadError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "step_image_x", perr.Field)
	})
}
