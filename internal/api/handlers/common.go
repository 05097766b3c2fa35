package handlers

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx, key string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrParseID
	}
	return uint(id), nil
}

func queryID(c *fiber.Ctx, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, domain.NewPayloadError(key, "must be a positive integer")
	}
	return uint(id), nil
}

func pagination(c *fiber.Ctx) domain.PaginationQuery {
	return domain.PaginationQuery{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 20),
	}.Normalize()
}

// recipeForm reads a recipe write from a multipart form or a JSON object.
// JSON strings keep their text; arrays, objects and numbers keep their raw
// encoding so the payload parser sees the same shape a form field carries.
func recipeForm(c *fiber.Ctx) (domain.RecipeForm, error) {
	form := domain.RecipeForm{
		Values: map[string][]string{},
		Files:  map[string]*multipart.FileHeader{},
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		mf, err := c.MultipartForm()
		if err != nil {
			return form, err
		}
		for k, v := range mf.Value {
			form.Values[k] = v
		}
		for k, files := range mf.File {
			if len(files) > 0 {
				form.Files[k] = files[0]
			}
		}
		return form, nil
	}

	if len(c.Body()) == 0 {
		return form, nil
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return form, err
	}
	for k, raw := range body {
		text := strings.TrimSpace(string(raw))
		if text == "null" {
			continue
		}
		var s string
		if strings.HasPrefix(text, `"`) && json.Unmarshal(raw, &s) == nil {
			form.Values[k] = []string{s}
			continue
		}
		form.Values[k] = []string{text}
	}
	return form, nil
}
