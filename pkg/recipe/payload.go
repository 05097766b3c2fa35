package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/go-playground/validator/v10"
)

const (
	maxNameLength        = 50
	maxDescriptionLength = 100
)

// ParseRecipePayload validates a recipe write. Nothing is persisted when it
// fails; the error is a *domain.PayloadError naming the offending field.
// Creating requires name, duration_minutes and commensals. v should report
// json field names, as utils.Validate does.
func ParseRecipePayload(v *validator.Validate, form domain.RecipeForm, creating bool) (domain.RecipeWriteRequest, error) {
	var req domain.RecipeWriteRequest

	if raw, ok := formValue(form, domain.FieldName); ok {
		name := strings.TrimSpace(raw)
		if name == "" {
			return req, domain.NewPayloadError(domain.FieldName, "must not be empty")
		}
		if utf8.RuneCountInString(name) > maxNameLength {
			return req, domain.NewPayloadError(domain.FieldName, fmt.Sprintf("must be at most %d characters", maxNameLength))
		}
		req.Name = &name
	} else if creating {
		return req, domain.NewPayloadError(domain.FieldName, "is required")
	}

	if raw, ok := formValue(form, domain.FieldDescription); ok {
		description := strings.TrimSpace(raw)
		if utf8.RuneCountInString(description) > maxDescriptionLength {
			return req, domain.NewPayloadError(domain.FieldDescription, fmt.Sprintf("must be at most %d characters", maxDescriptionLength))
		}
		req.Description = &description
	}

	var err error
	if req.DurationMinutes, err = positiveInt(form, domain.FieldDurationMinutes, creating); err != nil {
		return req, err
	}
	if req.Commensals, err = positiveInt(form, domain.FieldCommensals, creating); err != nil {
		return req, err
	}
	if req.Version, err = positiveInt(form, domain.FieldVersion, false); err != nil {
		return req, err
	}

	if values, ok := form.Values[domain.FieldCategories]; ok {
		ids, err := parseCategoryIDs(values)
		if err != nil {
			return req, err
		}
		req.CategoryIDs = ids
		req.HasCategories = true
	}

	if raw, field, ok := aliasedValue(form, domain.FieldIngredientsData, "ingredients"); ok {
		items, err := parseItems[domain.RecipeIngredientItem](v, raw, field)
		if err != nil {
			return req, err
		}
		req.Ingredients = items
		req.HasIngredients = true
	}

	if raw, field, ok := aliasedValue(form, domain.FieldStepsData, "steps"); ok {
		items, err := parseItems[domain.RecipeStepItem](v, raw, field)
		if err != nil {
			return req, err
		}
		for i := range items {
			items[i].Description = strings.TrimSpace(items[i].Description)
			if items[i].Description == "" {
				return req, domain.NewPayloadError(fmt.Sprintf("%s[%d].description", field, i), "is required")
			}
		}
		req.Steps = items
		req.HasSteps = true
	}

	req.Photo = form.Files[domain.FieldPhoto]
	for part, header := range form.Files {
		if !strings.HasPrefix(part, domain.StepImagePrefix) {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(part, domain.StepImagePrefix))
		if err != nil || idx < 0 {
			return req, domain.NewPayloadError(part, "step image index must be a non-negative integer")
		}
		if req.StepImages == nil {
			req.StepImages = make(map[int]*multipart.FileHeader, 1)
		}
		req.StepImages[idx] = header
	}

	return req, nil
}

func formValue(form domain.RecipeForm, key string) (string, bool) {
	values, ok := form.Values[key]
	if !ok {
		return "", false
	}
	if len(values) == 0 {
		return "", true
	}
	return values[0], true
}

func aliasedValue(form domain.RecipeForm, key, alias string) (string, string, bool) {
	if raw, ok := formValue(form, key); ok {
		return raw, key, true
	}
	if raw, ok := formValue(form, alias); ok {
		return raw, alias, true
	}
	return "", "", false
}

func positiveInt(form domain.RecipeForm, key string, required bool) (*int, error) {
	raw, ok := formValue(form, key)
	if !ok {
		if required {
			return nil, domain.NewPayloadError(key, "is required")
		}
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, domain.NewPayloadError(key, "must be an integer")
	}
	if n <= 0 {
		return nil, domain.NewPayloadError(key, "must be a positive integer")
	}
	return &n, nil
}

// parseCategoryIDs accepts repeated form values, comma separated ids or a
// JSON array. An empty value clears the set.
func parseCategoryIDs(values []string) ([]uint, error) {
	var tokens []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "[") {
			var ids []uint
			if err := json.Unmarshal([]byte(v), &ids); err != nil {
				return nil, domain.NewPayloadError(domain.FieldCategories, "invalid JSON")
			}
			for _, id := range ids {
				tokens = append(tokens, strconv.FormatUint(uint64(id), 10))
			}
			continue
		}
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tokens = append(tokens, part)
			}
		}
	}

	seen := make(map[uint]bool, len(tokens))
	ids := make([]uint, 0, len(tokens))
	for _, tok := range tokens {
		id, err := strconv.ParseUint(tok, 10, 64)
		if err != nil || id == 0 {
			return nil, domain.NewPayloadError(domain.FieldCategories, fmt.Sprintf("invalid id %q", tok))
		}
		if !seen[uint(id)] {
			seen[uint(id)] = true
			ids = append(ids, uint(id))
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func parseItems[T any](v *validator.Validate, raw, field string) ([]T, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []T{}, nil
	}

	var rawItems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &rawItems); err != nil {
		return nil, domain.NewPayloadError(field, "invalid JSON array")
	}

	items := make([]T, 0, len(rawItems))
	for i, r := range rawItems {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field != "" {
				return nil, domain.NewPayloadError(fmt.Sprintf("%s[%d].%s", field, i, typeErr.Field), "has the wrong type")
			}
			return nil, domain.NewPayloadError(fmt.Sprintf("%s[%d]", field, i), "must be an object")
		}
		if err := v.Struct(item); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				fe := verrs[0]
				return nil, domain.NewPayloadError(fmt.Sprintf("%s[%d].%s", field, i, fe.Field()), describe(fe))
			}
			return nil, domain.NewPayloadError(fmt.Sprintf("%s[%d]", field, i), err.Error())
		}
		items = append(items, item)
	}
	return items, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
