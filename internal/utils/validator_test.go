package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsJSONNames(t *testing.T) {
	InitValidator()

	type item struct {
		Quantity float64 `json:"quantity_needed" validate:"gt=0"`
		Hidden   string  `json:"-" validate:"required"`
		Plain    int     `validate:"gt=0"`
	}

	err := Validate.Struct(item{Plain: 1})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	var fields []string
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	assert.Contains(t, fields, "quantity_needed")
	assert.NotContains(t, fields, "Quantity")
	assert.Len(t, fields, 2)

	first := Validate
	InitValidator()
	assert.Same(t, first, Validate)
}
