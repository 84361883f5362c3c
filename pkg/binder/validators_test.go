package binder

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValidator(t *testing.T) {
	t.Parallel()

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("date", dateValidator))

	type payload struct {
		PublishedDate string `validate:"date"`
	}

	for _, value := range []string{"", "1984", "1984-02", "1984-02-01", "2005-11-15"} {
		assert.NoError(t, validate.Struct(payload{value}), value)
	}

	for _, value := range []string{"84", "1984-13", "1984-02-32", "1984/02/01", "next year"} {
		assert.Error(t, validate.Struct(payload{value}), value)
	}
}
