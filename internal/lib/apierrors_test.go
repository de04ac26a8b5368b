package lib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaforge/internal/lib"
)

func TestParseAPIValidationErrors(t *testing.T) {
	body := []byte(`{"error":{"code":"VALIDATION_ERROR","message":"bad","errors":[{"field":"x","message":"x is bad"}]}}`)

	parsed := lib.ParseAPIValidationErrors(body)

	require.NotNil(t, parsed)
	assert.Equal(t, "VALIDATION_ERROR", parsed.Code)
	assert.Equal(t, "bad", parsed.Message)
	require.Len(t, parsed.Errors, 1)
	assert.Equal(t, "x", parsed.Errors[0].Field)
	assert.Equal(t, "x is bad", parsed.Errors[0].Message)
}

func TestParseAPIValidationErrors_MalformedYieldsNil(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"not json", []byte("<html>oops</html>")},
		{"empty object", []byte(`{}`)},
		{"missing code", []byte(`{"error":{"message":"bad"}}`)},
		{"missing message", []byte(`{"error":{"code":"X"}}`)},
		{"error not an object", []byte(`{"error":"boom"}`)},
		{"empty body", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, lib.ParseAPIValidationErrors(tt.body))
		})
	}
}

func TestFormatAPIValidationErrors(t *testing.T) {
	t.Run("single error verbatim", func(t *testing.T) {
		parsed := &lib.APIValidationErrors{
			Code:    "VALIDATION_ERROR",
			Message: "bad",
			Errors:  []lib.FieldError{{Field: "x", Message: "x is bad"}},
		}

		assert.Equal(t, "x is bad", lib.FormatAPIValidationErrors(parsed))
	})

	t.Run("multiple errors joined with spaces", func(t *testing.T) {
		parsed := &lib.APIValidationErrors{
			Code:    "VALIDATION_ERROR",
			Message: "bad",
			Errors: []lib.FieldError{
				{Field: "x", Message: "x is bad."},
				{Field: "y", Message: "y is worse."},
			},
		}

		assert.Equal(t, "x is bad. y is worse.", lib.FormatAPIValidationErrors(parsed))
	})

	t.Run("no field errors falls back to top message", func(t *testing.T) {
		parsed := &lib.APIValidationErrors{Code: "SERVER_ERROR", Message: "boom"}
		assert.Equal(t, "boom", lib.FormatAPIValidationErrors(parsed))
	})

	t.Run("nil yields empty string", func(t *testing.T) {
		assert.Equal(t, "", lib.FormatAPIValidationErrors(nil))
	})
}

func TestIsAPIError(t *testing.T) {
	assert.True(t, lib.IsAPIError(map[string]any{
		"error": map[string]any{"code": "X", "message": "boom"},
	}))

	assert.False(t, lib.IsAPIError(map[string]any{"error": "boom"}))
	assert.False(t, lib.IsAPIError(map[string]any{
		"error": map[string]any{"message": "boom"},
	}))
	assert.False(t, lib.IsAPIError(map[string]any{"count": 1, "results": []any{}}))
}

func TestIsPaginatedResponse(t *testing.T) {
	assert.True(t, lib.IsPaginatedResponse(map[string]any{
		"count":    float64(2),
		"next":     nil,
		"previous": nil,
		"results":  []any{},
	}))

	assert.False(t, lib.IsPaginatedResponse(map[string]any{
		"error": map[string]any{"code": "X", "message": "boom"},
	}))
	assert.False(t, lib.IsPaginatedResponse(map[string]any{"results": []any{}}))
}
