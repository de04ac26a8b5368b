package lib

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mediaforge/mediaforge/internal/models"
)

// ParameterResult is the outcome of validating one parameter value.
// Validation failures are returned, never raised; the Error message is
// end-user-facing form copy keyed by the parameter's display needs.
type ParameterResult struct {
	Valid bool
	Error string
}

// ParametersResult is the outcome of validating a full parameter map.
// Errors holds messages only for the parameter names that failed;
// names absent from the map passed validation.
type ParametersResult struct {
	Valid  bool
	Errors map[string]string
}

func validResult() ParameterResult {
	return ParameterResult{Valid: true}
}

func invalidResult(format string, args ...any) ParameterResult {
	return ParameterResult{Valid: false, Error: fmt.Sprintf(format, args...)}
}

// isUnset reports whether a candidate value counts as "not provided".
// nil and empty string are treated identically for required-field checks.
func isUnset(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// ValidateParameter checks one candidate value against its schema.
// Required parameters reject unset values; optional parameters accept them
// unconditionally. Otherwise validation dispatches on the schema's type tag
// and only the first failing check is reported.
func ValidateParameter(schema models.ParameterSchema, value any) ParameterResult {
	if isUnset(value) {
		if schema.Required {
			return invalidResult("%s is required", schema.Name)
		}
		return validResult()
	}

	switch schema.Type {
	case models.ParameterTypeInteger:
		return validateIntegerValue(schema, value)
	case models.ParameterTypeFloat:
		return validateFloatValue(schema, value)
	case models.ParameterTypeBoolean:
		if _, ok := value.(bool); !ok {
			return invalidResult("%s must be a boolean", schema.Name)
		}
		return validResult()
	case models.ParameterTypeChoice:
		return validateChoiceValue(schema, value)
	case models.ParameterTypeString:
		if _, ok := value.(string); !ok {
			return invalidResult("%s must be a string", schema.Name)
		}
		return validResult()
	default:
		return invalidResult("%s has unsupported type %s", schema.Name, schema.Type)
	}
}

func validateIntegerValue(schema models.ParameterSchema, value any) ParameterResult {
	num, ok := coerceNumber(value)
	if !ok || num != math.Trunc(num) {
		return invalidResult("%s must be an integer", schema.Name)
	}
	return checkBounds(schema, num)
}

func validateFloatValue(schema models.ParameterSchema, value any) ParameterResult {
	num, ok := coerceNumber(value)
	if !ok {
		return invalidResult("%s must be a number", schema.Name)
	}
	return checkBounds(schema, num)
}

// checkBounds enforces declared min/max. Min is checked before max; only
// the first violation is reported.
func checkBounds(schema models.ParameterSchema, num float64) ParameterResult {
	if schema.Min != nil && num < *schema.Min {
		return invalidResult("%s must be at least %s", schema.Name, formatBound(*schema.Min))
	}
	if schema.Max != nil && num > *schema.Max {
		return invalidResult("%s must be at most %s", schema.Name, formatBound(*schema.Max))
	}
	return validResult()
}

func validateChoiceValue(schema models.ParameterSchema, value any) ParameterResult {
	candidate := fmt.Sprintf("%v", value)
	for _, choice := range schema.Choices {
		if choice == candidate {
			return validResult()
		}
	}
	return invalidResult("%s must be one of: %s", schema.Name, strings.Join(schema.Choices, ", "))
}

// coerceNumber converts numeric Go types and numeric strings to float64.
// NaN never coerces; it is not a usable parameter value.
func coerceNumber(value any) (float64, bool) {
	var num float64

	switch v := value.(type) {
	case int:
		num = float64(v)
	case int32:
		num = float64(v)
	case int64:
		num = float64(v)
	case float32:
		num = float64(v)
	case float64:
		num = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		num = parsed
	default:
		return 0, false
	}

	if math.IsNaN(num) {
		return 0, false
	}
	return num, true
}

// formatBound renders a numeric bound without trailing zeros
// Example: 10 -> "10", 0.5 -> "0.5"
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidateParameters runs ValidateParameter over every schema declared by
// the operation, in declared order, against the matching entry of values.
// Parameters absent from values are validated as unset.
func ValidateParameters(operation models.OperationDefinition, values map[string]any) ParametersResult {
	errors := make(map[string]string)

	for _, schema := range operation.Parameters {
		result := ValidateParameter(schema, values[schema.Name])
		if !result.Valid {
			errors[schema.Name] = result.Error
		}
	}

	return ParametersResult{Valid: len(errors) == 0, Errors: errors}
}

// ParameterDefault returns the schema's declared default, or a type-specific
// fallback: integer/float fall back to their min bound or zero, string to "",
// boolean to false, choice to its first choice. Total over well-formed
// schemas; never reports "no default".
func ParameterDefault(schema models.ParameterSchema) any {
	if schema.Default != nil {
		return schema.Default
	}

	switch schema.Type {
	case models.ParameterTypeInteger:
		if schema.Min != nil {
			return int(*schema.Min)
		}
		return 0
	case models.ParameterTypeFloat:
		if schema.Min != nil {
			return *schema.Min
		}
		return 0.0
	case models.ParameterTypeBoolean:
		return false
	case models.ParameterTypeChoice:
		if len(schema.Choices) > 0 {
			return schema.Choices[0]
		}
		return ""
	default:
		return ""
	}
}

// BuildDefaultParameters produces a fully-populated value map suitable as
// initial form state. Every declared parameter gets a key, even when its
// computed default is an empty string.
func BuildDefaultParameters(operation models.OperationDefinition) map[string]any {
	values := make(map[string]any, len(operation.Parameters))
	for _, schema := range operation.Parameters {
		values[schema.Name] = ParameterDefault(schema)
	}
	return values
}
