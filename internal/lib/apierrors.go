package lib

import (
	"encoding/json"
	"strings"
)

// FieldError is one per-field entry of a server validation error
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// APIValidationErrors is the normalized form of the server's error envelope
// {error: {code, message, errors: [{field, message}]}}
type APIValidationErrors struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type apiErrorEnvelope struct {
	Error *struct {
		Code    string       `json:"code"`
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	} `json:"error"`
}

// ParseAPIValidationErrors normalizes a server error response body.
// Malformed or missing envelopes yield nil rather than an error; the caller
// decides on a fallback message.
func ParseAPIValidationErrors(body []byte) *APIValidationErrors {
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}

	if envelope.Error == nil || envelope.Error.Code == "" || envelope.Error.Message == "" {
		return nil
	}

	return &APIValidationErrors{
		Code:    envelope.Error.Code,
		Message: envelope.Error.Message,
		Errors:  envelope.Error.Errors,
	}
}

// FormatAPIValidationErrors renders a parsed envelope as display copy.
// A single field error surfaces its message verbatim; multiple field errors
// are concatenated with spaces; without field errors the top-level message
// is used.
func FormatAPIValidationErrors(parsed *APIValidationErrors) string {
	if parsed == nil {
		return ""
	}

	if len(parsed.Errors) == 0 {
		return parsed.Message
	}

	messages := make([]string, 0, len(parsed.Errors))
	for _, fieldErr := range parsed.Errors {
		messages = append(messages, fieldErr.Message)
	}
	return strings.Join(messages, " ")
}

// IsAPIError reports whether a decoded JSON body is the server's error
// envelope. The check is structural key presence only; no schema metadata.
func IsAPIError(body map[string]any) bool {
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		return false
	}

	_, hasCode := errObj["code"]
	_, hasMessage := errObj["message"]
	return hasCode && hasMessage
}

// IsPaginatedResponse reports whether a decoded JSON body is the paginated
// list envelope {count, next, previous, results}
func IsPaginatedResponse(body map[string]any) bool {
	_, hasCount := body["count"]
	_, hasResults := body["results"]
	return hasCount && hasResults
}
