package lib

import (
	"fmt"
	"strings"
)

// ForgeError represents a user-friendly error with context and guidance
type ForgeError struct {
	Category    ErrorCategory
	Message     string   // Short description of what went wrong
	Cause       error    // Underlying error
	Guidance    []string // What the user can do to fix it
	HTTPStatus  int      // HTTP status code if applicable
	IsRetryable bool     // Can this error be automatically retried?
}

// ErrorCategory classifies errors for better UX
type ErrorCategory string

const (
	CategoryNetwork       ErrorCategory = "network"
	CategoryFileSystem    ErrorCategory = "filesystem"
	CategoryValidation    ErrorCategory = "validation"
	CategoryService       ErrorCategory = "service"
	CategoryConfiguration ErrorCategory = "configuration"
)

// Error implements the error interface
func (e *ForgeError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] ", strings.ToUpper(string(e.Category))))
	sb.WriteString(e.Message)

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if e.HTTPStatus > 0 {
		sb.WriteString(fmt.Sprintf(" (HTTP %d)", e.HTTPStatus))
	}

	return sb.String()
}

// UserMessage returns a formatted message suitable for displaying to end users
func (e *ForgeError) UserMessage() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	if len(e.Guidance) > 0 {
		sb.WriteString("\nHow to fix:\n")
		for i, guide := range e.Guidance {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, guide))
		}
	}

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("\nTechnical details: %v\n", e.Cause))
	}

	if e.IsRetryable {
		sb.WriteString("\nThis error is transient and will be automatically retried.\n")
	}

	return sb.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility
func (e *ForgeError) Unwrap() error {
	return e.Cause
}

// Network Errors

// ErrNetworkUnreachable creates an error for network connectivity issues
func ErrNetworkUnreachable(url string, cause error) *ForgeError {
	return &ForgeError{
		Category: CategoryNetwork,
		Message:  fmt.Sprintf("Cannot reach the media service at %s", url),
		Cause:    cause,
		Guidance: []string{
			"Check that the service is running",
			fmt.Sprintf("Verify the URL is correct: %s", url),
			"Check your network connection",
		},
		IsRetryable: true,
	}
}

// ErrNetworkTimeout creates an error for request timeouts
func ErrNetworkTimeout(url string, cause error) *ForgeError {
	return &ForgeError{
		Category: CategoryNetwork,
		Message:  fmt.Sprintf("Request to %s timed out", url),
		Cause:    cause,
		Guidance: []string{
			"The service may be overloaded or slow to respond",
			"Wait a moment and try again",
			"Consider increasing server.timeout_seconds for large uploads",
		},
		IsRetryable: true,
	}
}

// Filesystem Errors

// ErrFileNotFound creates an error for a missing input file
func ErrFileNotFound(path string) *ForgeError {
	return &ForgeError{
		Category: CategoryFileSystem,
		Message:  fmt.Sprintf("File not found: %s", path),
		Guidance: []string{
			"Check that the path is correct",
			"Ensure the file exists",
			"Verify you have permission to read it",
		},
		IsRetryable: false,
	}
}

// Validation Errors

// ErrFileRejected creates an error for an upload blocked by admission control
func ErrFileRejected(fileName string, result FileValidationResult) *ForgeError {
	message := fmt.Sprintf("File '%s' was rejected", fileName)
	guidance := []string{"Choose a different file"}

	if result.Error != nil {
		message = result.Error.Message
		switch result.Error.Code {
		case ErrCodeEmptyFile:
			guidance = []string{"The file contains no data", "Choose a non-empty file"}
		case ErrCodeUnknownType:
			guidance = []string{
				"Only video, image, and audio files are accepted",
				"Check the file extension",
			}
		case ErrCodeMediaTypeMismatch:
			guidance = []string{"Pick an operation that matches this file's media type, or choose a matching file"}
		case ErrCodeFileTooLarge:
			guidance = []string{
				"Compress or trim the file before uploading",
				"Split long recordings into smaller segments",
			}
		}
	}

	return &ForgeError{
		Category:    CategoryValidation,
		Message:     message,
		Guidance:    guidance,
		IsRetryable: false,
	}
}

// ErrInvalidParameters creates an error for a submission blocked by parameter validation
func ErrInvalidParameters(operationName string, errors map[string]string) *ForgeError {
	guidance := make([]string, 0, len(errors)+1)
	for name, msg := range errors {
		guidance = append(guidance, fmt.Sprintf("%s: %s", name, msg))
	}
	guidance = append(guidance, fmt.Sprintf("Run 'mediaforge operations show %s' to see parameter constraints", operationName))

	return &ForgeError{
		Category:    CategoryValidation,
		Message:     fmt.Sprintf("Invalid parameters for operation '%s'", operationName),
		Guidance:    guidance,
		IsRetryable: false,
	}
}

// Service Errors

// ErrServiceUnavailable creates an error for 5xx service errors
func ErrServiceUnavailable(statusCode int, cause error) *ForgeError {
	return &ForgeError{
		Category:   CategoryService,
		Message:    "The media service is temporarily unavailable",
		Cause:      cause,
		HTTPStatus: statusCode,
		Guidance: []string{
			"The service may be experiencing issues",
			"Wait a moment - automatic retry is in progress",
		},
		IsRetryable: true,
	}
}

// ErrServiceBadRequest creates an error for 4xx responses, carrying the
// server's own message when its error envelope could be parsed
func ErrServiceBadRequest(statusCode int, body []byte, fallback string) *ForgeError {
	message := fallback
	if parsed := ParseAPIValidationErrors(body); parsed != nil {
		message = FormatAPIValidationErrors(parsed)
	}

	return &ForgeError{
		Category:   CategoryService,
		Message:    message,
		HTTPStatus: statusCode,
		Guidance: []string{
			"The request was rejected by the service",
			"Check the operation name and parameters",
		},
		IsRetryable: false,
	}
}

// ErrJobNotFound creates an error for an unknown job ID
func ErrJobNotFound(jobID string) *ForgeError {
	return &ForgeError{
		Category: CategoryService,
		Message:  fmt.Sprintf("Job '%s' not found", jobID),
		Guidance: []string{
			"Check the job ID is correct",
			"Use 'mediaforge job list' to see all jobs",
			"The job may have expired and been cleaned up",
		},
		IsRetryable: false,
	}
}

// Configuration Errors

// ErrInvalidConfig creates an error for configuration validation failures
func ErrInvalidConfig(field string, reason string) *ForgeError {
	return &ForgeError{
		Category: CategoryConfiguration,
		Message:  fmt.Sprintf("Invalid configuration: %s", reason),
		Guidance: []string{
			fmt.Sprintf("Check the '%s' field in your config file", field),
			"Run with --config to point at the correct mediaforge.yaml",
		},
		IsRetryable: false,
	}
}

// Helper Functions

// WrapError wraps a standard error with ForgeError context
func WrapError(category ErrorCategory, message string, cause error, guidance ...string) *ForgeError {
	return &ForgeError{
		Category:    category,
		Message:     message,
		Cause:       cause,
		Guidance:    guidance,
		IsRetryable: IsNetworkError(cause),
	}
}

// ClassifyError examines an error and returns appropriate user guidance
func ClassifyError(err error) *ForgeError {
	if err == nil {
		return nil
	}

	if forgeErr, ok := err.(*ForgeError); ok {
		return forgeErr
	}

	if IsNetworkError(err) {
		return &ForgeError{
			Category:    CategoryNetwork,
			Message:     "Network connectivity issue",
			Cause:       err,
			Guidance:    []string{"Check network connection", "Verify the service is running"},
			IsRetryable: true,
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "permission denied") || strings.Contains(errMsg, "access denied") {
		return &ForgeError{
			Category:    CategoryFileSystem,
			Message:     "Permission denied",
			Cause:       err,
			Guidance:    []string{"Check file permissions", "Ensure proper access rights"},
			IsRetryable: false,
		}
	}

	return &ForgeError{
		Category:    CategoryValidation,
		Message:     "An error occurred",
		Cause:       err,
		Guidance:    []string{"Check the technical details below"},
		IsRetryable: false,
	}
}
