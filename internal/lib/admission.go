package lib

import (
	"fmt"
	"math"

	"github.com/mediaforge/mediaforge/internal/models"
)

// Per-media-type upload ceilings. Anything unmapped falls back to the
// default ceiling.
const (
	MaxVideoFileSize   int64 = 500 * 1024 * 1024
	MaxAudioFileSize   int64 = 100 * 1024 * 1024
	MaxImageFileSize   int64 = 50 * 1024 * 1024
	DefaultMaxFileSize int64 = 100 * 1024 * 1024
)

// Warn when a file is admitted but sits above this share of its ceiling
const sizeWarningThreshold = 0.8

// FileValidationErrorCode tags an admission failure for programmatic handling
type FileValidationErrorCode string

const (
	ErrCodeEmptyFile         FileValidationErrorCode = "EMPTY_FILE"
	ErrCodeUnknownType       FileValidationErrorCode = "UNKNOWN_TYPE"
	ErrCodeMediaTypeMismatch FileValidationErrorCode = "MEDIA_TYPE_MISMATCH"
	ErrCodeFileTooLarge      FileValidationErrorCode = "FILE_TOO_LARGE"
	ErrCodeInvalidType       FileValidationErrorCode = "INVALID_TYPE"
)

// FileValidationError describes why a file was rejected before upload
type FileValidationError struct {
	Code    FileValidationErrorCode `json:"code"`
	Message string                  `json:"message"`
	Details map[string]any          `json:"details,omitempty"`
}

// FileValidationResult is the outcome of admitting one candidate upload.
// Constructed fresh per validation call and never mutated after return.
// MediaType and FileSize are populated only on success.
type FileValidationResult struct {
	IsValid   bool                 `json:"is_valid"`
	Error     *FileValidationError `json:"error,omitempty"`
	Warnings  []string             `json:"warnings,omitempty"`
	MediaType models.MediaType     `json:"media_type,omitempty"`
	FileSize  int64                `json:"file_size,omitempty"`
}

// MaxFileSizeForType returns the upload ceiling for a media type
func MaxFileSizeForType(mediaType models.MediaType) int64 {
	switch mediaType {
	case models.MediaTypeVideo:
		return MaxVideoFileSize
	case models.MediaTypeAudio:
		return MaxAudioFileSize
	case models.MediaTypeImage:
		return MaxImageFileSize
	default:
		return DefaultMaxFileSize
	}
}

// MaxFileSizeForTypes returns the ceiling for a multi-type picker: the
// maximum across the accepted types, a permissive union. This is an advisory
// upper bound only; ValidateFile still applies the detected type's own
// ceiling, so a file admitted by this hint can fail the real check.
func MaxFileSizeForTypes(mediaTypes []models.MediaType) int64 {
	if len(mediaTypes) == 0 {
		return DefaultMaxFileSize
	}

	var max int64
	for _, t := range mediaTypes {
		if size := MaxFileSizeForType(t); size > max {
			max = size
		}
	}
	return max
}

// ValidateFile decides whether a candidate upload may be submitted.
// Checks run in a fixed order and short-circuit on the first failure:
// emptiness, malformed metadata, type detection, accepted-type membership,
// then the size ceiling. customMaxSize replaces the per-media-type ceiling
// when > 0. The file is read-only to this function; ownership stays with
// the caller.
func ValidateFile(file models.FileInfo, acceptedMediaTypes []models.MediaType, customMaxSize int64) FileValidationResult {
	if file.Size == 0 {
		return FileValidationResult{
			IsValid: false,
			Error: &FileValidationError{
				Code:    ErrCodeEmptyFile,
				Message: "File is empty",
			},
		}
	}

	if err := file.Validate(); err != nil {
		return FileValidationResult{
			IsValid: false,
			Error: &FileValidationError{
				Code:    ErrCodeInvalidType,
				Message: fmt.Sprintf("File is not a valid upload candidate: %v", err),
			},
		}
	}

	mediaType, detected := DetectMediaType(file)
	if !detected {
		return FileValidationResult{
			IsValid: false,
			Error: &FileValidationError{
				Code:    ErrCodeUnknownType,
				Message: fmt.Sprintf("Could not determine media type of '%s'", file.Name),
				Details: map[string]any{
					"file_name": file.Name,
					"mime_type": file.MIMEType,
				},
			},
		}
	}

	if len(acceptedMediaTypes) > 0 && !containsMediaType(acceptedMediaTypes, mediaType) {
		return FileValidationResult{
			IsValid: false,
			Error: &FileValidationError{
				Code: ErrCodeMediaTypeMismatch,
				Message: fmt.Sprintf("Expected %s file but '%s' is %s",
					joinMediaTypes(acceptedMediaTypes), file.Name, mediaType),
				Details: map[string]any{
					"expected": acceptedMediaTypes,
					"detected": mediaType,
				},
			},
		}
	}

	maxSize := MaxFileSizeForType(mediaType)
	if customMaxSize > 0 {
		maxSize = customMaxSize
	}

	if file.Size > maxSize {
		return FileValidationResult{
			IsValid: false,
			Error: &FileValidationError{
				Code: ErrCodeFileTooLarge,
				Message: fmt.Sprintf("File is %s, maximum allowed size is %s",
					FormatFileSize(file.Size), FormatFileSize(maxSize)),
				Details: map[string]any{
					"file_size": file.Size,
					"max_size":  maxSize,
				},
			},
		}
	}

	result := FileValidationResult{
		IsValid:   true,
		MediaType: mediaType,
		FileSize:  file.Size,
	}

	if float64(file.Size) > float64(maxSize)*sizeWarningThreshold {
		percent := int(math.Round(float64(file.Size) / float64(maxSize) * 100))
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("File size is %d%% of the maximum allowed size", percent))
	}

	return result
}

// ValidateFiles admits each file independently and returns results keyed by
// file name. There is no cross-file interaction; no aggregate size cap.
func ValidateFiles(files []models.FileInfo, acceptedMediaTypes []models.MediaType, customMaxSize int64) map[string]FileValidationResult {
	results := make(map[string]FileValidationResult, len(files))
	for _, file := range files {
		results[file.Name] = ValidateFile(file, acceptedMediaTypes, customMaxSize)
	}
	return results
}

func containsMediaType(types []models.MediaType, t models.MediaType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func joinMediaTypes(types []models.MediaType) string {
	if len(types) == 1 {
		return string(types[0])
	}

	joined := ""
	for i, t := range types {
		if i > 0 {
			joined += " or "
		}
		joined += string(t)
	}
	return joined
}
