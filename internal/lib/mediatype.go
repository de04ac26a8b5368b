package lib

import (
	"fmt"
	"strings"

	"github.com/mediaforge/mediaforge/internal/models"
)

// Extension tables for metadata-based media type detection.
// Detection never reads file contents; extension wins over MIME type
// because browsers and shells report MIME inconsistently.
var (
	videoExtensions = map[string]bool{
		".mp4": true, ".mov": true, ".avi": true, ".mkv": true,
		".webm": true, ".flv": true, ".wmv": true, ".m4v": true,
		".mpg": true, ".mpeg": true, ".ts": true,
	}
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".webp": true, ".bmp": true, ".tiff": true, ".tif": true,
		".heic": true, ".avif": true, ".svg": true,
	}
	audioExtensions = map[string]bool{
		".mp3": true, ".wav": true, ".flac": true, ".aac": true,
		".ogg": true, ".m4a": true, ".wma": true, ".opus": true,
		".aiff": true,
	}
)

// DetectMediaType classifies a candidate upload from its metadata.
// Returns false when neither the extension nor the MIME type maps to a
// known media type.
func DetectMediaType(file models.FileInfo) (models.MediaType, bool) {
	ext := file.Extension()
	switch {
	case videoExtensions[ext]:
		return models.MediaTypeVideo, true
	case imageExtensions[ext]:
		return models.MediaTypeImage, true
	case audioExtensions[ext]:
		return models.MediaTypeAudio, true
	}

	// Fall back to the MIME type prefix when the extension is unknown
	mime := strings.ToLower(file.MIMEType)
	switch {
	case strings.HasPrefix(mime, "video/"):
		return models.MediaTypeVideo, true
	case strings.HasPrefix(mime, "image/"):
		return models.MediaTypeImage, true
	case strings.HasPrefix(mime, "audio/"):
		return models.MediaTypeAudio, true
	}

	return "", false
}

// FormatFileSize renders a byte count in human form
// Example: 47185920 -> "45.0 MB"
func FormatFileSize(bytes int64) string {
	const unit = 1024

	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}
