package lib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mediaforge/mediaforge/internal/lib"
	"github.com/mediaforge/mediaforge/internal/models"
)

func TestDetectMediaType_ByExtension(t *testing.T) {
	tests := []struct {
		fileName string
		want     models.MediaType
	}{
		{"clip.mp4", models.MediaTypeVideo},
		{"CLIP.MOV", models.MediaTypeVideo},
		{"recording.mkv", models.MediaTypeVideo},
		{"photo.jpg", models.MediaTypeImage},
		{"scan.jpeg", models.MediaTypeImage},
		{"icon.webp", models.MediaTypeImage},
		{"song.mp3", models.MediaTypeAudio},
		{"take.flac", models.MediaTypeAudio},
		{"voice.m4a", models.MediaTypeAudio},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			detected, ok := lib.DetectMediaType(models.FileInfo{Name: tt.fileName})
			assert.True(t, ok)
			assert.Equal(t, tt.want, detected)
		})
	}
}

func TestDetectMediaType_MIMEFallback(t *testing.T) {
	// Unknown extension, but the MIME type still classifies it
	detected, ok := lib.DetectMediaType(models.FileInfo{
		Name:     "upload.dat",
		MIMEType: "video/x-custom",
	})

	assert.True(t, ok)
	assert.Equal(t, models.MediaTypeVideo, detected)
}

func TestDetectMediaType_ExtensionWinsOverMIME(t *testing.T) {
	detected, ok := lib.DetectMediaType(models.FileInfo{
		Name:     "song.mp3",
		MIMEType: "application/octet-stream",
	})

	assert.True(t, ok)
	assert.Equal(t, models.MediaTypeAudio, detected)
}

func TestDetectMediaType_Unknown(t *testing.T) {
	tests := []models.FileInfo{
		{Name: "notes.txt"},
		{Name: "archive.zip", MIMEType: "application/zip"},
		{Name: "no_extension"},
	}

	for _, file := range tests {
		t.Run(file.Name, func(t *testing.T) {
			_, ok := lib.DetectMediaType(file)
			assert.False(t, ok)
		})
	}
}
