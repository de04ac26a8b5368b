package models

import (
	"errors"
	"path/filepath"
	"strings"
)

// FileInfo is the metadata view of a candidate upload. Admission control
// classifies and size-checks files from metadata alone; contents are never
// read before the file is accepted.
type FileInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mime_type,omitempty"`
}

// Extension returns the lowercased file extension including the dot,
// or empty string if the name has none
func (f *FileInfo) Extension() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Validate checks if the file metadata is structurally usable
func (f *FileInfo) Validate() error {
	if f.Name == "" {
		return errors.New("file name is required")
	}
	if f.Size < 0 {
		return errors.New("file size cannot be negative")
	}
	return nil
}
