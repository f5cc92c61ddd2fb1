package types

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// FileInfo represents a scanned file
type FileInfo struct {
	Path        string `json:"path"`
	ContentType string `json:"type"`
	Size        int64  `json:"size"`
	Text        bool   `json:"text"`
}

// Name returns the base name of the file
func (f *FileInfo) Name() string {
	return filepath.Base(f.Path)
}

// ToJSON converts FileInfo to JSON string
func (f *FileInfo) ToJSON() string {
	jsonBytes, _ := json.Marshal(f)
	return string(jsonBytes)
}

// String returns a human-readable representation
func (f *FileInfo) String() string {
	return fmt.Sprintf("%s (%s, %d bytes)", f.Path, f.ContentType, f.Size)
}
