package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const keyPrefix = "photos/"

// NewPhotoKey builds a collision-resistant storage key for an uploaded file,
// preserving the original extension. A filename without an extension yields a
// key without one.
func NewPhotoKey(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return keyPrefix + uuid.New().String() + ext
}
