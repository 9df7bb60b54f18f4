package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPhotoKeyPreservesExtension(t *testing.T) {
	key := NewPhotoKey("a.jpg")
	assert.True(t, strings.HasPrefix(key, "photos/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
}

func TestNewPhotoKeyLowercasesExtension(t *testing.T) {
	key := NewPhotoKey("IMG_0042.JPG")
	assert.True(t, strings.HasSuffix(key, ".jpg"))
}

func TestNewPhotoKeyWithoutExtension(t *testing.T) {
	key := NewPhotoKey("snapshot")
	assert.True(t, strings.HasPrefix(key, "photos/"))
	assert.False(t, strings.Contains(key, "."))
}

func TestNewPhotoKeyOnlyLastExtensionKept(t *testing.T) {
	key := NewPhotoKey("archive.tar.gz")
	assert.True(t, strings.HasSuffix(key, ".gz"))
	assert.False(t, strings.Contains(key, ".tar."))
}

func TestNewPhotoKeyUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		key := NewPhotoKey("a.jpg")
		_, dup := seen[key]
		assert.False(t, dup, "duplicate key generated: %s", key)
		seen[key] = struct{}{}
	}
}
