package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucasgarofolo/API-Mural/internal/config"
)

func TestPublicURL(t *testing.T) {
	store := NewMinioBlobStore(nil, &config.Config{
		MinioEndpoint: "localhost:9000",
		MinioBucket:   "mural",
	})
	assert.Equal(t, "http://localhost:9000/mural/photos/abc.jpg", store.PublicURL("photos/abc.jpg"))
}

func TestPublicURLWithSSL(t *testing.T) {
	store := NewMinioBlobStore(nil, &config.Config{
		MinioEndpoint: "storage.example.com",
		MinioBucket:   "mural",
		MinioSSL:      true,
	})
	assert.Equal(t, "https://storage.example.com/mural/photos/abc.jpg", store.PublicURL("photos/abc.jpg"))
}

func TestPublicURLWithBaseOverride(t *testing.T) {
	store := NewMinioBlobStore(nil, &config.Config{
		MinioEndpoint: "localhost:9000",
		MinioBucket:   "mural",
		PublicBaseURL: "https://cdn.example.com/",
	})
	assert.Equal(t, "https://cdn.example.com/mural/photos/abc.jpg", store.PublicURL("photos/abc.jpg"))
}

func TestPublicURLIsDeterministic(t *testing.T) {
	store := NewMinioBlobStore(nil, &config.Config{
		MinioEndpoint: "localhost:9000",
		MinioBucket:   "mural",
	})
	assert.Equal(t, store.PublicURL("photos/x.png"), store.PublicURL("photos/x.png"))
}

func TestPublicURLPassesThroughAbsoluteURLs(t *testing.T) {
	store := NewMinioBlobStore(nil, &config.Config{
		MinioEndpoint: "localhost:9000",
		MinioBucket:   "mural",
	})
	assert.Equal(t, "https://images.example.com/x.jpg", store.PublicURL("https://images.example.com/x.jpg"))
}
