package storage

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/lucasgarofolo/API-Mural/internal/apperrors"
	"github.com/lucasgarofolo/API-Mural/internal/config"
)

// NewMinioClient initializes a MinIO client and ensures the bucket exists.
func NewMinioClient(cfg *config.Config) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioSSL,
	})
	if err != nil {
		return nil, err
	}
	// Ensure the bucket exists (create if not present)
	ctx := context.Background()
	exists, errBucket := minioClient.BucketExists(ctx, cfg.MinioBucket)
	if errBucket != nil {
		return nil, errBucket
	}
	if !exists {
		err = minioClient.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: ""})
		if err != nil {
			return nil, err
		}
		log.Printf("Created bucket %s\n", cfg.MinioBucket)
	}
	return minioClient, nil
}

// BlobStore persists binary payloads under unique keys and resolves keys to
// publicly fetchable URLs.
type BlobStore interface {
	Store(ctx context.Context, key string, payload io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

// MinioBlobStore implements BlobStore on a MinIO bucket.
type MinioBlobStore struct {
	Client  *minio.Client
	Bucket  string
	BaseURL string
}

// NewMinioBlobStore wraps an initialized MinIO client. The public base URL is
// taken from cfg.PublicBaseURL, falling back to the MinIO endpoint itself.
func NewMinioBlobStore(client *minio.Client, cfg *config.Config) *MinioBlobStore {
	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.MinioSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.MinioEndpoint
	}
	return &MinioBlobStore{
		Client:  client,
		Bucket:  cfg.MinioBucket,
		BaseURL: strings.TrimRight(base, "/"),
	}
}

// Store writes the payload under key with upsert disabled: an already occupied
// key is rejected with a conflict. Keys are UUID-fresh, so the stat-then-put
// window is not a practical race.
func (s *MinioBlobStore) Store(ctx context.Context, key string, payload io.Reader, size int64, contentType string) error {
	_, err := s.Client.StatObject(ctx, s.Bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return apperrors.New(apperrors.Conflict, "chave de armazenamento já existe")
	}
	if resp := minio.ToErrorResponse(err); resp.Code != "NoSuchKey" {
		return apperrors.Wrap(apperrors.Storage, "erro ao consultar armazenamento", err)
	}
	_, err = s.Client.PutObject(ctx, s.Bucket, key, payload, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.Storage, "erro ao enviar arquivo", err)
	}
	return nil
}

// PublicURL resolves a storage key to a fetchable URL. Pure string
// construction, no round-trip. Keys that are already absolute URLs (URL-only
// ingestion mode) resolve to themselves.
func (s *MinioBlobStore) PublicURL(key string) string {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	return s.BaseURL + "/" + s.Bucket + "/" + key
}
