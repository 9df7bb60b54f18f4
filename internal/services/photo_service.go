package services

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasgarofolo/API-Mural/internal/ai"
	"github.com/lucasgarofolo/API-Mural/internal/apperrors"
	"github.com/lucasgarofolo/API-Mural/internal/metrics"
	"github.com/lucasgarofolo/API-Mural/internal/models"
	"github.com/lucasgarofolo/API-Mural/internal/repository"
	"github.com/lucasgarofolo/API-Mural/internal/services/caches"
	"github.com/lucasgarofolo/API-Mural/internal/storage"
)

const listingCacheKey = "photos:listing"

// PhotoService orchestrates the ingestion and listing pipeline: validation,
// key generation, blob storage, metadata insertion and URL enrichment.
type PhotoService struct {
	Repo    repository.PhotoRepository
	Blobs   storage.BlobStore
	Cache   caches.ListingCache // optional
	AI      ai.Client           // optional, enables Reimagine
	Metrics *metrics.Metrics    // optional
	Logger  *zap.Logger
}

// NewPhotoService creates a PhotoService. Cache, AI and Metrics may be nil.
func NewPhotoService(repo repository.PhotoRepository, blobs storage.BlobStore, logger *zap.Logger) *PhotoService {
	return &PhotoService{
		Repo:   repo,
		Blobs:  blobs,
		Logger: logger,
	}
}

// Ingest runs one submission through the full pipeline. The blob is written
// before the metadata row; if the insert then fails, the blob stays behind as
// an orphan and the error is surfaced unchanged. No step is ever retried.
func (s *PhotoService) Ingest(ctx context.Context, sub models.PhotoSubmission) (*models.EnrichedPhoto, error) {
	start := time.Now()

	if sub.Payload == nil || sub.Size <= 0 {
		s.Metrics.ObserveUploadFailure("validation")
		return nil, apperrors.New(apperrors.Validation, "imagem é obrigatória")
	}
	lat, err := parseCoordinate(sub.Latitude, "latitude")
	if err != nil {
		s.Metrics.ObserveUploadFailure("validation")
		return nil, err
	}
	lon, err := parseCoordinate(sub.Longitude, "longitude")
	if err != nil {
		s.Metrics.ObserveUploadFailure("validation")
		return nil, err
	}

	key := storage.NewPhotoKey(sub.Filename)
	contentType := sub.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.Blobs.Store(ctx, key, sub.Payload, sub.Size, contentType); err != nil {
		s.Metrics.ObserveUploadFailure("blob")
		return nil, err
	}

	photo := &models.Photo{
		Latitude:   lat,
		Longitude:  lon,
		StorageKey: key,
	}
	if err := s.Repo.Create(photo); err != nil {
		// The blob persists as an orphan; accepted limitation, not remediated.
		s.Metrics.ObserveUploadFailure("metadata")
		s.Logger.Error("metadata insert failed after blob write",
			zap.String("storage_key", key), zap.Error(err))
		return nil, err
	}

	s.invalidateListing(ctx)
	s.Metrics.ObserveUpload(float64(time.Since(start).Microseconds()) / 1000.0)
	s.Logger.Info("photo ingested",
		zap.String("id", photo.ID.String()), zap.String("storage_key", key))

	return &models.EnrichedPhoto{Photo: *photo, ImageURL: s.Blobs.PublicURL(key)}, nil
}

// IngestURL is the variant mode that skips blob storage and records a
// client-supplied image URL directly. The URL is stored as the record's
// storage key and resolves to itself.
func (s *PhotoService) IngestURL(ctx context.Context, imageURL, latitude, longitude string) (*models.EnrichedPhoto, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		s.Metrics.ObserveUploadFailure("validation")
		return nil, apperrors.New(apperrors.Validation, "image_url inválida")
	}
	lat, err := parseCoordinate(latitude, "latitude")
	if err != nil {
		s.Metrics.ObserveUploadFailure("validation")
		return nil, err
	}
	lon, err := parseCoordinate(longitude, "longitude")
	if err != nil {
		s.Metrics.ObserveUploadFailure("validation")
		return nil, err
	}

	photo := &models.Photo{
		Latitude:   lat,
		Longitude:  lon,
		StorageKey: imageURL,
	}
	if err := s.Repo.Create(photo); err != nil {
		s.Metrics.ObserveUploadFailure("metadata")
		return nil, err
	}

	s.invalidateListing(ctx)
	s.Logger.Info("photo ingested from url", zap.String("id", photo.ID.String()))

	return &models.EnrichedPhoto{Photo: *photo, ImageURL: imageURL}, nil
}

// List returns every photo newest-first, each enriched with its public URL.
// Either the whole listing succeeds or the error is surfaced; partial results
// are never returned.
func (s *PhotoService) List(ctx context.Context) ([]models.EnrichedPhoto, error) {
	start := time.Now()

	if s.Cache != nil {
		if data, ok := s.Cache.Get(ctx, listingCacheKey); ok {
			var cached []models.EnrichedPhoto
			if err := json.Unmarshal(data, &cached); err == nil {
				s.Metrics.ObserveListing(float64(time.Since(start).Microseconds())/1000.0, true)
				return cached, nil
			}
			s.Cache.Invalidate(ctx, listingCacheKey)
		}
	}

	photos, err := s.Repo.ListAll()
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedPhoto, 0, len(photos))
	for _, photo := range photos {
		enriched = append(enriched, models.EnrichedPhoto{
			Photo:    photo,
			ImageURL: s.Blobs.PublicURL(photo.StorageKey),
		})
	}

	if s.Cache != nil {
		if data, err := json.Marshal(enriched); err == nil {
			s.Cache.Set(ctx, listingCacheKey, data)
		}
	}

	s.Metrics.ObserveListing(float64(time.Since(start).Microseconds())/1000.0, false)
	return enriched, nil
}

// Reimagine captions an existing photo via the AI service, generates a new
// image from the caption and ingests the result as a fresh photo at the same
// coordinates.
func (s *PhotoService) Reimagine(ctx context.Context, id uuid.UUID) (*models.EnrichedPhoto, error) {
	if s.AI == nil {
		return nil, apperrors.New(apperrors.Upstream, "serviço de IA não configurado")
	}

	original, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	caption, err := s.AI.Caption(ctx, s.Blobs.PublicURL(original.StorageKey))
	if err != nil {
		return nil, err
	}
	payload, contentType, err := s.AI.Generate(ctx, caption)
	if err != nil {
		return nil, err
	}

	key := storage.NewPhotoKey("reimagined" + extensionFor(contentType))
	if err := s.Blobs.Store(ctx, key, bytes.NewReader(payload), int64(len(payload)), contentType); err != nil {
		return nil, err
	}

	photo := &models.Photo{
		Latitude:   original.Latitude,
		Longitude:  original.Longitude,
		StorageKey: key,
	}
	if err := s.Repo.Create(photo); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.Logger.Info("photo reimagined",
		zap.String("source_id", id.String()), zap.String("id", photo.ID.String()),
		zap.String("caption", caption))

	return &models.EnrichedPhoto{Photo: *photo, ImageURL: s.Blobs.PublicURL(key)}, nil
}

func (s *PhotoService) invalidateListing(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, listingCacheKey)
	}
}

// parseCoordinate requires a present, finite floating-point value.
func parseCoordinate(raw, name string) (float64, error) {
	if raw == "" {
		return 0, apperrors.New(apperrors.Validation, name+" é obrigatória")
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, apperrors.New(apperrors.Validation, name+" inválida")
	}
	return val, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
