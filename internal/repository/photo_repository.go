package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasgarofolo/API-Mural/internal/apperrors"
	"github.com/lucasgarofolo/API-Mural/internal/models"
)

// PhotoRepository defines metadata store operations for photos.
type PhotoRepository interface {
	Create(photo *models.Photo) error
	GetByID(id uuid.UUID) (*models.Photo, error)
	ListAll() ([]models.Photo, error)
}

// PhotoRepositoryImpl provides methods to interact with the Photo model in the database.
type PhotoRepositoryImpl struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new PhotoRepositoryImpl instance with the provided GORM database connection.
func NewPhotoRepository(db *gorm.DB) *PhotoRepositoryImpl {
	return &PhotoRepositoryImpl{db: db}
}

// Create inserts a new Photo, assigning its ID and creation time.
func (r *PhotoRepositoryImpl) Create(photo *models.Photo) error {
	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}
	photo.CreatedAt = time.Now().UTC()
	if err := r.db.Create(photo).Error; err != nil {
		return apperrors.Wrap(apperrors.Store, "erro ao salvar foto", err)
	}
	return nil
}

// GetByID retrieves a Photo by its ID.
func (r *PhotoRepositoryImpl) GetByID(id uuid.UUID) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.First(&photo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.NotFound, "foto não encontrada", err)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Store, "erro ao buscar foto", err)
	}
	return &photo, nil
}

// ListAll retrieves every Photo ordered by creation time, newest first.
func (r *PhotoRepositoryImpl) ListAll() ([]models.Photo, error) {
	photos := make([]models.Photo, 0)
	err := r.db.Order("created_at DESC").Find(&photos).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Store, "erro ao buscar fotos", err)
	}
	return photos, nil
}
