package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/lucasgarofolo/API-Mural/internal/apperrors"
	"github.com/lucasgarofolo/API-Mural/internal/models"
)

// MessageRepository defines metadata store operations for recados.
type MessageRepository interface {
	Create(message *models.Message) error
	ListAll() ([]models.Message, error)
}

// MessageRepositoryImpl provides methods to interact with the Message model in the database.
type MessageRepositoryImpl struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepositoryImpl instance.
func NewMessageRepository(db *gorm.DB) *MessageRepositoryImpl {
	return &MessageRepositoryImpl{db: db}
}

// Create inserts a new Message, assigning its creation time.
func (r *MessageRepositoryImpl) Create(message *models.Message) error {
	message.CreatedAt = time.Now().UTC()
	if err := r.db.Create(message).Error; err != nil {
		return apperrors.Wrap(apperrors.Store, "erro ao criar recado", err)
	}
	return nil
}

// ListAll retrieves every Message ordered by creation time, newest first.
func (r *MessageRepositoryImpl) ListAll() ([]models.Message, error) {
	messages := make([]models.Message, 0)
	err := r.db.Order("data_criacao DESC").Find(&messages).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Store, "erro ao buscar recados", err)
	}
	return messages, nil
}
