package services

import (
	"strings"

	"go.uber.org/zap"

	"github.com/lucasgarofolo/API-Mural/internal/apperrors"
	"github.com/lucasgarofolo/API-Mural/internal/models"
	"github.com/lucasgarofolo/API-Mural/internal/repository"
)

// MessageService handles the mural's plain text recados.
type MessageService struct {
	Repo   repository.MessageRepository
	Logger *zap.Logger
}

// NewMessageService creates a MessageService.
func NewMessageService(repo repository.MessageRepository, logger *zap.Logger) *MessageService {
	return &MessageService{Repo: repo, Logger: logger}
}

// Create validates and persists one recado.
func (s *MessageService) Create(sub models.MessageSubmission) (*models.Message, error) {
	if strings.TrimSpace(sub.Author) == "" || strings.TrimSpace(sub.Content) == "" {
		return nil, apperrors.New(apperrors.Validation, "Autor e mensagem são obrigatórios.")
	}
	message := &models.Message{
		Author:  sub.Author,
		Content: sub.Content,
	}
	if err := s.Repo.Create(message); err != nil {
		return nil, err
	}
	s.Logger.Info("recado created", zap.Uint("id", message.ID), zap.String("autor", message.Author))
	return message, nil
}

// List returns every recado, newest first.
func (s *MessageService) List() ([]models.Message, error) {
	return s.Repo.ListAll()
}
