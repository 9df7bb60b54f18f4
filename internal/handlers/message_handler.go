package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lucasgarofolo/API-Mural/internal/apperrors"
	"github.com/lucasgarofolo/API-Mural/internal/models"
	"github.com/lucasgarofolo/API-Mural/internal/services"
)

// MessageHandler defines handlers for the recados routes.
type MessageHandler struct {
	Service *services.MessageService
	Logger  *zap.Logger
}

// NewMessageHandler creates a new MessageHandler with the given MessageService.
func NewMessageHandler(service *services.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{Service: service, Logger: logger}
}

// CreateMessage handles POST /recados to add a recado to the mural.
// @Summary Create a recado
// @Tags recados
// @Accept json
// @Produce json
// @Param recado body models.MessageSubmission true "Recado"
// @Success 201 {object} models.Message "Created recado"
// @Failure 400 {object} map[string]interface{} "Missing fields"
// @Failure 500 {object} map[string]interface{} "Downstream failure"
// @Router /recados [post]
func (h *MessageHandler) CreateMessage(c *fiber.Ctx) error {
	var sub models.MessageSubmission
	if err := c.BodyParser(&sub); err != nil {
		return respondError(c, h.Logger,
			apperrors.Wrap(apperrors.Validation, "corpo da requisição inválido", err))
	}

	created, err := h.Service.Create(sub)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListMessages handles GET /recados to retrieve every recado, newest first.
// @Summary List all recados
// @Tags recados
// @Produce json
// @Success 200 {array} models.Message "All recados, newest first"
// @Failure 500 {object} map[string]interface{} "Downstream failure"
// @Router /recados [get]
func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	messages, err := h.Service.List()
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(messages)
}
