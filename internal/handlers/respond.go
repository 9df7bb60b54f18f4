package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lucasgarofolo/API-Mural/internal/apperrors"
)

// respondError is the single error-mapping boundary: it inspects the error
// taxonomy and produces the HTTP status plus the {error, details} body every
// failure response uses.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.Validation:
		status = fiber.StatusBadRequest
	case apperrors.NotFound:
		status = fiber.StatusNotFound
	case apperrors.Conflict:
		status = fiber.StatusConflict
	case apperrors.Upstream:
		status = fiber.StatusBadGateway
	}

	if status >= fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Method()), zap.String("path", c.Path()),
			zap.Int("status", status), zap.Error(err))
	} else {
		logger.Warn("request rejected",
			zap.String("method", c.Method()), zap.String("path", c.Path()),
			zap.Int("status", status), zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   apperrors.SummaryOf(err),
		"details": err.Error(),
	})
}
