package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasgarofolo/API-Mural/internal/apperrors"
	"github.com/lucasgarofolo/API-Mural/internal/models"
	"github.com/lucasgarofolo/API-Mural/internal/services"
)

// PhotoHandler defines handlers for the photo ingestion and listing routes.
type PhotoHandler struct {
	Service *services.PhotoService
	Logger  *zap.Logger

	// AllowURLIngestion enables the image_url variant of POST /photo.
	AllowURLIngestion bool
}

// NewPhotoHandler creates a new PhotoHandler with the given PhotoService.
func NewPhotoHandler(service *services.PhotoService, logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{Service: service, Logger: logger}
}

// UploadPhoto handles POST /photo to ingest a new photo.
// @Summary Upload a photo
// @Description Stores the image in the blob store, persists its metadata and returns the created record with a resolved public URL
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image payload"
// @Param latitude formData number true "Latitude"
// @Param longitude formData number true "Longitude"
// @Success 201 {object} models.EnrichedPhoto "Created photo"
// @Failure 400 {object} map[string]interface{} "Missing or malformed fields"
// @Failure 500 {object} map[string]interface{} "Downstream failure"
// @Router /photo [post]
func (h *PhotoHandler) UploadPhoto(c *fiber.Ctx) error {
	latitude := c.FormValue("latitude")
	longitude := c.FormValue("longitude")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if imageURL := c.FormValue("image_url"); imageURL != "" && h.AllowURLIngestion {
			created, err := h.Service.IngestURL(c.Context(), imageURL, latitude, longitude)
			if err != nil {
				return respondError(c, h.Logger, err)
			}
			return c.Status(fiber.StatusCreated).JSON(created)
		}
		return respondError(c, h.Logger,
			apperrors.New(apperrors.Validation, "imagem é obrigatória"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, h.Logger,
			apperrors.Wrap(apperrors.Validation, "não foi possível ler a imagem", err))
	}
	defer file.Close()

	created, err := h.Service.Ingest(c.Context(), models.PhotoSubmission{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Payload:     file,
		Latitude:    latitude,
		Longitude:   longitude,
	})
	if err != nil {
		return respondError(c, h.Logger, err)
	}

	h.Logger.Info("upload accepted",
		zap.String("id", created.ID.String()), zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size), zap.String("ip", c.IP()))
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListPhotos handles GET /photos to retrieve every photo, newest first.
// @Summary List all photos
// @Description Gets all photos with resolved public URLs, ordered by creation time descending
// @Tags photos
// @Produce json
// @Success 200 {array} models.EnrichedPhoto "All photos, newest first"
// @Failure 500 {object} map[string]interface{} "Downstream failure"
// @Router /photos [get]
func (h *PhotoHandler) ListPhotos(c *fiber.Ctx) error {
	photos, err := h.Service.List(c.Context())
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	h.Logger.Debug("listed photos", zap.Int("count", len(photos)))
	return c.JSON(photos)
}

// ReimaginePhoto handles POST /photo/:id/reimagine to caption an existing
// photo and ingest an AI-regenerated version of it.
// @Summary Reimagine a photo
// @Description Captions the stored photo via the AI service, generates a new image from the caption and stores it as a new photo
// @Tags photos
// @Produce json
// @Param id path string true "Photo ID"
// @Success 201 {object} models.EnrichedPhoto "Created photo"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Photo not found"
// @Failure 502 {object} map[string]interface{} "AI service failure"
// @Router /photo/{id}/reimagine [post]
func (h *PhotoHandler) ReimaginePhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, h.Logger,
			apperrors.Wrap(apperrors.Validation, "id inválido", err))
	}

	created, err := h.Service.Reimagine(c.Context(), id)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
