package handler

import (
	"errors"

	"ctrc-insights/internal/core/logger"
	"ctrc-insights/internal/features/ingest/ports"
	"ctrc-insights/internal/features/ingest/service"
	"ctrc-insights/internal/features/report/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UploadHandler handles spreadsheet upload requests.
type UploadHandler struct {
	service ports.IngestService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(svc ports.IngestService) *UploadHandler {
	return &UploadHandler{
		service: svc,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	Message string `json:"message"`
	RayID   string `json:"ray_id,omitempty"`
}

// UploadResponse is returned for a stored dataset.
type UploadResponse struct {
	ID   string             `json:"id"`
	Name string             `json:"name"`
	Meta domain.DatasetMeta `json:"meta"`
}

// Upload godoc
// @Summary Upload a shipment-tracking export
// @Description Accepts a .csv, .xlsx or .sswweb export as multipart form field "file" and stores it as a new dataset.
// @Tags ingest
// @Accept mpfd
// @Produce json
// @Param file formData file true "Tracking export"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /datasets [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.respondError(c, fiber.StatusBadRequest, "file form field is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return h.respondError(c, fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer f.Close()

	d, err := h.service.Ingest(c.Context(), fileHeader.Filename, f)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UploadResponse{ID: d.ID, Name: d.Name, Meta: d.Meta})
}

func (h *UploadHandler) fail(c *fiber.Ctx, err error) error {
	var colErr *domain.ColumnResolutionError
	switch {
	case errors.Is(err, service.ErrUnsupportedFormat), errors.Is(err, service.ErrEmptyFile):
		return h.respondError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &colErr):
		return h.respondError(c, fiber.StatusUnprocessableEntity, "invalid file structure: "+colErr.Error())
	default:
		logger.Get().Error("Upload failed", zap.Error(err))
		return h.respondError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func (h *UploadHandler) respondError(c *fiber.Ctx, status int, message string) error {
	resp := ErrorResponse{Message: message}
	if id, ok := c.Locals("requestid").(string); ok {
		resp.RayID = id
	}
	return c.Status(status).JSON(resp)
}
