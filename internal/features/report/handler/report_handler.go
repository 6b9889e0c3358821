package handler

import (
	"errors"
	"strings"

	"ctrc-insights/internal/core/logger"
	"ctrc-insights/internal/features/report/domain"
	"ctrc-insights/internal/features/report/ports"
	"ctrc-insights/internal/features/report/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReportHandler handles HTTP requests for the reporting views.
type ReportHandler struct {
	service   ports.ReportService
	deadlines ports.DeadlineRepository
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(svc ports.ReportService, deadlines ports.DeadlineRepository) *ReportHandler {
	return &ReportHandler{
		service:   svc,
		deadlines: deadlines,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// DatasetSummary is the list/detail projection of a stored dataset.
type DatasetSummary struct {
	ID   string             `json:"id"`
	Name string             `json:"name"`
	Meta domain.DatasetMeta `json:"meta"`
}

// LoadDeadlinesRequest is the bulk-load body for the deadline reference table.
type LoadDeadlinesRequest struct {
	Entries []ports.DeadlineEntry `json:"entries"`
}

// GetUnitMetrics godoc
// @Summary Per-unit metrics for a dataset
// @Description Computes count/total/percentage per selected unit for the requested metric, ordered by percentage descending.
// @Tags report
// @Produce json
// @Param id path string true "Dataset ID"
// @Param uf query string false "State code, or 'all'" default(all)
// @Param units query string false "Comma-separated unit names"
// @Param codes query string false "Comma-separated occurrence codes"
// @Param metric query string false "Occurrence code or pseudo-code: projection, failures, noMovement, noDeadline"
// @Param reference_date query string false "Restrict the failures metric to this calendar day (dd/mm/yyyy)"
// @Success 200 {array} domain.AggregateRow
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /datasets/{id}/metrics [get]
func (h *ReportHandler) GetUnitMetrics(c *fiber.Ctx) error {
	sel, err := parseSelection(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	rows, err := h.service.UnitMetrics(c.Context(), c.Params("id"), sel)
	if err != nil {
		return h.fail(c, err)
	}
	if rows == nil {
		rows = []domain.AggregateRow{}
	}
	return c.JSON(rows)
}

// GetGroups godoc
// @Summary Drill-down groups for one unit
// @Description Groups the unit's filtered records by city+date, code+date or deadline bucket depending on the metric.
// @Tags report
// @Produce json
// @Param id path string true "Dataset ID"
// @Param unit query string true "Unit name"
// @Param uf query string false "State code, or 'all'" default(all)
// @Param codes query string false "Comma-separated occurrence codes"
// @Param metric query string false "Occurrence code or pseudo-code: projection, failures, noMovement, noDeadline"
// @Param sort query string false "Sort field: primary, secondary or quantity" default(secondary)
// @Param dir query string false "Sort direction: asc or desc" default(asc)
// @Success 200 {array} domain.GroupedRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /datasets/{id}/groups [get]
func (h *ReportHandler) GetGroups(c *fiber.Ctx) error {
	unit := c.Query("unit")
	if unit == "" {
		return badRequest(c, "unit query parameter is required")
	}

	sel, err := parseSelection(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	field, dir, err := parseSort(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	groups, err := h.service.Groups(c.Context(), c.Params("id"), unit, sel, field, dir)
	if err != nil {
		return h.fail(c, err)
	}
	if groups == nil {
		groups = []domain.GroupedRecord{}
	}
	return c.JSON(groups)
}

// ListDatasets godoc
// @Summary List stored datasets
// @Tags report
// @Produce json
// @Success 200 {array} DatasetSummary
// @Router /datasets [get]
func (h *ReportHandler) ListDatasets(c *fiber.Ctx) error {
	datasets, err := h.service.Datasets(c.Context())
	if err != nil {
		return h.fail(c, err)
	}

	summaries := make([]DatasetSummary, 0, len(datasets))
	for _, d := range datasets {
		summaries = append(summaries, DatasetSummary{ID: d.ID, Name: d.Name, Meta: d.Meta})
	}
	return c.JSON(summaries)
}

// GetDatasetMeta godoc
// @Summary Dataset summary metadata
// @Tags report
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} DatasetSummary
// @Failure 404 {object} ErrorResponse
// @Router /datasets/{id}/meta [get]
func (h *ReportHandler) GetDatasetMeta(c *fiber.Ctx) error {
	d, err := h.service.Dataset(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(DatasetSummary{ID: d.ID, Name: d.Name, Meta: d.Meta})
}

// DeleteDataset godoc
// @Summary Delete a stored dataset
// @Tags report
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} map[string]string
// @Router /datasets/{id} [delete]
func (h *ReportHandler) DeleteDataset(c *fiber.Ctx) error {
	if err := h.service.DeleteDataset(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Dataset deleted"})
}

// LoadDeadlines godoc
// @Summary Bulk-load the deadline reference table
// @Tags deadlines
// @Accept json
// @Produce json
// @Param deadlines body LoadDeadlinesRequest true "Reference entries"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /deadlines [put]
func (h *ReportHandler) LoadDeadlines(c *fiber.Ctx) error {
	var req LoadDeadlinesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.Entries) == 0 {
		return badRequest(c, "entries must not be empty")
	}

	if err := h.deadlines.Load(c.Context(), req.Entries); err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Deadline reference loaded"})
}

// GetDeadline godoc
// @Summary Look up the expected lead time for a city
// @Tags deadlines
// @Produce json
// @Param city path string true "Delivery city"
// @Param unit query string false "Handling unit"
// @Success 200 {object} ports.DeadlineEntry
// @Failure 404 {object} ErrorResponse
// @Router /deadlines/{city} [get]
func (h *ReportHandler) GetDeadline(c *fiber.Ctx) error {
	city := c.Params("city")
	unit := c.Query("unit")

	days, found, err := h.deadlines.ExpectedDays(c.Context(), city, unit)
	if err != nil {
		return h.fail(c, err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "no deadline reference for city",
			RayID:   rayID(c),
		})
	}
	return c.JSON(ports.DeadlineEntry{City: city, Unit: unit, Days: days})
}

// parseSelection builds the filter selection from query parameters.
func parseSelection(c *fiber.Ctx) (domain.FilterSelection, error) {
	mode, code := domain.ModeForMetricCode(c.Query("metric"))
	sel := domain.FilterSelection{
		UF:    c.Query("uf", domain.All),
		Units: splitParam(c.Query("units")),
		Codes: splitParam(c.Query("codes")),
		Mode:  mode,
		Code:  code,
	}
	if c.Query("unit") != "" && len(sel.Units) == 0 {
		sel.Units = []string{c.Query("unit")}
	}

	if raw := c.Query("reference_date"); raw != "" {
		d, ok := domain.ParseFlexibleDate(raw)
		if !ok {
			return sel, errors.New("reference_date is not a valid date")
		}
		sel.ReferenceDate = d
	}
	return sel, nil
}

func parseSort(c *fiber.Ctx) (domain.SortField, domain.SortDirection, error) {
	field := domain.SortField(c.Query("sort", string(domain.SortBySecondary)))
	switch field {
	case domain.SortByPrimary, domain.SortBySecondary, domain.SortByQuantity:
	default:
		return "", "", errors.New("sort must be one of: primary, secondary, quantity")
	}

	dir := domain.SortDirection(c.Query("dir", string(domain.SortAsc)))
	switch dir {
	case domain.SortAsc, domain.SortDesc:
	default:
		return "", "", errors.New("dir must be asc or desc")
	}
	return field, dir, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// fail maps service errors onto HTTP statuses.
func (h *ReportHandler) fail(c *fiber.Ctx, err error) error {
	var colErr *domain.ColumnResolutionError
	switch {
	case errors.Is(err, service.ErrDatasetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "dataset not found",
			RayID:   rayID(c),
		})
	case errors.As(err, &colErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Message: "invalid file structure: " + colErr.Error(),
			RayID:   rayID(c),
		})
	default:
		logger.Get().Error("Report request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
			RayID:   rayID(c),
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message: message,
		RayID:   rayID(c),
	})
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
