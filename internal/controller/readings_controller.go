package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"home-guardian/internal/models"
	"home-guardian/internal/repository"
	"home-guardian/internal/service"
	"home-guardian/internal/utils"
)

// Ingestor is the slice of the ingestion service the controller needs.
type Ingestor interface {
	Ingest(ctx context.Context, payload models.ReadingPayload) (models.Reading, []models.Alert, error)
}

// Querier is the slice of the query service the controller needs.
type Querier interface {
	Latest(ctx context.Context) (models.Reading, error)
	History(ctx context.Context, hours int) ([]models.Reading, error)
	Status(ctx context.Context) (models.StatusSnapshot, error)
}

// ReadingsController handles the HTTP surface for readings and status.
type ReadingsController struct {
	ingestor Ingestor
	querier  Querier
	logger   *slog.Logger
}

// NewReadingsController creates a ReadingsController.
func NewReadingsController(ingestor Ingestor, querier Querier, logger *slog.Logger) *ReadingsController {
	return &ReadingsController{
		ingestor: ingestor,
		querier:  querier,
		logger:   logger,
	}
}

// ingestResponse confirms a saved reading and carries its alerts.
type ingestResponse struct {
	Message string         `json:"message"`
	Alerts  []models.Alert `json:"alerts"`
}

// HandleIngest accepts one sensor payload from a device.
func (c *ReadingsController) HandleIngest(w http.ResponseWriter, r *http.Request) {
	var payload models.ReadingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		apiErr := models.NewAPIError(models.ErrorCodeBadRequest, fmt.Sprintf("invalid reading payload: %v", err), nil, http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}
	defer r.Body.Close()

	_, alerts, err := c.ingestor.Ingest(r.Context(), payload)
	if err != nil {
		c.logger.Error("ingestion failed", "error", err)
		apiErr := models.NewAPIError(models.ErrorCodeInternalServerError, "Failed to save reading", nil, http.StatusInternalServerError)
		utils.RespondWithError(w, apiErr)
		return
	}
	if alerts == nil {
		alerts = make([]models.Alert, 0)
	}

	utils.RespondWithJSON(w, http.StatusCreated, ingestResponse{
		Message: "Reading saved successfully",
		Alerts:  alerts,
	})
}

// HandleLatest serves the most recent reading.
func (c *ReadingsController) HandleLatest(w http.ResponseWriter, r *http.Request) {
	reading, err := c.querier.Latest(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoReadings) {
			apiErr := models.NewAPIError(models.ErrorCodeNotFound, "No readings available", nil, http.StatusNotFound)
			utils.RespondWithError(w, apiErr)
			return
		}
		c.logger.Error("latest reading lookup failed", "error", err)
		apiErr := models.NewAPIError(models.ErrorCodeInternalServerError, "Failed to fetch latest reading", nil, http.StatusInternalServerError)
		utils.RespondWithError(w, apiErr)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, reading)
}

// HandleHistory serves readings from the last `hours` hours (default 24),
// oldest first.
func (c *ReadingsController) HandleHistory(w http.ResponseWriter, r *http.Request) {
	hours := service.DefaultHistoryHours
	if raw := r.URL.Query().Get("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			apiErr := models.NewAPIError(models.ErrorCodeInvalidFormat, fmt.Sprintf("hours must be a positive integer, got %q", raw), nil, http.StatusBadRequest)
			utils.RespondWithError(w, apiErr)
			return
		}
		hours = parsed
	}

	readings, err := c.querier.History(r.Context(), hours)
	if err != nil {
		c.logger.Error("history lookup failed", "error", err, "hours", hours)
		apiErr := models.NewAPIError(models.ErrorCodeInternalServerError, "Failed to fetch historical readings", nil, http.StatusInternalServerError)
		utils.RespondWithError(w, apiErr)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, readings)
}

// HandleStatus serves the derived safety snapshot of the latest reading.
func (c *ReadingsController) HandleStatus(w http.ResponseWriter, r *http.Request) {
	snapshot, err := c.querier.Status(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoReadings) {
			apiErr := models.NewAPIError(models.ErrorCodeNotFound, "No readings available", nil, http.StatusNotFound)
			utils.RespondWithError(w, apiErr)
			return
		}
		c.logger.Error("status computation failed", "error", err)
		apiErr := models.NewAPIError(models.ErrorCodeInternalServerError, "Failed to calculate status", nil, http.StatusInternalServerError)
		utils.RespondWithError(w, apiErr)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, snapshot)
}
