// Package service orchestrates ingestion and queries over the injected
// store and weather provider. It holds no state of its own beyond those
// handles.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"home-guardian/internal/metrics"
	"home-guardian/internal/models"
	"home-guardian/internal/repository"
	"home-guardian/internal/safety"
	"home-guardian/internal/weather"
)

// IngestionService assembles, enriches, persists, and alert-checks
// incoming readings.
type IngestionService struct {
	store   repository.ReadingStore
	weather weather.Provider
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewIngestionService creates an IngestionService.
func NewIngestionService(store repository.ReadingStore, provider weather.Provider, m *metrics.Metrics, logger *slog.Logger) *IngestionService {
	return &IngestionService{
		store:   store,
		weather: provider,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Ingest enriches the payload with current weather, persists the assembled
// reading, and evaluates alerts on it. A failed weather lookup degrades
// the reading to no enrichment; a failed write aborts the ingestion.
//
// The server assigns the timestamp; a payload-supplied one is ignored.
func (s *IngestionService) Ingest(ctx context.Context, payload models.ReadingPayload) (models.Reading, []models.Alert, error) {
	start := s.now()
	defer func() {
		s.metrics.IngestLatency.Observe(s.now().Sub(start).Seconds())
	}()

	snapshot, err := s.weather.Current(ctx)
	if err != nil {
		s.metrics.WeatherLookupFailures.Inc()
		s.logger.Warn("weather enrichment failed, saving reading without it", "error", err)
		snapshot = nil
	}

	reading := models.Reading{
		ID:        uuid.NewString(),
		DeviceID:  payload.DeviceID,
		Timestamp: s.now().UTC(),
		Temp1:     payload.Temp1,
		Temp2:     payload.Temp2,
		Temp3:     payload.Temp3,
		Humidity1: payload.Humidity1,
		Humidity2: payload.Humidity2,
		Humidity3: payload.Humidity3,
		Smoke1:    payload.Smoke1,
		Smoke2:    payload.Smoke2,
		Lpg1:      payload.Lpg1,
		Lpg2:      payload.Lpg2,
		Co1:       payload.Co1,
		Co2:       payload.Co2,
		Dust:      payload.Dust,
		Weather:   snapshot,
	}

	if err := s.store.Append(ctx, reading); err != nil {
		return models.Reading{}, nil, fmt.Errorf("saving reading: %w", err)
	}

	alerts := safety.EvaluateAlerts(reading)

	s.metrics.ReadingsIngested.Inc()
	s.metrics.AlertsEmitted.Add(float64(len(alerts)))
	s.logger.Info("reading ingested",
		"reading_id", reading.ID,
		"device_id", reading.DeviceID,
		"enriched", reading.Weather != nil,
		"alerts", len(alerts),
	)
	return reading, alerts, nil
}
