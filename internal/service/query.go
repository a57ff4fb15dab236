package service

import (
	"context"
	"fmt"

	"home-guardian/internal/models"
	"home-guardian/internal/repository"
	"home-guardian/internal/safety"
)

// DefaultHistoryHours is the history window used when the caller does not
// specify one.
const DefaultHistoryHours = 24

// QueryService serves the latest reading, time-bounded history, and the
// derived status snapshot.
type QueryService struct {
	store repository.ReadingStore
}

// NewQueryService creates a QueryService.
func NewQueryService(store repository.ReadingStore) *QueryService {
	return &QueryService{store: store}
}

// Latest returns the most recent reading, or repository.ErrNoReadings when
// the store is empty.
func (s *QueryService) Latest(ctx context.Context) (models.Reading, error) {
	return s.store.Latest(ctx)
}

// History returns all readings from the last `hours` hours, oldest first.
func (s *QueryService) History(ctx context.Context, hours int) ([]models.Reading, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("hours must be positive, got %d", hours)
	}
	readings, err := s.store.History(ctx, hours)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	if readings == nil {
		readings = make([]models.Reading, 0)
	}
	return readings, nil
}

// Status computes the safety snapshot from the latest reading. Scores and
// alerts are recomputed on every call; nothing derived is ever stored.
func (s *QueryService) Status(ctx context.Context) (models.StatusSnapshot, error) {
	latest, err := s.store.Latest(ctx)
	if err != nil {
		return models.StatusSnapshot{}, err
	}

	scores := safety.Score(latest)
	alerts := safety.EvaluateAlerts(latest)
	if alerts == nil {
		alerts = make([]models.Alert, 0)
	}

	return models.StatusSnapshot{
		Timestamp: latest.Timestamp,
		Scores:    scores,
		Alerts:    alerts,
		Status:    safety.StatusLabel(scores.Overall),
	}, nil
}
