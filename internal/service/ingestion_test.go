package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"home-guardian/internal/metrics"
	"home-guardian/internal/models"
	"home-guardian/internal/repository"
)

type fakeStore struct {
	appended  []models.Reading
	appendErr error

	latest    models.Reading
	latestErr error

	history     []models.Reading
	historyErr  error
	lastHours   int
	historySeen bool
}

func (f *fakeStore) Append(_ context.Context, r models.Reading) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, r)
	return nil
}

func (f *fakeStore) Latest(context.Context) (models.Reading, error) {
	return f.latest, f.latestErr
}

func (f *fakeStore) History(_ context.Context, hours int) ([]models.Reading, error) {
	f.historySeen = true
	f.lastHours = hours
	return f.history, f.historyErr
}

type fakeWeather struct {
	snapshot *models.WeatherSnapshot
	err      error
	calls    int
}

func (f *fakeWeather) Current(context.Context) (*models.WeatherSnapshot, error) {
	f.calls++
	return f.snapshot, f.err
}

func newTestIngestion(store *fakeStore, provider *fakeWeather) (*IngestionService, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	svc := NewIngestionService(store, provider, m, slog.New(slog.DiscardHandler))
	svc.now = func() time.Time {
		return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	}
	return svc, m
}

func payload() models.ReadingPayload {
	return models.ReadingPayload{
		DeviceID: "home_guardian_01",
		Temp1:    22.5, Temp2: 22.5, Temp3: 22.5,
		Humidity1: 60, Humidity2: 61, Humidity3: 59,
		Smoke1: 10, Smoke2: 12,
		Dust: 8,
	}
}

func TestIngestAssemblesEnrichedReading(t *testing.T) {
	store := &fakeStore{}
	provider := &fakeWeather{snapshot: &models.WeatherSnapshot{Temp: 31, Humidity: 70, Conditions: "Clouds"}}
	svc, _ := newTestIngestion(store, provider)

	reading, alerts, err := svc.Ingest(context.Background(), payload())
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(store.appended) != 1 {
		t.Fatalf("appended %d readings; want 1", len(store.appended))
	}
	saved := store.appended[0]
	if saved.ID == "" {
		t.Error("reading id not assigned")
	}
	if saved.Weather == nil || saved.Weather.Conditions != "Clouds" {
		t.Errorf("weather = %+v; want Clouds snapshot", saved.Weather)
	}
	if saved.Temp1 != 22.5 || saved.Humidity3 != 59 || saved.Smoke2 != 12 || saved.Dust != 8 {
		t.Errorf("channel values changed during assembly: %+v", saved)
	}
	if reading.ID != saved.ID {
		t.Errorf("returned reading id %q differs from saved %q", reading.ID, saved.ID)
	}
	if len(alerts) != 0 {
		t.Errorf("alerts = %v; want none for a calm reading", alerts)
	}
}

func TestIngestAssignsServerTimestamp(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestIngestion(store, &fakeWeather{})

	p := payload()
	p.Timestamp = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	reading, _, err := svc.Ingest(context.Background(), p)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	want := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	if !reading.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v; want server-assigned %v", reading.Timestamp, want)
	}
}

func TestIngestToleratesWeatherFailure(t *testing.T) {
	store := &fakeStore{}
	provider := &fakeWeather{err: errors.New("provider unreachable")}
	svc, m := newTestIngestion(store, provider)

	_, _, err := svc.Ingest(context.Background(), payload())
	if err != nil {
		t.Fatalf("Ingest should succeed without weather: %v", err)
	}
	if len(store.appended) != 1 {
		t.Fatalf("appended %d readings; want 1", len(store.appended))
	}
	if store.appended[0].Weather != nil {
		t.Errorf("weather = %+v; want nil on enrichment failure", store.appended[0].Weather)
	}
	if got := testutil.ToFloat64(m.WeatherLookupFailures); got != 1 {
		t.Errorf("weather failure counter = %v; want 1", got)
	}
}

func TestIngestPersistenceFailure(t *testing.T) {
	store := &fakeStore{appendErr: errors.New("influx down")}
	svc, m := newTestIngestion(store, &fakeWeather{})

	_, _, err := svc.Ingest(context.Background(), payload())
	if err == nil {
		t.Fatal("expected error when the store fails")
	}
	if got := testutil.ToFloat64(m.ReadingsIngested); got != 0 {
		t.Errorf("ingested counter = %v; want 0 after a failed write", got)
	}
}

func TestIngestReturnsAlerts(t *testing.T) {
	store := &fakeStore{}
	svc, m := newTestIngestion(store, &fakeWeather{})

	p := payload()
	p.Temp1, p.Temp2, p.Temp3 = 41, 41, 41
	p.Smoke1 = 600
	_, alerts, err := svc.Ingest(context.Background(), p)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts; want temperature + smoke", len(alerts))
	}
	if got := testutil.ToFloat64(m.AlertsEmitted); got != 2 {
		t.Errorf("alerts counter = %v; want 2", got)
	}
}

var _ repository.ReadingStore = (*fakeStore)(nil)
