package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"home-guardian/internal/config"
	"home-guardian/internal/models"
)

func clientFor(srvURL string) *Client {
	return NewClient(config.DashboardConfig{
		APIBaseURL:   srvURL,
		PollInterval: 10 * time.Second,
	})
}

func TestClientStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status" {
			t.Errorf("path = %q; want /api/status", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"scores":{"temperature":100,"gas":100,"airQuality":75,"overall":92},"alerts":[],"status":"Safe"}`))
	}))
	defer srv.Close()

	snap, err := clientFor(srv.URL).Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if snap.Status != models.StatusSafe || snap.Scores.Overall != 92 {
		t.Errorf("snapshot = %+v; want Safe/92", snap)
	}
}

func TestClientStatusNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"not_found","message":"No readings available"}`))
	}))
	defer srv.Close()

	_, err := clientFor(srv.URL).Status(context.Background())
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v; want ErrNoData", err)
	}
}

func TestClientHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("hours"); got != "12" {
			t.Errorf("hours = %q; want 12", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a","timestamp":"2026-05-04T12:00:00Z","temp1":22.5},{"id":"b","timestamp":"2026-05-04T13:00:00Z","temp1":23}]`))
	}))
	defer srv.Close()

	readings, err := clientFor(srv.URL).History(context.Background(), 12)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(readings) != 2 || readings[0].ID != "a" {
		t.Errorf("readings = %+v; want two ordered readings", readings)
	}
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := clientFor(srv.URL).Status(context.Background()); err == nil {
		t.Error("expected error on 500 status")
	}
	if _, err := clientFor(srv.URL).History(context.Background(), 24); err == nil {
		t.Error("expected error on 500 history")
	}
}
