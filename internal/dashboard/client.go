// Package dashboard implements the polling terminal dashboard: a status
// panel plus sparkline charts for temperature, humidity, gas, and dust,
// refreshed every poll interval and on time-range change.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"home-guardian/internal/config"
	"home-guardian/internal/models"
)

// ErrNoData means the server has no readings yet. The dashboard shows a
// waiting state instead of the error banner.
var ErrNoData = errors.New("no readings available yet")

// Client talks to the Home Guardian API.
type Client struct {
	http *resty.Client
}

// NewClient creates an API client for the dashboard.
func NewClient(cfg config.DashboardConfig) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.APIBaseURL).
			SetTimeout(cfg.PollInterval / 2),
	}
}

// Status fetches the derived safety snapshot.
func (c *Client) Status(ctx context.Context) (models.StatusSnapshot, error) {
	var snap models.StatusSnapshot
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&snap).
		Get("/api/status")
	if err != nil {
		return models.StatusSnapshot{}, fmt.Errorf("fetching status: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return models.StatusSnapshot{}, ErrNoData
	}
	if resp.IsError() {
		return models.StatusSnapshot{}, fmt.Errorf("status request failed: %s", resp.Status())
	}
	return snap, nil
}

// History fetches readings from the last `hours` hours, oldest first.
func (c *Client) History(ctx context.Context, hours int) ([]models.Reading, error) {
	var readings []models.Reading
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("hours", fmt.Sprintf("%d", hours)).
		SetResult(&readings).
		Get("/api/readings/history")
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("history request failed: %s", resp.Status())
	}
	return readings, nil
}
