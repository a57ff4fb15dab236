// Package weather fetches current outdoor conditions from OpenWeatherMap.
// Enrichment is best-effort: callers treat any returned error as "no
// weather" and carry on, so nothing here may block ingestion beyond the
// configured timeout.
package weather

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"home-guardian/internal/config"
	"home-guardian/internal/models"
)

// ErrNoAPIKey is returned without a network call when no API key is set.
var ErrNoAPIKey = errors.New("weather: OPENWEATHER_API_KEY is not set")

// Provider is the enrichment contract the ingestion service consumes.
type Provider interface {
	Current(ctx context.Context) (*models.WeatherSnapshot, error)
}

// Client queries OpenWeatherMap for one fixed coordinate.
type Client struct {
	http   *resty.Client
	apiKey string
	lat    float64
	lon    float64
}

// NewClient creates a weather client from the application configuration.
func NewClient(cfg config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.WeatherBaseURL).
		SetTimeout(cfg.WeatherTimeout)

	return &Client{
		http:   client,
		apiKey: cfg.WeatherAPIKey,
		lat:    cfg.WeatherLat,
		lon:    cfg.WeatherLon,
	}
}

// currentResponse mirrors the slice of the OpenWeatherMap payload we use.
type currentResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// Current fetches the current conditions at the configured coordinate.
func (c *Client) Current(ctx context.Context) (*models.WeatherSnapshot, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	var out currentResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   fmt.Sprintf("%g", c.lat),
			"lon":   fmt.Sprintf("%g", c.lon),
			"appid": c.apiKey,
			"units": "metric",
		}).
		SetResult(&out).
		Get("/data/2.5/weather")
	if err != nil {
		return nil, fmt.Errorf("weather: fetching current conditions: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("weather: provider returned %s", resp.Status())
	}
	if len(out.Weather) == 0 {
		return nil, fmt.Errorf("weather: response has no conditions")
	}

	return &models.WeatherSnapshot{
		Temp:       out.Main.Temp,
		Humidity:   out.Main.Humidity,
		Conditions: out.Weather[0].Main,
	}, nil
}
