package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"home-guardian/internal/config"
)

func testConfig(baseURL, apiKey string) config.Config {
	return config.Config{
		WeatherBaseURL: baseURL,
		WeatherAPIKey:  apiKey,
		WeatherLat:     13.7563,
		WeatherLon:     100.5018,
		WeatherTimeout: 2 * time.Second,
	}
}

func TestCurrentParsesProviderResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("path = %q; want /data/2.5/weather", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("appid") != "test-key" || q.Get("units") != "metric" {
			t.Errorf("unexpected query params: %v", q)
		}
		if q.Get("lat") != "13.7563" || q.Get("lon") != "100.5018" {
			t.Errorf("coordinates = %s,%s; want 13.7563,100.5018", q.Get("lat"), q.Get("lon"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":31.2,"humidity":74},"weather":[{"main":"Clouds"}]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL, "test-key"))
	snap, err := c.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if snap.Temp != 31.2 || snap.Humidity != 74 || snap.Conditions != "Clouds" {
		t.Errorf("snapshot = %+v; want temp=31.2 humidity=74 conditions=Clouds", snap)
	}
}

func TestCurrentWithoutAPIKeySkipsNetwork(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL, ""))
	_, err := c.Current(context.Background())
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("err = %v; want ErrNoAPIKey", err)
	}
	if hits != 0 {
		t.Errorf("provider was called %d times; want 0", hits)
	}
}

func TestCurrentProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"server error status",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			"empty conditions array",
			func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"main":{"temp":20,"humidity":50},"weather":[]}`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(testConfig(srv.URL, "test-key"))
			if _, err := c.Current(context.Background()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCurrentUnreachableProvider(t *testing.T) {
	c := NewClient(testConfig("http://127.0.0.1:1", "test-key"))
	if _, err := c.Current(context.Background()); err == nil {
		t.Error("expected an error for unreachable provider")
	}
}
