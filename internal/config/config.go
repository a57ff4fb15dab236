package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server's configuration.
type Config struct {
	AppEnv   string
	LogLevel slog.Level
	Port     string

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	WeatherAPIKey  string
	WeatherBaseURL string
	WeatherLat     float64
	WeatherLon     float64
	WeatherTimeout time.Duration

	// StaticDir is served at / when set (the built dashboard assets in
	// production). Empty disables static serving.
	StaticDir string

	// MQTTBroker enables the MQTT ingest bridge when non-empty.
	MQTTBroker   string
	MQTTPort     int
	MQTTTopic    string
	MQTTClientID string
}

// Load reads the configuration from environment variables, loading a .env
// file first when one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, relying on system environment variables")
	}

	cfg := Config{
		AppEnv:         envOr("APP_ENV", "dev"),
		Port:           envOr("PORT", "3000"),
		InfluxDBURL:    os.Getenv("INFLUXDB_URL"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: envOr("INFLUXDB_BUCKET", "home_guardian"),
		WeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		WeatherBaseURL: envOr("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
		StaticDir:      os.Getenv("STATIC_DIR"),
		MQTTBroker:     os.Getenv("MQTT_BROKER"),
		MQTTTopic:      envOr("MQTT_TOPIC", "home-guardian/readings"),
		MQTTClientID:   envOr("MQTT_CLIENT_ID", "home-guardian-server"),
	}

	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	if cfg.InfluxDBURL == "" || cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		return Config{}, fmt.Errorf("InfluxDB configuration is incomplete. Please set INFLUXDB_URL, INFLUXDB_TOKEN, and INFLUXDB_ORG environment variables")
	}

	// Default coordinates: Bangkok, where the original device lives.
	cfg.WeatherLat, err = envFloat("WEATHER_LAT", 13.7563)
	if err != nil {
		return Config{}, err
	}
	cfg.WeatherLon, err = envFloat("WEATHER_LON", 100.5018)
	if err != nil {
		return Config{}, err
	}
	cfg.WeatherTimeout, err = envDuration("WEATHER_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg.MQTTPort, err = envInt("MQTT_PORT", 1883)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DashboardConfig holds the terminal dashboard's configuration.
type DashboardConfig struct {
	APIBaseURL   string
	PollInterval time.Duration
}

// LoadDashboard reads the dashboard client's configuration.
func LoadDashboard() (DashboardConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on system environment variables")
	}

	interval, err := envDuration("POLL_INTERVAL", 60*time.Second)
	if err != nil {
		return DashboardConfig{}, err
	}
	return DashboardConfig{
		APIBaseURL:   envOr("API_BASE_URL", "http://localhost:3000"),
		PollInterval: interval,
	}, nil
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
