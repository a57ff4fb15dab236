package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"home-guardian/internal/config"
	"home-guardian/internal/controller"
	"home-guardian/internal/logging"
	"home-guardian/internal/metrics"
	"home-guardian/internal/models"
	"home-guardian/internal/mqttingest"
	"home-guardian/internal/repository"
	"home-guardian/internal/routes"
	"home-guardian/internal/service"
	"home-guardian/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := logging.New(cfg, "home-guardian")

	store, err := repository.NewInfluxReadingStore(ctx, cfg.InfluxDBURL, cfg.InfluxDBToken, cfg.InfluxDBOrg, cfg.InfluxDBBucket, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("connected to InfluxDB", "url", cfg.InfluxDBURL, "bucket", cfg.InfluxDBBucket)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	weatherClient := weather.NewClient(cfg)
	ingestion := service.NewIngestionService(store, weatherClient, m, logger)
	queries := service.NewQueryService(store)
	readings := controller.NewReadingsController(ingestion, queries, logger)

	router := routes.SetupRouter(readings, reg, cfg.StaticDir, logger)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	handler := c.Handler(router)

	var bridge *mqttingest.Bridge
	if cfg.MQTTBroker != "" {
		bridge = mqttingest.NewBridge(cfg, func(ctx context.Context, payload models.ReadingPayload) error {
			_, _, err := ingestion.Ingest(ctx, payload)
			return err
		}, logger)

		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = bridge.Connect(connectCtx)
		cancel()
		if err != nil {
			logger.Warn("mqtt connection failed, continuing HTTP-only", "error", err)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	logger.Info("shutting down")
	if bridge != nil {
		bridge.Disconnect()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
