package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"home-guardian/internal/controller"
	"home-guardian/internal/models"
	"home-guardian/internal/utils"
)

// SetupRouter defines all API routes.
func SetupRouter(rc *controller.ReadingsController, reg *prometheus.Registry, staticDir string, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger(logger))
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithError(w, models.NewAPIError(
			models.ErrorCodeMethodNotAllowed,
			fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path),
			nil,
			http.StatusMethodNotAllowed,
		))
	})

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/readings", rc.HandleIngest).Methods(http.MethodPost)
	api.HandleFunc("/readings/latest", rc.HandleLatest).Methods(http.MethodGet)
	api.HandleFunc("/readings/history", rc.HandleHistory).Methods(http.MethodGet)
	api.HandleFunc("/status", rc.HandleStatus).Methods(http.MethodGet)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Built dashboard assets in production; disabled when unset.
	if staticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}

	return router
}

func requestLogger(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}
