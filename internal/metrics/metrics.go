package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	ReadingsIngested      prometheus.Counter
	WeatherLookupFailures prometheus.Counter
	AlertsEmitted         prometheus.Counter
	IngestLatency         prometheus.Histogram
}

// New creates and registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReadingsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guardian_readings_ingested_total",
			Help: "Total readings successfully written to the store.",
		}),
		WeatherLookupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guardian_weather_lookup_failures_total",
			Help: "Readings ingested without weather enrichment.",
		}),
		AlertsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guardian_alerts_emitted_total",
			Help: "Alerts produced during ingestion.",
		}),
		IngestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "guardian_ingest_latency_seconds",
			Help:    "End-to-end latency of one ingestion, enrichment included.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
	reg.MustRegister(m.ReadingsIngested, m.WeatherLookupFailures, m.AlertsEmitted, m.IngestLatency)
	return m
}
