package models

import "time"

// Alert severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Alert is a derived warning computed from a single reading. Alerts are
// transient: recomputed on every status query, never persisted.
type Alert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Scores holds the per-category safety scores, each in [0,100].
type Scores struct {
	Temperature int `json:"temperature"`
	Gas         int `json:"gas"`
	AirQuality  int `json:"airQuality"`
	Overall     int `json:"overall"`
}

// Status labels derived from the overall score.
const (
	StatusSafe    = "Safe"
	StatusWarning = "Warning"
	StatusDanger  = "Danger"
)

// StatusSnapshot is the derived safety view of the latest reading.
type StatusSnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Scores    Scores    `json:"scores"`
	Alerts    []Alert   `json:"alerts"`
	Status    string    `json:"status"`
}
