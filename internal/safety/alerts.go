package safety

import (
	"math"

	"home-guardian/internal/models"
)

// An alertRule inspects one reading and returns an alert, or nil when the
// condition does not hold. Rules run in order; add new gas/dust rules here.
type alertRule func(models.Reading) *models.Alert

var alertRules = []alertRule{
	temperatureAlert,
	smokeAlert,
}

// EvaluateAlerts runs all alert rules against a reading, preserving rule
// order. The result may be empty.
func EvaluateAlerts(r models.Reading) []models.Alert {
	var alerts []models.Alert
	for _, rule := range alertRules {
		if a := rule(r); a != nil {
			alerts = append(alerts, *a)
		}
	}
	return alerts
}

// temperatureAlert emits at most one alert: high above the danger
// threshold, medium above the warning threshold.
func temperatureAlert(r models.Reading) *models.Alert {
	avg := r.AvgTemp()
	switch {
	case avg > TempDangerThreshold:
		return &models.Alert{
			Type:     "temperature",
			Severity: models.SeverityHigh,
			Message:  "Extreme temperature detected!",
		}
	case avg > TempWarnThreshold:
		return &models.Alert{
			Type:     "temperature",
			Severity: models.SeverityMedium,
			Message:  "High temperature detected",
		}
	}
	return nil
}

func smokeAlert(r models.Reading) *models.Alert {
	if math.Max(r.Smoke1, r.Smoke2) > SmokeThreshold {
		return &models.Alert{
			Type:     "smoke",
			Severity: models.SeverityHigh,
			Message:  "Smoke detected!",
		}
	}
	return nil
}
