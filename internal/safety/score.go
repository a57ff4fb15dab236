// Package safety computes safety scores and alerts from a single reading.
// Everything here is pure: no I/O, no clocks, deterministic output.
package safety

import (
	"math"

	"home-guardian/internal/models"
)

// Gas thresholds: the sensor level at which a gas sub-score reaches zero.
const (
	SmokeThreshold = 500.0
	LpgThreshold   = 400.0
	CoThreshold    = 300.0
)

// Temperature alert thresholds, shared with the dashboard's chart markers.
const (
	TempWarnThreshold   = 30.0
	TempDangerThreshold = 40.0
)

// TemperatureScore scores the average of the three temperature channels.
// 20-25°C is ideal (100), with linear ramps down to 50 at 10°C and 35°C
// and a hard 0 outside 0-50°C.
func TemperatureScore(r models.Reading) int {
	avg := r.AvgTemp()

	var score float64
	switch {
	case avg < 0 || avg > 50:
		score = 0
	case avg < 10:
		score = 50
	case avg > 35:
		score = 50
	case avg >= 20 && avg <= 25:
		score = 100
	case avg < 20:
		score = 50 + (avg-10)*5
	default:
		score = 100 - (avg-25)*3.3
	}
	return clamp(round(score))
}

// GasScore scores the worse of each redundant gas sensor pair against its
// threshold and combines the sub-scores weighted smoke 0.3, LPG 0.3, CO 0.4.
func GasScore(r models.Reading) int {
	smokeLevel := math.Max(r.Smoke1, r.Smoke2)
	lpgLevel := math.Max(r.Lpg1, r.Lpg2)
	coLevel := math.Max(r.Co1, r.Co2)

	smokeScore := math.Max(0, 100-smokeLevel/SmokeThreshold*100)
	lpgScore := math.Max(0, 100-lpgLevel/LpgThreshold*100)
	coScore := math.Max(0, 100-coLevel/CoThreshold*100)

	return clamp(round(smokeScore*0.3 + lpgScore*0.3 + coScore*0.4))
}

// AirQualityScore maps the PM2.5 dust concentration onto EPA-style bands.
func AirQualityScore(r models.Reading) int {
	pm25 := r.Dust
	switch {
	case pm25 <= 12:
		return 100
	case pm25 <= 35.4:
		return 75
	case pm25 <= 55.4:
		return 50
	case pm25 <= 150.4:
		return 25
	default:
		return 0
	}
}

// Score computes all category scores plus the overall score for a reading.
// Overall is the unweighted mean of the three categories.
func Score(r models.Reading) models.Scores {
	temp := TemperatureScore(r)
	gas := GasScore(r)
	air := AirQualityScore(r)
	return models.Scores{
		Temperature: temp,
		Gas:         gas,
		AirQuality:  air,
		Overall:     clamp(round(float64(temp+gas+air) / 3)),
	}
}

// StatusLabel maps an overall score to its status label.
func StatusLabel(overall int) string {
	switch {
	case overall > 80:
		return models.StatusSafe
	case overall > 50:
		return models.StatusWarning
	default:
		return models.StatusDanger
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

// clamp keeps a score inside [0,100]. The formulas only leave the band on
// negative sensor input, which the device never sends but the API accepts.
func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
