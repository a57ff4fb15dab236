package safety

import (
	"testing"

	"home-guardian/internal/models"
)

func tempReading(t1, t2, t3 float64) models.Reading {
	return models.Reading{Temp1: t1, Temp2: t2, Temp3: t3}
}

func TestTemperatureScore(t *testing.T) {
	tests := []struct {
		name    string
		reading models.Reading
		want    int
	}{
		{"ideal band", tempReading(22.5, 22.5, 22.5), 100},
		{"lower boundary of ideal band", tempReading(20, 20, 20), 100},
		{"upper boundary of ideal band", tempReading(25, 25, 25), 100},
		{"exactly 10 matches cold plateau", tempReading(10, 10, 10), 50},
		{"exactly 35 matches ramp end", tempReading(35, 35, 35), 67},
		{"just above 35 drops to plateau", tempReading(35.1, 35.1, 35.1), 50},
		{"cold plateau", tempReading(5, 5, 5), 50},
		{"mid cold ramp", tempReading(15, 15, 15), 75},
		{"mid warm ramp", tempReading(30, 30, 30), 84},
		{"below freezing", tempReading(-1, -1, -1), 0},
		{"above 50", tempReading(51, 51, 51), 0},
		{"channels averaged", tempReading(20, 22.5, 25), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TemperatureScore(tt.reading); got != tt.want {
				t.Errorf("TemperatureScore(avg=%.2f) = %d; want %d", tt.reading.AvgTemp(), got, tt.want)
			}
		})
	}
}

func TestTemperatureScoreRampContinuity(t *testing.T) {
	// The cold ramp must meet the plateau at 10 and the ideal band at 20.
	if got := TemperatureScore(tempReading(10, 10, 10)); got != 50 {
		t.Errorf("score at 10 = %d; want 50", got)
	}
	if got := TemperatureScore(tempReading(19.999, 19.999, 19.999)); got != 100 {
		t.Errorf("score just below 20 = %d; want 100", got)
	}
}

func TestGasScore(t *testing.T) {
	tests := []struct {
		name    string
		reading models.Reading
		want    int
	}{
		{"clean air", models.Reading{}, 100},
		{
			"all gases at threshold",
			models.Reading{Smoke1: 500, Smoke2: 500, Lpg1: 400, Lpg2: 400, Co1: 300, Co2: 300},
			0,
		},
		{
			"worse of each pair is used",
			models.Reading{Smoke1: 0, Smoke2: 500, Lpg1: 400, Lpg2: 0, Co1: 0, Co2: 300},
			0,
		},
		{
			"half of every threshold",
			models.Reading{Smoke1: 250, Smoke2: 250, Lpg1: 200, Lpg2: 200, Co1: 150, Co2: 150},
			50,
		},
		{
			"beyond threshold clamps the sub-score at zero",
			models.Reading{Smoke1: 5000, Smoke2: 5000},
			70,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GasScore(tt.reading); got != tt.want {
				t.Errorf("GasScore() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGasScoreNegativeInputClamped(t *testing.T) {
	// Negative sensor values would push a sub-score past 100; the final
	// score must stay inside the band.
	r := models.Reading{Smoke1: -10000, Smoke2: -10000, Lpg1: -10000, Lpg2: -10000, Co1: -10000, Co2: -10000}
	if got := GasScore(r); got != 100 {
		t.Errorf("GasScore(negative input) = %d; want 100", got)
	}
}

func TestAirQualityScore(t *testing.T) {
	tests := []struct {
		dust float64
		want int
	}{
		{0, 100},
		{12, 100},
		{12.1, 75},
		{35.4, 75},
		{55.4, 50},
		{150.4, 25},
		{150.5, 0},
	}
	for _, tt := range tests {
		if got := AirQualityScore(models.Reading{Dust: tt.dust}); got != tt.want {
			t.Errorf("AirQualityScore(dust=%.1f) = %d; want %d", tt.dust, got, tt.want)
		}
	}
}

func TestScoreOverall(t *testing.T) {
	// Perfect reading scores 100 across the board.
	r := tempReading(22.5, 22.5, 22.5)
	scores := Score(r)
	if scores.Overall != 100 {
		t.Errorf("Overall = %d; want 100", scores.Overall)
	}

	// Overall is the rounded mean of the categories: 100, 100, 75 -> 92.
	r.Dust = 20
	scores = Score(r)
	if scores.AirQuality != 75 {
		t.Errorf("AirQuality = %d; want 75", scores.AirQuality)
	}
	if scores.Overall != 92 {
		t.Errorf("Overall = %d; want 92", scores.Overall)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		overall int
		want    string
	}{
		{100, models.StatusSafe},
		{81, models.StatusSafe},
		{80, models.StatusWarning},
		{51, models.StatusWarning},
		{50, models.StatusDanger},
		{0, models.StatusDanger},
	}
	for _, tt := range tests {
		if got := StatusLabel(tt.overall); got != tt.want {
			t.Errorf("StatusLabel(%d) = %q; want %q", tt.overall, got, tt.want)
		}
	}
}
