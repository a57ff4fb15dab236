package models

import "time"

// WeatherSnapshot is the outdoor conditions captured when a reading was
// ingested. It is a one-shot snapshot, never refreshed afterwards.
type WeatherSnapshot struct {
	Temp       float64 `json:"temp"`
	Humidity   float64 `json:"humidity"`
	Conditions string  `json:"conditions"`
}

// Reading is one stored sensor sample from all channels. Readings are
// append-only: created once at ingestion time, never updated or deleted.
type Reading struct {
	ID        string    `json:"id,omitempty"`
	DeviceID  string    `json:"device_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	Temp1     float64 `json:"temp1"`
	Temp2     float64 `json:"temp2"`
	Temp3     float64 `json:"temp3"`
	Humidity1 float64 `json:"humidity1"`
	Humidity2 float64 `json:"humidity2"`
	Humidity3 float64 `json:"humidity3"`

	Smoke1 float64 `json:"smoke1"`
	Smoke2 float64 `json:"smoke2"`
	Lpg1   float64 `json:"lpg1"`
	Lpg2   float64 `json:"lpg2"`
	Co1    float64 `json:"co1"`
	Co2    float64 `json:"co2"`

	// Dust is the PM2.5 concentration in µg/m³.
	Dust float64 `json:"dust"`

	Weather *WeatherSnapshot `json:"weather,omitempty"`
}

// AvgTemp returns the average of the three redundant temperature channels.
func (r Reading) AvgTemp() float64 {
	return (r.Temp1 + r.Temp2 + r.Temp3) / 3
}

// ReadingPayload is the raw sample a device submits. The timestamp is
// accepted in the schema but the server assigns its own at ingestion time
// (devices cannot backdate readings; see DESIGN.md).
type ReadingPayload struct {
	DeviceID  string    `json:"device_id,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`

	Temp1     float64 `json:"temp1"`
	Temp2     float64 `json:"temp2"`
	Temp3     float64 `json:"temp3"`
	Humidity1 float64 `json:"humidity1"`
	Humidity2 float64 `json:"humidity2"`
	Humidity3 float64 `json:"humidity3"`

	Smoke1 float64 `json:"smoke1"`
	Smoke2 float64 `json:"smoke2"`
	Lpg1   float64 `json:"lpg1"`
	Lpg2   float64 `json:"lpg2"`
	Co1    float64 `json:"co1"`
	Co2    float64 `json:"co2"`

	Dust float64 `json:"dust"`
}
