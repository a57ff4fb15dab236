package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/query"

	"home-guardian/internal/models"
)

// ErrNoReadings is returned when the store holds no data yet.
var ErrNoReadings = errors.New("no readings available")

const measurement = "readings"

// ReadingStore persists enriched readings and serves them back by recency
// or time range. Readings are append-only.
type ReadingStore interface {
	Append(ctx context.Context, r models.Reading) error
	Latest(ctx context.Context) (models.Reading, error)
	History(ctx context.Context, hours int) ([]models.Reading, error)
}

// InfluxReadingStore is a ReadingStore backed by InfluxDB.
type InfluxReadingStore struct {
	client influxdb2.Client
	org    string
	bucket string
	logger *slog.Logger
}

// NewInfluxReadingStore connects to InfluxDB, verifies the connection
// health, and ensures the configured bucket exists.
func NewInfluxReadingStore(ctx context.Context, url, token, org, bucket string, logger *slog.Logger) (*InfluxReadingStore, error) {
	client := influxdb2.NewClient(url, token)

	health, err := client.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to InfluxDB: %w", err)
	}
	if health.Status != "pass" {
		msg := ""
		if health.Message != nil {
			msg = *health.Message
		}
		return nil, fmt.Errorf("InfluxDB health check failed: %s", msg)
	}

	s := &InfluxReadingStore{
		client: client,
		org:    org,
		bucket: bucket,
		logger: logger,
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the underlying InfluxDB client.
func (s *InfluxReadingStore) Close() {
	s.client.Close()
}

func (s *InfluxReadingStore) ensureBucket(ctx context.Context) error {
	bucketsAPI := s.client.BucketsAPI()
	if _, err := bucketsAPI.FindBucketByName(ctx, s.bucket); err == nil {
		return nil
	}

	org, err := s.client.OrganizationsAPI().FindOrganizationByName(ctx, s.org)
	if err != nil {
		return fmt.Errorf("finding organization %q: %w", s.org, err)
	}
	if _, err := bucketsAPI.CreateBucketWithName(ctx, org, s.bucket); err != nil {
		return fmt.Errorf("creating bucket %q: %w", s.bucket, err)
	}
	s.logger.Info("created bucket", "bucket", s.bucket)
	return nil
}

// Append writes one reading as a single point. The reading id and device
// id become tags; every channel plus the flattened weather snapshot become
// fields.
func (s *InfluxReadingStore) Append(ctx context.Context, r models.Reading) error {
	fields := map[string]interface{}{
		"temp1":     r.Temp1,
		"temp2":     r.Temp2,
		"temp3":     r.Temp3,
		"humidity1": r.Humidity1,
		"humidity2": r.Humidity2,
		"humidity3": r.Humidity3,
		"smoke1":    r.Smoke1,
		"smoke2":    r.Smoke2,
		"lpg1":      r.Lpg1,
		"lpg2":      r.Lpg2,
		"co1":       r.Co1,
		"co2":       r.Co2,
		"dust":      r.Dust,
	}
	if r.Weather != nil {
		fields["weather_temp"] = r.Weather.Temp
		fields["weather_humidity"] = r.Weather.Humidity
		fields["weather_conditions"] = r.Weather.Conditions
	}

	tags := map[string]string{"reading_id": r.ID}
	if r.DeviceID != "" {
		tags["device_id"] = r.DeviceID
	}

	p := influxdb2.NewPoint(measurement, tags, fields, r.Timestamp)
	writeAPI := s.client.WriteAPIBlocking(s.org, s.bucket)
	if err := writeAPI.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("writing reading to InfluxDB: %w", err)
	}
	return nil
}

// Latest returns the most recently timestamped reading.
func (s *InfluxReadingStore) Latest(ctx context.Context) (models.Reading, error) {
	readings, err := s.queryReadings(ctx, latestFlux(s.bucket))
	if err != nil {
		return models.Reading{}, err
	}
	if len(readings) == 0 {
		return models.Reading{}, ErrNoReadings
	}
	return readings[len(readings)-1], nil
}

// History returns all readings from the last `hours` hours, oldest first.
func (s *InfluxReadingStore) History(ctx context.Context, hours int) ([]models.Reading, error) {
	return s.queryReadings(ctx, historyFlux(s.bucket, hours))
}

func (s *InfluxReadingStore) queryReadings(ctx context.Context, flux string) ([]models.Reading, error) {
	queryAPI := s.client.QueryAPI(s.org)
	result, err := queryAPI.Query(ctx, flux)
	if err != nil {
		return nil, fmt.Errorf("querying InfluxDB: %w", err)
	}

	readings := make([]models.Reading, 0)
	for result.Next() {
		readings = append(readings, readingFromRecord(result.Record()))
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("iterating query result: %w", result.Err())
	}
	// Rows split across tables are emitted in group-key order, not time
	// order, so reimpose it here.
	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})
	return readings, nil
}

// latestFlux selects the single most recent pivoted reading row. The
// reading_id tag puts every point in its own series, so the per-series
// tables must be merged with group() before sort and tail, which operate
// per table.
func latestFlux(bucket string) string {
	return fmt.Sprintf(`
		from(bucket: "%s")
		|> range(start: 0)
		|> filter(fn: (r) => r["_measurement"] == "%s")
		|> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
		|> group()
		|> sort(columns: ["_time"])
		|> tail(n: 1)
	`, bucket, measurement)
}

// historyFlux selects all pivoted reading rows from the last `hours`
// hours, oldest first.
func historyFlux(bucket string, hours int) string {
	return fmt.Sprintf(`
		from(bucket: "%s")
		|> range(start: -%dh)
		|> filter(fn: (r) => r["_measurement"] == "%s")
		|> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
		|> group()
		|> sort(columns: ["_time"])
	`, bucket, hours, measurement)
}

// readingFromRecord reconstructs a Reading from one pivoted Flux row.
func readingFromRecord(record *query.FluxRecord) models.Reading {
	r := models.Reading{Timestamp: record.Time().UTC()}

	if id, ok := record.ValueByKey("reading_id").(string); ok {
		r.ID = id
	}
	if id, ok := record.ValueByKey("device_id").(string); ok {
		r.DeviceID = id
	}

	r.Temp1 = floatField(record, "temp1")
	r.Temp2 = floatField(record, "temp2")
	r.Temp3 = floatField(record, "temp3")
	r.Humidity1 = floatField(record, "humidity1")
	r.Humidity2 = floatField(record, "humidity2")
	r.Humidity3 = floatField(record, "humidity3")
	r.Smoke1 = floatField(record, "smoke1")
	r.Smoke2 = floatField(record, "smoke2")
	r.Lpg1 = floatField(record, "lpg1")
	r.Lpg2 = floatField(record, "lpg2")
	r.Co1 = floatField(record, "co1")
	r.Co2 = floatField(record, "co2")
	r.Dust = floatField(record, "dust")

	// Weather fields only exist on readings whose enrichment succeeded.
	if conditions, ok := record.ValueByKey("weather_conditions").(string); ok {
		r.Weather = &models.WeatherSnapshot{
			Temp:       floatField(record, "weather_temp"),
			Humidity:   floatField(record, "weather_humidity"),
			Conditions: conditions,
		}
	}
	return r
}

func floatField(record *query.FluxRecord, key string) float64 {
	switch v := record.ValueByKey(key).(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return 0
	}
}

var _ ReadingStore = (*InfluxReadingStore)(nil)
