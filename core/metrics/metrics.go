// Package metrics defines the sink contract for forecast observability.
package metrics

import "time"

// PredictionEvent captures one served forecast.
type PredictionEvent struct {
	RequestID      string
	Region         string
	ModelType      string
	PredictedUsage float64
	// ModelLoaded mirrors the result flag: false means the synthetic
	// fallback produced the point prediction.
	ModelLoaded bool
	Duration    time.Duration
	Time        time.Time
	// Err holds the surfaced error message for failed requests, empty on
	// success.
	Err string
}

// Sink records prediction events in a metrics backend.
type Sink interface {
	RecordPrediction(PredictionEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionEvent) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":9100"
	}
}
