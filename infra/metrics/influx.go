package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/gridwatt/demandcast/core/metrics"
	"github.com/gridwatt/demandcast/infra/logger"
)

// InfluxSink writes prediction events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails, so a missing backend never blocks
// forecasts.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPrediction writes the event as a single measurement point.
func (s *InfluxSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("forecast_prediction").
		AddTag("region", ev.Region).
		AddTag("model_type", ev.ModelType).
		AddTag("model_loaded", strconv.FormatBool(ev.ModelLoaded)).
		AddTag("request_id", ev.RequestID).
		AddField("predicted_usage", ev.PredictedUsage).
		AddField("duration_ms", float64(ev.Duration.Milliseconds())).
		AddField("failed", ev.Err != "").
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
