package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/gridwatt/demandcast/core/metrics"
)

func TestPromSinkRecordPrediction(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}

	ev := coremetrics.PredictionEvent{
		RequestID:      "req1",
		Region:         "MP",
		ModelType:      "ARIMA",
		PredictedUsage: 132.4,
		ModelLoaded:    false,
		Duration:       12 * time.Millisecond,
		Time:           time.Now(),
	}
	if err := sink.RecordPrediction(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP forecast_predictions_total Total number of served forecast predictions
# TYPE forecast_predictions_total counter
forecast_predictions_total{model_loaded="false",model_type="ARIMA",region="MP"} 1
`
	if err := testutil.CollectAndCompare(sink.predictions, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.latency); c == 0 {
		t.Error("latency not recorded")
	}
	if got := testutil.ToFloat64(sink.usage.WithLabelValues("MP", "ARIMA")); got != 132.4 {
		t.Errorf("usage gauge = %v, want 132.4", got)
	}
}

func TestPromSinkRecordFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	ev := coremetrics.PredictionEvent{ModelType: "XGBoost", Err: "model artifact not found"}
	if err := sink.RecordPrediction(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if got := testutil.ToFloat64(sink.failures.WithLabelValues("XGBoost")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
	if c := testutil.CollectAndCount(sink.predictions); c != 0 {
		t.Errorf("failed request must not count as a prediction, got %d series", c)
	}
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration must reuse collectors: %v", err)
	}
}
