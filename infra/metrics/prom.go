package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/gridwatt/demandcast/core/metrics"
)

// PromSink records prediction events in Prometheus metrics.
type PromSink struct {
	predictions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	usage       *prometheus.GaugeVec
}

// NewPromSink registers forecast metrics on the default Prometheus
// registerer. The Prometheus server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global one.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_predictions_total",
		Help: "Total number of served forecast predictions",
	}, []string{"region", "model_type", "model_loaded"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_failures_total",
		Help: "Total number of failed forecast requests",
	}, []string{"model_type"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forecast_duration_seconds",
		Help:    "Time spent serving one forecast request",
		Buckets: prometheus.DefBuckets,
	}, []string{"model_type"})
	usage := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "forecast_predicted_usage",
		Help: "Last predicted usage per region and model family",
	}, []string{"region", "model_type"})

	if err := reg.Register(predictions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			predictions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(failures); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			failures = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(usage); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			usage = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{predictions: predictions, failures: failures, latency: latency, usage: usage}, nil
}

// RecordPrediction updates the counters, gauge and latency histogram.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	if ev.Err != "" {
		s.failures.WithLabelValues(ev.ModelType).Inc()
	} else {
		s.predictions.WithLabelValues(ev.Region, ev.ModelType, strconv.FormatBool(ev.ModelLoaded)).Inc()
		s.usage.WithLabelValues(ev.Region, ev.ModelType).Set(ev.PredictedUsage)
	}
	s.latency.WithLabelValues(ev.ModelType).Observe(ev.Duration.Seconds())
	return nil
}
