package metrics

import (
	"errors"

	coremetrics "github.com/gridwatt/demandcast/core/metrics"
)

// MultiSink fans events out to several sinks.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink combines the given sinks into one.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordPrediction forwards the event to every sink, collecting errors.
func (m *MultiSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordPrediction(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
