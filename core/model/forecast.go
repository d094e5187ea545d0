package model

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on every boundary.
const DateLayout = "2006-01-02"

// ErrInvalidDate marks a target date that does not parse as YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid prediction date")

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// PredictionRequest is a single forecast request as received on the wire.
type PredictionRequest struct {
	Region     string  `json:"state"`
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lon"`
	TargetDate string  `json:"prediction_date"`
	ModelType  string  `json:"model_type"`
}

// SeriesPoint is one day of usage in a historical or forecast series.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Usage float64 `json:"usage"`
}

// PredictionResult is the full response payload for one request.
// HistoricalData is ordered oldest first and ends the day before today;
// ForecastData starts the day after the target date.
type PredictionResult struct {
	PredictedUsage float64       `json:"predicted_usage"`
	ModelType      string        `json:"model_type"`
	HistoricalData []SeriesPoint `json:"historical_data"`
	ForecastData   []SeriesPoint `json:"forecast_data"`
	FeaturesUsed   []float64     `json:"features_used"`
	// ModelLoaded reports whether a deserialized artifact produced the point
	// prediction. False means the seasonal synthesizer was used.
	ModelLoaded bool `json:"model_loaded"`
}
