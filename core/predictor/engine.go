package predictor

import (
	"fmt"
	"math"
	"time"

	"github.com/gridwatt/demandcast/core/artifact"
	"github.com/gridwatt/demandcast/core/feature"
	"github.com/gridwatt/demandcast/core/model"
	"github.com/gridwatt/demandcast/core/synth"
	"github.com/gridwatt/demandcast/infra/logger"
)

const historicalDays = 90

// Engine serves forecast requests. It owns no mutable state itself; the
// artifact cache carries the only state shared between requests.
type Engine struct {
	cache *artifact.Cache
	synth *synth.Synthesizer
	log   logger.Logger
	now   func() time.Time
}

// New builds an Engine. A nil clock defaults to time.Now; a nil logger is
// replaced by a no-op one.
func New(cache *artifact.Cache, s *synth.Synthesizer, log logger.Logger, now func() time.Time) *Engine {
	if log == nil {
		log = logger.NopLogger{}
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{cache: cache, synth: s, log: log, now: now}
}

// Predict resolves the model, builds features, runs the family strategy and
// assembles the result. Request errors (unknown family, bad date) are
// returned as-is; everything below is re-raised as a prediction failure
// carrying the original message.
func (e *Engine) Predict(req model.PredictionRequest) (*model.PredictionResult, error) {
	family, err := model.ParseModelFamily(req.ModelType)
	if err != nil {
		return nil, err
	}
	target, err := model.ParseDate(req.TargetDate)
	if err != nil {
		return nil, err
	}

	loaded, err := e.cache.Get(req.Region, family)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	features := feature.Build(req.Region, req.Latitude, req.Longitude, target)

	strat := strategies[family]
	var usage float64
	modelUsed := false
	if strat.usesArtifact {
		v, inferErr := loaded.Predict(features)
		if inferErr == nil {
			usage = synth.Round2(math.Max(0, v))
			modelUsed = true
		} else {
			// Inference faults are recovered locally, never surfaced.
			e.log.Warnf("%s inference for %s failed, using baseline: %v", family, req.Region, inferErr)
			usage = e.synth.Baseline(req.Region, strat.noiseScale)
		}
	} else {
		usage = e.synth.UsageOn(req.Region, target, strat.noiseScale, 0)
	}

	daysAhead := int(target.Sub(e.now()).Hours() / 24)
	if daysAhead < 1 {
		daysAhead = 1
	}

	return &model.PredictionResult{
		PredictedUsage: usage,
		ModelType:      family.String(),
		HistoricalData: e.synth.Historical(req.Region, historicalDays),
		ForecastData:   e.synth.Forecast(req.Region, target, daysAhead),
		FeaturesUsed:   features,
		ModelLoaded:    modelUsed,
	}, nil
}

// AvailableModels reports which families have an artifact in the store for
// the region. Nothing is loaded or cached.
func (e *Engine) AvailableModels(label string) []model.ModelFamily {
	return e.cache.Available(label)
}
