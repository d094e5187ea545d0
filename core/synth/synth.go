// Package synth produces plausible usage values for a region and date. The
// same formula drives the fallback point prediction and the historical and
// forecast series, which keeps the three visually continuous.
package synth

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gridwatt/demandcast/core/model"
	"github.com/gridwatt/demandcast/core/region"
)

// NoiseSource draws a single sample from a zero-mean distribution with the
// given scale. Implementations need not be reproducible across calls.
type NoiseSource interface {
	Normal(scale float64) float64
}

// GaussianNoise draws from a normal distribution. A nil source uses the
// process-global generator.
type GaussianNoise struct {
	Src rand.Source
}

func (g GaussianNoise) Normal(scale float64) float64 {
	if scale == 0 {
		return 0
	}
	return distuv.Normal{Mu: 0, Sigma: scale, Src: g.Src}.Rand()
}

// Synthesizer evaluates the seasonal usage formula. Now is injectable so
// tests can pin "today".
type Synthesizer struct {
	noise NoiseSource
	now   func() time.Time
}

// New builds a Synthesizer. A nil noise source defaults to GaussianNoise on
// the global generator; a nil clock defaults to time.Now.
func New(noise NoiseSource, now func() time.Time) *Synthesizer {
	if noise == nil {
		noise = GaussianNoise{}
	}
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{noise: noise, now: now}
}

// BaseUsage is the region-specific usage floor: 100 plus the region hash
// bucket mod 50. Deterministic for a given label.
func BaseUsage(label string) float64 {
	return float64(100 + region.HashBucket(label)%50)
}

// Round2 rounds to two decimal places, the precision of every usage value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UsageOn evaluates base + trend + seasonality + noise for a region on a
// date. trendDays is the day offset driving the linear trend term: negative
// distance from today for historical points, positive days ahead for
// forecast points, zero for a direct point prediction. The result is floored
// at zero and rounded to two decimals.
func (s *Synthesizer) UsageOn(label string, date time.Time, noiseScale float64, trendDays int) float64 {
	seasonality := 20 * math.Sin(2*math.Pi*float64(date.YearDay())/365.25)
	trend := float64(trendDays) * 0.1
	u := BaseUsage(label) + trend + seasonality + s.noise.Normal(noiseScale)
	return Round2(math.Max(0, u))
}

// Baseline is the degraded prediction used when artifact inference fails:
// base usage plus noise, without trend or seasonality.
func (s *Synthesizer) Baseline(label string, noiseScale float64) float64 {
	u := BaseUsage(label) + s.noise.Normal(noiseScale)
	return Round2(math.Max(0, u))
}

// Historical generates days points ending the day before today, oldest
// first, with noise scale 5.
func (s *Synthesizer) Historical(label string, days int) []model.SeriesPoint {
	today := s.now()
	pts := make([]model.SeriesPoint, 0, days)
	for i := days; i > 0; i-- {
		d := today.AddDate(0, 0, -i)
		pts = append(pts, model.SeriesPoint{
			Date:  d.Format(model.DateLayout),
			Usage: s.UsageOn(label, d, 5, -i),
		})
	}
	return pts
}

// Forecast generates daysAhead points starting the day after target, with
// noise scale 3.
func (s *Synthesizer) Forecast(label string, target time.Time, daysAhead int) []model.SeriesPoint {
	pts := make([]model.SeriesPoint, 0, daysAhead)
	for i := 1; i <= daysAhead; i++ {
		d := target.AddDate(0, 0, i)
		pts = append(pts, model.SeriesPoint{
			Date:  d.Format(model.DateLayout),
			Usage: s.UsageOn(label, d, 3, i),
		})
	}
	return pts
}
