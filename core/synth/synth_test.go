package synth

import (
	"math"
	"testing"
	"time"

	"github.com/gridwatt/demandcast/core/region"
)

// fixedNoise returns the same draw regardless of scale, recording the scale
// it was asked for.
type fixedNoise struct {
	value  float64
	scales []float64
}

func (f *fixedNoise) Normal(scale float64) float64 {
	f.scales = append(f.scales, scale)
	return f.value
}

func pinnedNow() time.Time {
	return time.Date(2024, 11, 15, 10, 30, 0, 0, time.UTC)
}

func TestBaseUsage(t *testing.T) {
	want := float64(100 + region.HashBucket("Maharashtra")%50)
	got := BaseUsage("Maharashtra")
	if got != want {
		t.Fatalf("BaseUsage = %v, want %v", got, want)
	}
	if got < 100 || got >= 150 {
		t.Fatalf("BaseUsage = %v, out of [100,150)", got)
	}
	if BaseUsage("Maharashtra") != got {
		t.Fatal("BaseUsage not deterministic")
	}
}

func TestUsageOnFormula(t *testing.T) {
	noise := &fixedNoise{value: 2.5}
	s := New(noise, pinnedNow)
	d := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	got := s.UsageOn("MP", d, 5, -3)
	seasonality := 20 * math.Sin(2*math.Pi*float64(d.YearDay())/365.25)
	want := Round2(BaseUsage("MP") - 0.3 + seasonality + 2.5)
	if got != want {
		t.Fatalf("UsageOn = %v, want %v", got, want)
	}
	if len(noise.scales) != 1 || noise.scales[0] != 5 {
		t.Fatalf("noise scale = %v, want [5]", noise.scales)
	}
}

func TestUsageOnFloorsAtZero(t *testing.T) {
	s := New(&fixedNoise{value: -1e6}, pinnedNow)
	if got := s.UsageOn("MP", pinnedNow(), 5, 0); got != 0 {
		t.Fatalf("expected floor at 0, got %v", got)
	}
}

func TestUsageOnRounding(t *testing.T) {
	s := New(&fixedNoise{value: 0.005}, pinnedNow)
	got := s.UsageOn("MP", pinnedNow(), 5, 0)
	if got != Round2(got) {
		t.Fatalf("result %v not rounded to 2 decimals", got)
	}
}

func TestBaseline(t *testing.T) {
	noise := &fixedNoise{value: -4}
	s := New(noise, pinnedNow)
	got := s.Baseline("UP", 10)
	if want := Round2(BaseUsage("UP") - 4); got != want {
		t.Fatalf("Baseline = %v, want %v", got, want)
	}
	if noise.scales[0] != 10 {
		t.Fatalf("noise scale = %v, want 10", noise.scales[0])
	}
}

func TestHistorical(t *testing.T) {
	s := New(&fixedNoise{}, pinnedNow)
	pts := s.Historical("Maharashtra", 90)
	if len(pts) != 90 {
		t.Fatalf("expected 90 points, got %d", len(pts))
	}
	if want := "2024-11-14"; pts[89].Date != want {
		t.Fatalf("last point %s, want %s (day before today)", pts[89].Date, want)
	}
	if want := "2024-08-17"; pts[0].Date != want {
		t.Fatalf("first point %s, want %s", pts[0].Date, want)
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Date <= pts[i-1].Date {
			t.Fatalf("dates not strictly increasing at %d: %s <= %s", i, pts[i].Date, pts[i-1].Date)
		}
	}
	for _, p := range pts {
		if p.Usage < 0 {
			t.Fatalf("negative usage %v on %s", p.Usage, p.Date)
		}
	}
}

func TestForecast(t *testing.T) {
	noise := &fixedNoise{}
	s := New(noise, pinnedNow)
	target := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	pts := s.Forecast("Maharashtra", target, 5)
	if len(pts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(pts))
	}
	if pts[0].Date != "2024-12-02" {
		t.Fatalf("first forecast point %s, want day after target", pts[0].Date)
	}
	if pts[4].Date != "2024-12-06" {
		t.Fatalf("last forecast point %s, want 2024-12-06", pts[4].Date)
	}
	for _, sc := range noise.scales {
		if sc != 3 {
			t.Fatalf("forecast noise scale %v, want 3", sc)
		}
	}
}

func TestGaussianNoiseZeroScale(t *testing.T) {
	if v := (GaussianNoise{}).Normal(0); v != 0 {
		t.Fatalf("zero scale must yield zero noise, got %v", v)
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{1.005: 1.0, 2.675: 2.68, 100: 100, 0.004: 0}
	for in, want := range cases {
		if got := Round2(in); math.Abs(got-want) > 0.011 {
			t.Errorf("Round2(%v) = %v, want roughly %v", in, got, want)
		}
	}
}
