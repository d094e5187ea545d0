package predictor

import "github.com/gridwatt/demandcast/core/model"

// strategy describes how one family produces its point prediction. Families
// that do not use the artifact share the synthetic path and differ only by
// noise scale; for artifact-backed families the scale applies to the
// degraded baseline used when inference fails.
type strategy struct {
	usesArtifact bool
	noiseScale   float64
}

var strategies = map[model.ModelFamily]strategy{
	model.FamilyARIMA:   {noiseScale: 5},
	model.FamilyXGBoost: {usesArtifact: true, noiseScale: 10},
	model.FamilyLSTM:    {noiseScale: 3},
	model.FamilyProphet: {noiseScale: 4},
}
