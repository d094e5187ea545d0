// Package artifact resolves, loads and caches serialized model artifacts.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/gridwatt/demandcast/core/model"
)

var (
	// ErrNotFound means the resolved artifact path does not exist in the store.
	ErrNotFound = errors.New("model artifact not found")
	// ErrLoad means the artifact exists but could not be deserialized.
	ErrLoad = errors.New("model artifact load failed")
)

// Locate derives the artifact path for a canonical region code and family.
// Sequence models use the .h5 suffix; every other family uses its lowercased
// name with the generic .joblib suffix. No existence check happens here.
func Locate(dir, code string, family model.ModelFamily) string {
	if family.IsSequence() {
		return filepath.Join(dir, code+"_lstm_model.h5")
	}
	name := fmt.Sprintf("%s_%s_model.joblib", code, strings.ToLower(family.String()))
	return filepath.Join(dir, name)
}

// Model is a loaded artifact usable for inference.
type Model interface {
	Predict(features []float64) (float64, error)
}

// LinearModel is the JSON artifact dump produced by the training pipeline
// for classical families: a weight vector plus intercept.
type LinearModel struct {
	Format    string    `json:"format"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// Predict computes the dot product of the weights with the feature vector.
// The vector length must match what the model was trained against.
func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(m.Weights) != len(features) {
		return 0, fmt.Errorf("feature shape mismatch: model expects %d values, got %d",
			len(m.Weights), len(features))
	}
	return floats.Dot(m.Weights, features) + m.Intercept, nil
}

// Placeholder stands in for a sequence-model artifact that is present in the
// store but not deserialized in this process. It is "present but not
// inferable": callers must route prediction to the fallback strategy.
type Placeholder struct {
	Region string
}

func (p Placeholder) Predict([]float64) (float64, error) {
	return 0, fmt.Errorf("sequence model for %s cannot run inference", p.Region)
}

func decodeLinear(raw []byte) (*LinearModel, error) {
	var m LinearModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if len(m.Weights) == 0 {
		return nil, errors.New("artifact carries no weights")
	}
	return &m, nil
}
