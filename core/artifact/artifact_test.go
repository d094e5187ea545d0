package artifact

import (
	"path/filepath"
	"testing"

	"github.com/gridwatt/demandcast/core/model"
	"github.com/gridwatt/demandcast/core/region"
)

func TestLocate(t *testing.T) {
	cases := []struct {
		code   string
		family model.ModelFamily
		want   string
	}{
		{"MP", model.FamilyARIMA, "MP_arima_model.joblib"},
		{"MP", model.FamilyXGBoost, "MP_xgboost_model.joblib"},
		{"MP", model.FamilyProphet, "MP_prophet_model.joblib"},
		{"MP", model.FamilyLSTM, "MP_lstm_model.h5"},
		{"Maharashtra", model.FamilyXGBoost, "Maharashtra_xgboost_model.joblib"},
	}
	for _, c := range cases {
		if got := Locate("models", c.code, c.family); got != filepath.Join("models", c.want) {
			t.Errorf("Locate(%q, %s) = %q, want %q", c.code, c.family, got, c.want)
		}
	}
}

func TestLocateNormalizedLabelMatchesCode(t *testing.T) {
	long := Locate("models", region.Normalize("Madhya Pradesh (MP)"), model.FamilyXGBoost)
	short := Locate("models", region.Normalize("MP"), model.FamilyXGBoost)
	if long != short {
		t.Fatalf("normalized label path %q != direct code path %q", long, short)
	}
}

func TestLinearModelPredict(t *testing.T) {
	m := &LinearModel{Weights: []float64{1, 2, 3}, Intercept: 0.5}
	got, err := m.Predict([]float64{1, 1, 1})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got != 6.5 {
		t.Fatalf("predict = %v, want 6.5", got)
	}
}

func TestLinearModelPredictShapeMismatch(t *testing.T) {
	m := &LinearModel{Weights: []float64{1, 2}}
	if _, err := m.Predict([]float64{1, 2, 3}); err == nil {
		t.Fatal("expected shape mismatch error")
	}
}

func TestPlaceholderNeverInfers(t *testing.T) {
	p := Placeholder{Region: "MP"}
	if _, err := p.Predict(make([]float64, 15)); err == nil {
		t.Fatal("placeholder must refuse inference")
	}
}
