package model

import (
	"errors"
	"fmt"
)

// ErrUnsupportedModel marks a model type outside the four recognized
// families.
var ErrUnsupportedModel = errors.New("unsupported model type")

// ModelFamily identifies one of the supported forecasting approaches.
type ModelFamily int

const (
	FamilyARIMA ModelFamily = iota
	FamilyXGBoost
	FamilyLSTM
	FamilyProphet
)

// Families lists every recognized family in dispatch order.
func Families() []ModelFamily {
	return []ModelFamily{FamilyARIMA, FamilyXGBoost, FamilyLSTM, FamilyProphet}
}

// String returns the canonical wire name of the family.
func (f ModelFamily) String() string {
	switch f {
	case FamilyARIMA:
		return "ARIMA"
	case FamilyXGBoost:
		return "XGBoost"
	case FamilyLSTM:
		return "LSTM"
	case FamilyProphet:
		return "Prophet"
	default:
		return "unknown"
	}
}

// ParseModelFamily maps a wire name to its ModelFamily. Comparison is exact:
// an unrecognized name is a request error, never a fallback case.
func ParseModelFamily(s string) (ModelFamily, error) {
	for _, f := range Families() {
		if s == f.String() {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedModel, s)
}

// IsSequence reports whether the family uses the sequence-model artifact
// format, which is never deserialized in this process.
func (f ModelFamily) IsSequence() bool {
	return f == FamilyLSTM
}
