package scoring

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scaler holds per-feature affine normalization parameters fitted offline.
// A nil Scaler is the explicit unfitted state: Transform is the identity.
// Parameters are read-only after load.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// LoadScaler reads normalization parameters from a JSON artifact.
func LoadScaler(path string) (*Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scaler artifact: %w", err)
	}
	var s Scaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshaling scaler artifact: %w", err)
	}
	if len(s.Mean) != FeatureCount || len(s.Scale) != FeatureCount {
		return nil, fmt.Errorf("scaler artifact has %d/%d parameters, want %d", len(s.Mean), len(s.Scale), FeatureCount)
	}
	for i, sc := range s.Scale {
		if sc == 0 {
			return nil, fmt.Errorf("scaler artifact has zero scale for feature %q", FeatureNames[i])
		}
	}
	return &s, nil
}

// Fitted reports whether normalization parameters are loaded.
func (s *Scaler) Fitted() bool {
	return s != nil && len(s.Mean) == FeatureCount
}

// Transform applies (value - mean) / scale per feature, or the identity when
// unfitted. Safe to call on a nil receiver.
func (s *Scaler) Transform(v Vector) Vector {
	if !s.Fitted() {
		return v
	}
	var out Vector
	for i := range v {
		out[i] = (v[i] - s.Mean[i]) / s.Scale[i]
	}
	return out
}
