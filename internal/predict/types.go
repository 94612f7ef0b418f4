package predict

import (
	"bytes"
	"encoding/json"
	"fmt"

	"attrition-risk-eval/backend/internal/scoring"
)

// Result is the prediction payload returned by the model service. The stay
// and leave probabilities are not guaranteed to sum to 1 and must not be
// treated as complements.
type Result struct {
	Prediction      int         `json:"prediction"`
	PredictionLabel string      `json:"prediction_label"`
	Probability     Probability `json:"probability"`
	Confidence      float64     `json:"confidence"`
	Importances     Importances `json:"feature_importance"`
}

// Probability carries the per-class probabilities.
type Probability struct {
	Stay  float64 `json:"stay"`
	Leave float64 `json:"leave"`
}

// Importances preserves the document order of the feature_importance object.
// Ranking ties are broken by this order, so decoding into a Go map (which
// drops ordering) is not an option.
type Importances []scoring.FeatureWeight

// UnmarshalJSON decodes the JSON object one key at a time to keep its order.
// A null value decodes to nil.
func (im *Importances) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*im = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("feature_importance: expected object, got %v", tok)
	}

	var out Importances
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("feature_importance: unexpected key token %v", keyTok)
		}
		var weight float64
		if err := dec.Decode(&weight); err != nil {
			return fmt.Errorf("feature_importance %q: %w", key, err)
		}
		out = append(out, scoring.FeatureWeight{Name: key, Weight: weight})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*im = out
	return nil
}

// MarshalJSON re-emits the object in its preserved order.
func (im Importances) MarshalJSON() ([]byte, error) {
	if im == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range im {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Weight)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// HealthStatus reports model service liveness.
type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// FeatureInfo is the model service's description of one input feature.
type FeatureInfo struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Options     []string `json:"options,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
}

// FeaturesResponse is the model service's feature metadata payload.
type FeaturesResponse struct {
	Features map[string]FeatureInfo `json:"features"`
}
