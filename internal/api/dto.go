package api

import (
	"attrition-risk-eval/backend/internal/form"
	"attrition-risk-eval/backend/internal/predict"
	"attrition-risk-eval/backend/internal/scoring"
)

// PredictionDTO is the enriched prediction payload: the upstream result plus
// every derived display value, so the form surface renders without math.
type PredictionDTO struct {
	Prediction        int                        `json:"prediction"`
	PredictionLabel   string                     `json:"prediction_label"`
	Probability       predict.Probability        `json:"probability"`
	Confidence        float64                    `json:"confidence"`
	FeatureImportance predict.Importances        `json:"feature_importance"`
	Risk              scoring.RiskTier           `json:"risk"`
	LeavePercent      int                        `json:"leave_percent"`
	StayPercent       int                        `json:"stay_percent"`
	ConfidencePercent int                        `json:"confidence_percent"`
	Importances       []scoring.RankedImportance `json:"importances,omitempty"`
	Explanation       string                     `json:"explanation,omitempty"`
	Suggestions       []string                   `json:"suggestions,omitempty"`
	ProcessingTimeMs  int64                      `json:"processing_time_ms"`
}

// FromResult converts the upstream result and its interpretation into the DTO.
func FromResult(result *predict.Result, interp scoring.Interpretation) PredictionDTO {
	return PredictionDTO{
		Prediction:        result.Prediction,
		PredictionLabel:   result.PredictionLabel,
		Probability:       result.Probability,
		Confidence:        result.Confidence,
		FeatureImportance: result.Importances,
		Risk:              interp.Tier,
		LeavePercent:      interp.LeavePercent,
		StayPercent:       interp.StayPercent,
		ConfidencePercent: interp.ConfidencePercent,
		Importances:       interp.Importances,
	}
}

// FeatureDTO mirrors the model service's feature metadata shape.
type FeatureDTO struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Options     []string `json:"options,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
}

// FeaturesResponse lists field metadata keyed by field name, with the
// submission order carried separately since JSON objects do not preserve it.
type FeaturesResponse struct {
	Features map[string]FeatureDTO `json:"features"`
	Order    []string              `json:"order"`
}

// FeatureFromDefinition converts a catalog entry into its DTO.
func FeatureFromDefinition(f form.FieldDefinition) FeatureDTO {
	dto := FeatureDTO{
		Type:        string(f.Kind),
		Description: f.Description,
		Options:     f.Options,
	}
	if f.Numeric() {
		min, max := f.Min, f.Max
		dto.Min = &min
		dto.Max = &max
	}
	return dto
}

// HealthResponse reports gateway and upstream model service status.
type HealthResponse struct {
	Status   string         `json:"status"`
	Upstream UpstreamHealth `json:"upstream"`
}

// UpstreamHealth describes the model service as seen from the gateway.
type UpstreamHealth struct {
	Reachable   bool   `json:"reachable"`
	ModelLoaded bool   `json:"model_loaded"`
	Error       string `json:"error,omitempty"`
}
