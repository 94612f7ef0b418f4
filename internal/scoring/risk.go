// Package scoring derives display values from raw prediction output: the
// discrete risk tier, normalized percentages and ranked feature importances.
// Everything here is a pure function of already-validated numeric input.
package scoring

import "math"

// Tone drives how a tier is rendered (colour class on web, glyph on CLI).
type Tone string

const (
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
	ToneSuccess Tone = "success"
)

// RiskTier is the discrete label derived from the leave probability.
type RiskTier struct {
	Label     string  `json:"label"`
	Tone      Tone    `json:"tone"`
	Threshold float64 `json:"threshold"`
}

// Ordered highest threshold first; the first tier whose threshold the
// probability reaches wins, so the five tiers partition [0,1] with no gaps.
var riskTiers = []RiskTier{
	{Label: "Very High Risk", Tone: ToneDanger, Threshold: 0.75},
	{Label: "High Risk", Tone: ToneDanger, Threshold: 0.55},
	{Label: "Moderate Risk", Tone: ToneWarning, Threshold: 0.40},
	{Label: "Low Risk", Tone: ToneSuccess, Threshold: 0.25},
	{Label: "Very Low Risk", Tone: ToneSuccess, Threshold: 0},
}

// TierFor classifies a leave probability into a risk tier.
func TierFor(leaveProbability float64) RiskTier {
	p := Clamp01(leaveProbability)
	for _, tier := range riskTiers {
		if p >= tier.Threshold {
			return tier
		}
	}
	return riskTiers[len(riskTiers)-1]
}

// Tiers returns the tier table, highest threshold first.
func Tiers() []RiskTier {
	out := make([]RiskTier, len(riskTiers))
	copy(out, riskTiers)
	return out
}

// Clamp01 bounds a probability to [0,1]. NaN is treated as 0 so a malformed
// upstream value degrades to the lowest tier instead of poisoning display math.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NormalizedPercent converts a probability to a whole display percentage.
func NormalizedPercent(p float64) int {
	return int(math.Round(Clamp01(p) * 100))
}
