package scoring

// Interpretation bundles every derived display value for one prediction.
type Interpretation struct {
	Tier              RiskTier           `json:"risk"`
	LeavePercent      int                `json:"leave_percent"`
	StayPercent       int                `json:"stay_percent"`
	ConfidencePercent int                `json:"confidence_percent"`
	Importances       []RankedImportance `json:"importances,omitempty"`
}

// Interpret derives the risk tier, gauge percentages and ranked importances
// from raw prediction values. Stay and leave are independent model outputs
// and are normalized separately, never as complements.
func Interpret(stay, leave, confidence float64, importances []FeatureWeight) Interpretation {
	return Interpretation{
		Tier:              TierFor(leave),
		LeavePercent:      NormalizedPercent(leave),
		StayPercent:       NormalizedPercent(stay),
		ConfidencePercent: NormalizedPercent(confidence),
		Importances:       RankImportances(importances),
	}
}
