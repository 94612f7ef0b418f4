package ai

// Advice captures the structured response expected from the explainer.
type Advice struct {
	Narrative   string   `json:"narrative"`
	RiskLabel   string   `json:"risk_label,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
