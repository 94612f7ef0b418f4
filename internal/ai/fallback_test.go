package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"attrition-risk-eval/backend/internal/scoring"
)

func sampleInput() ExplanationInput {
	return ExplanationInput{
		Fields:          map[string]string{"Overtime": "20+ hours"},
		PredictionLabel: "Yes (Likely to Leave)",
		Interpretation: scoring.Interpret(0.2, 0.8, 0.8, []scoring.FeatureWeight{
			{Name: "Overtime", Weight: 40},
			{Name: "Job_Security", Weight: 25},
		}),
	}
}

func TestTemplateExplainer(t *testing.T) {
	advice, err := NewTemplateExplainer().Explain(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if strings.TrimSpace(advice.Narrative) == "" {
		t.Fatal("narrative empty")
	}
	if !strings.Contains(advice.Narrative, "Very High Risk") {
		t.Fatalf("narrative does not mention the tier: %q", advice.Narrative)
	}
	if !strings.Contains(advice.Narrative, "80%") {
		t.Fatalf("narrative does not mention the leave percentage: %q", advice.Narrative)
	}
	if !strings.Contains(advice.Narrative, "Overtime") {
		t.Fatalf("narrative does not mention the top driver: %q", advice.Narrative)
	}
}

type stubExplainer struct {
	enabled bool
	advice  Advice
	err     error
}

func (s *stubExplainer) Enabled() bool { return s.enabled }
func (s *stubExplainer) Explain(context.Context, ExplanationInput) (Advice, error) {
	return s.advice, s.err
}

func TestWithFallback(t *testing.T) {
	tests := []struct {
		name     string
		primary  Explainer
		expected string
	}{
		{
			name:     "primary wins when usable",
			primary:  &stubExplainer{enabled: true, advice: Advice{Narrative: "primary"}},
			expected: "primary",
		},
		{
			name:     "primary error falls through",
			primary:  &stubExplainer{enabled: true, err: errors.New("boom")},
			expected: "fallback",
		},
		{
			name:     "empty narrative falls through",
			primary:  &stubExplainer{enabled: true, advice: Advice{Narrative: "  "}},
			expected: "fallback",
		},
		{
			name:     "disabled primary falls through",
			primary:  &stubExplainer{enabled: false},
			expected: "fallback",
		},
	}
	fallback := &stubExplainer{enabled: true, advice: Advice{Narrative: "fallback"}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chain := WithFallback(tc.primary, fallback)
			advice, err := chain.Explain(context.Background(), sampleInput())
			if err != nil {
				t.Fatalf("explain: %v", err)
			}
			if advice.Narrative != tc.expected {
				t.Fatalf("expected %q got %q", tc.expected, advice.Narrative)
			}
		})
	}
}

func TestNewClientWithoutKey(t *testing.T) {
	if _, err := NewClient(Config{}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled got %v", err)
	}
}
