package ai

import (
	"context"
	"fmt"
	"strings"
)

type explainerChain struct {
	primary  Explainer
	fallback Explainer
}

// WithFallback returns an explainer that first tries the primary
// implementation and falls back when the primary is unavailable or produces
// an unusable response.
func WithFallback(primary, fallback Explainer) Explainer {
	if primary == nil {
		return fallback
	}
	if fallback == nil {
		return primary
	}
	return &explainerChain{primary: primary, fallback: fallback}
}

func (c *explainerChain) Enabled() bool {
	if c == nil {
		return false
	}
	if c.primary != nil && c.primary.Enabled() {
		return true
	}
	return c.fallback != nil && c.fallback.Enabled()
}

func (c *explainerChain) Explain(ctx context.Context, input ExplanationInput) (Advice, error) {
	if c == nil {
		return Advice{}, ErrDisabled
	}
	if c.primary != nil && c.primary.Enabled() {
		if advice, err := c.primary.Explain(ctx, input); err == nil {
			if strings.TrimSpace(advice.Narrative) != "" {
				return advice, nil
			}
		}
	}
	if c.fallback != nil && c.fallback.Enabled() {
		return c.fallback.Explain(ctx, input)
	}
	return Advice{}, ErrDisabled
}

// TemplateExplainer renders a deterministic narrative from the interpreted
// result. It needs no credentials and is always enabled, so the gateway can
// attach an explanation even when the OpenAI client is not configured.
type TemplateExplainer struct{}

// NewTemplateExplainer returns the deterministic explainer.
func NewTemplateExplainer() *TemplateExplainer {
	return &TemplateExplainer{}
}

// Enabled always reports true.
func (t *TemplateExplainer) Enabled() bool {
	return t != nil
}

// Explain builds the templated narrative.
func (t *TemplateExplainer) Explain(_ context.Context, input ExplanationInput) (Advice, error) {
	if t == nil {
		return Advice{}, ErrDisabled
	}

	interp := input.Interpretation
	builder := &strings.Builder{}
	fmt.Fprintf(builder, "The model rates this profile %s with a %d%% chance of leaving and a %d%% chance of staying (confidence %d%%).",
		interp.Tier.Label, interp.LeavePercent, interp.StayPercent, interp.ConfidencePercent)

	if len(interp.Importances) > 0 {
		top := interp.Importances
		if len(top) > 3 {
			top = top[:3]
		}
		names := make([]string, 0, len(top))
		for _, imp := range top {
			names = append(names, imp.Name)
		}
		fmt.Fprintf(builder, "\nThe strongest drivers behind this reading were %s.", strings.Join(names, ", "))
	}

	return Advice{
		Narrative: builder.String(),
		RiskLabel: interp.Tier.Label,
	}, nil
}
