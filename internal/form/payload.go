package form

import (
	"strconv"
	"strings"
)

// NormalizeValue canonicalizes a categorical value before submission. Survey
// exports render ranges like "1-10 hours" with en or em dashes; the model was
// trained on plain hyphens.
func NormalizeValue(value string) string {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "–", "-")
	value = strings.ReplaceAll(value, "—", "-")
	return value
}

// BuildPayload converts the tracked values into the prediction request body:
// catalog order, strings for categorical fields, float64 for numeric ones.
// A numeric value that fails to parse is submitted as 0.0 rather than
// rejected, matching the model service's documented behaviour. The transform
// never fails.
func BuildPayload(values map[string]string) map[string]any {
	payload := make(map[string]any, len(catalog))
	for _, f := range catalog {
		raw := values[f.Key]
		if f.Numeric() {
			payload[f.Key] = coerceNumeric(raw)
			continue
		}
		payload[f.Key] = NormalizeValue(raw)
	}
	return payload
}

func coerceNumeric(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0.0
	}
	return v
}
