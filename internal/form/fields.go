// Package form holds the attrition questionnaire schema and the in-memory
// state of a single form session.
package form

// FieldKind distinguishes how a field value is captured and coerced.
type FieldKind string

const (
	KindCategorical FieldKind = "categorical"
	KindNumeric     FieldKind = "numeric"
)

// FieldDefinition describes one questionnaire input. The catalog is static;
// the prediction model expects exactly these keys.
type FieldDefinition struct {
	Key         string
	Label       string
	Kind        FieldKind
	Required    bool
	Options     []string
	Min         float64
	Max         float64
	Description string
}

// Numeric reports whether values for this field are coerced to float64
// before submission.
func (f FieldDefinition) Numeric() bool {
	return f.Kind == KindNumeric
}

// Fields returns the questionnaire catalog in submission order.
func Fields() []FieldDefinition {
	return catalog
}

// Lookup returns the definition for the given key.
func Lookup(key string) (FieldDefinition, bool) {
	for _, f := range catalog {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Keys returns the field keys in submission order.
func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for _, f := range catalog {
		keys = append(keys, f.Key)
	}
	return keys
}

var catalog = []FieldDefinition{
	{
		Key:         "Department",
		Label:       "Primary Department",
		Kind:        KindCategorical,
		Required:    true,
		Description: "Primary Department",
	},
	{
		Key:         "Overtime",
		Label:       "Average Monthly Overtime",
		Kind:        KindCategorical,
		Required:    true,
		Options:     []string{"0 hours", "1-10 hours", "11-20 hours", "20+ hours"},
		Description: "Average Monthly Overtime",
	},
	{
		Key:         "Promotion_Gap",
		Label:       "Years Since Last Promotion",
		Kind:        KindNumeric,
		Required:    true,
		Min:         0,
		Max:         50,
		Description: "Years since last job title change or promotion",
	},
	{
		Key:         "Job_Satisfaction",
		Label:       "Job Satisfaction Level",
		Kind:        KindCategorical,
		Required:    true,
		Options:     []string{"Very Dissatisfied", "Dissatisfied", "Neutral", "Satisfied", "Very Satisfied"},
		Description: "Job Satisfaction Level",
	},
	{
		Key:         "AI_Automation_Risk",
		Label:       "Risk of AI/Automation",
		Kind:        KindCategorical,
		Required:    true,
		Options:     []string{"Very Low", "Low", "Medium", "High", "Very High"},
		Description: "Risk of AI/Automation",
	},
	{
		Key:         "Recent_Layoffs",
		Label:       "Recent Department Layoffs",
		Kind:        KindCategorical,
		Required:    true,
		Options:     []string{"Yes", "No"},
		Description: "Has department experienced layoffs in last 12 months?",
	},
	{
		Key:         "Job_Security",
		Label:       "Job Security Level",
		Kind:        KindCategorical,
		Required:    true,
		Options:     []string{"Very Unstable", "Unstable", "Medium", "Secure", "Very Secure"},
		Description: "Job Security Level",
	},
	{
		Key:         "Market_Demand",
		Label:       "External Market Demand",
		Kind:        KindCategorical,
		Required:    true,
		Options:     []string{"Very Easy", "Easy", "Neutral", "Difficult"},
		Description: "Ease of finding similar role elsewhere",
	},
}
