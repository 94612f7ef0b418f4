package form

import (
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a key outside the catalog is written.
type ErrUnknownField struct {
	Key string
}

func (e ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown field %q", e.Key)
}

// Completion summarizes how much of the form has been filled in.
type Completion struct {
	Filled int
	Total  int
	Ratio  float64
}

// Tracker holds the current value of every catalog field. Values are kept as
// raw strings until payload construction; writes are not validated beyond the
// key check so the tracker always carries exactly the catalog key set.
type Tracker struct {
	fields []FieldDefinition
	values map[string]string
}

// NewTracker returns a tracker with every catalog field set to the empty string.
func NewTracker() *Tracker {
	fields := Fields()
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Key] = ""
	}
	return &Tracker{fields: fields, values: values}
}

// SetField replaces the value for key unconditionally. Keys outside the
// catalog are rejected so the tracked key set never drifts.
func (t *Tracker) SetField(key, value string) error {
	if _, ok := t.values[key]; !ok {
		return ErrUnknownField{Key: key}
	}
	t.values[key] = value
	return nil
}

// Value returns the current raw value for key.
func (t *Tracker) Value(key string) string {
	return t.values[key]
}

// Values returns a copy of the current field values.
func (t *Tracker) Values() map[string]string {
	out := make(map[string]string, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}

// Completion counts fields with a non-empty trimmed value.
func (t *Tracker) Completion() Completion {
	total := len(t.fields)
	filled := 0
	for _, f := range t.fields {
		if strings.TrimSpace(t.values[f.Key]) != "" {
			filled++
		}
	}
	ratio := 0.0
	if total > 0 {
		ratio = float64(filled) / float64(total)
	}
	return Completion{Filled: filled, Total: total, Ratio: ratio}
}

// CanSubmit reports whether every field holds a non-empty value. Range and
// option constraints are advisory and enforced by the input surface, not here.
func (t *Tracker) CanSubmit() bool {
	c := t.Completion()
	return c.Filled == c.Total
}

// Reset restores every field to the empty string.
func (t *Tracker) Reset() {
	for _, f := range t.fields {
		t.values[f.Key] = ""
	}
}
