package common

import (
	"sort"
	"strings"
)

// ValidationError carries per-field messages keyed by the JSON field path
// (e.g. "email", "courses.0.price"). It matches ErrValidation via errors.Is.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns a ValidationError holding a single message.
func NewValidationError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

// Add appends msg to the messages recorded for field.
func (v *ValidationError) Add(field, msg string) {
	if v.Fields == nil {
		v.Fields = make(map[string][]string)
	}
	v.Fields[field] = append(v.Fields[field], msg)
}

// Empty reports whether no field has been recorded.
func (v *ValidationError) Empty() bool {
	return v == nil || len(v.Fields) == 0
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(v.Fields[k], "; "))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (v *ValidationError) Unwrap() error {
	return ErrValidation
}
