package domain

import (
	"sort"
	"strings"
)

// ValidationErrors field name -> message.
// Fields are set and cleared independently.
type ValidationErrors map[string]string

// Set records an error for the field
func (v ValidationErrors) Set(field, message string) {
	v[field] = message
}

// Clear removes the field error, leaving other fields untouched
func (v ValidationErrors) Clear(field string) {
	delete(v, field)
}

func (v ValidationErrors) Get(field string) (string, bool) {
	msg, ok := v[field]
	return msg, ok
}

func (v ValidationErrors) Has(field string) bool {
	_, ok := v[field]
	return ok
}

func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

// First returns the first error following the given field order.
// Fields not in order are considered after, alphabetically.
func (v ValidationErrors) First(order ...string) (field, message string, ok bool) {
	for _, f := range order {
		if msg, exists := v[f]; exists {
			return f, msg, true
		}
	}

	rest := make([]string, 0, len(v))
	for f := range v {
		rest = append(rest, f)
	}
	sort.Strings(rest)
	if len(rest) == 0 {
		return "", "", false
	}
	return rest[0], v[rest[0]], true
}

// MergeServer merges gateway field errors, keeping only the first message per field
func (v ValidationErrors) MergeServer(errs map[string][]string) {
	for field, messages := range errs {
		if len(messages) == 0 {
			continue
		}
		v[field] = messages[0]
	}
}

// Clone copies the set
func (v ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(v))
	for f, m := range v {
		out[f] = m
	}
	return out
}

// ValidationError wraps ValidationErrors as an error.
// errors.Is(err, ErrInvalidInput) holds for it.
type ValidationError struct {
	Fields ValidationErrors
}

func NewValidationError(fields ValidationErrors) *ValidationError {
	return &ValidationError{Fields: fields.Clone()}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, m := range e.Fields {
		parts = append(parts, f+": "+m)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
