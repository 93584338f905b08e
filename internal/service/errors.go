package service

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound covers unknown slugs, usernames and post ids.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner marks an edit attempt by someone other than the
	// post's author. Handlers turn it into a silent redirect, never an
	// error body.
	ErrNotOwner = errors.New("not the author")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level messages for re-rendering the
// submission form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// FieldMap is the errors context handed to the form template.
func (e *ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := m[f.Field]; !ok {
			m[f.Field] = f.Message
		}
	}
	return m
}
