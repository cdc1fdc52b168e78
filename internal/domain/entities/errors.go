package entities

import (
	"fmt"
	"strings"
)

// ReadError reports that the stored document could not be read or parsed
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read document from %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError reports that the document could not be persisted
type WriteError struct {
	Source string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write document to %s: %v", e.Source, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// FieldError describes one rejected input field
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrors is returned when caller-supplied records are malformed
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
