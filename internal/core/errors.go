package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the store and codec contracts. They are always
// wrapped with context; match them with errors.Is.
var (
	// ErrDuplicateIdentifier reports an identifier that is already taken.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrIndexOutOfRange reports a position outside the store. It signals
	// a caller bug, not bad user input.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEmptyInput reports an export attempt with no records.
	ErrEmptyInput = errors.New("no records to export")
)

// ValidationError describes one rejected field at the edit boundary.
// The record it belongs to is never stored.
type ValidationError struct {
	Field   string // field/column name
	Value   string // the invalid value
	Message string // human-readable explanation
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}
