package services

import (
	"errors"
	"fmt"
)

// ErrBookingNotFound covers both a missing row and a status-guard miss on
// check-in/check-out; callers see a single 404-style failure for both.
var ErrBookingNotFound = errors.New("booking_not_found")

var (
	ErrUnitNotFound     = errors.New("unit_not_found")
	ErrTowerNotFound    = errors.New("tower_not_found")
	ErrEmployeeNotFound = errors.New("employee_not_found")
)

// ValidationError reports a missing or malformed required input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Field + " required"
}

// NewValidationError builds the field-specific message surfaced as a 400.
func NewValidationError(field string) *ValidationError {
	return &ValidationError{Field: field}
}

// SchemaMissingError marks an operation against a column the deployed
// database does not have yet. Reads degrade by backfilling nil; writes
// that strictly need the column surface this to the operator.
type SchemaMissingError struct {
	Table  string
	Column string
}

func (e *SchemaMissingError) Error() string {
	return fmt.Sprintf("column %s.%s does not exist; run the pending migration to enable this feature", e.Table, e.Column)
}

// IsSchemaMissing reports whether err is a SchemaMissingError.
func IsSchemaMissing(err error) bool {
	var sm *SchemaMissingError
	return errors.As(err, &sm)
}
