package model

import (
	"errors"
	"fmt"
)

// ValidationError is a value-type diagnostic record: an optional line/column,
// a stable rule_id, and the offending element name. Line and Column are zero
// when no position is known; HasPosition reports which case applies.
type ValidationError struct {
	File        string
	Line        int
	Column      int
	Message     string
	Severity    string // "error" or "warning", see constants.Severity*
	RuleID      string
	ElementName string
}

// HasPosition reports whether Line/Column carry a meaningful value.
func (e ValidationError) HasPosition() bool {
	return e.Line > 0 || e.Column > 0
}

// Error implements the error interface so a ValidationError can be wrapped
// and matched with errors.As/errors.Is like any other typed error.
func (e ValidationError) Error() string {
	switch {
	case e.HasPosition() && e.RuleID != "":
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.RuleID, e.Message)
	case e.HasPosition():
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	case e.RuleID != "":
		return fmt.Sprintf("%s: [%s] %s", e.File, e.RuleID, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
}

// Is implements error matching for ValidationError.
func (e ValidationError) Is(target error) bool {
	var validationErr ValidationError
	return errors.As(target, &validationErr)
}

// IsError reports whether the record is error-severity (as opposed to a
// warning); used by ValidationResult.IsValid and the aggregator.
func (e ValidationError) IsError() bool {
	return e.Severity != "warning"
}

// AggregatedValidationError collects multiple ValidationErrors behind a
// single error value.
type AggregatedValidationError struct {
	Errors []ValidationError
}

// Error implements the error interface for AggregatedValidationError.
func (a *AggregatedValidationError) Error() string {
	switch len(a.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return a.Errors[0].Error()
	default:
		return fmt.Sprintf("validation failed with %d errors: %s (and %d more)",
			len(a.Errors), a.Errors[0].Message, len(a.Errors)-1)
	}
}

// Is implements error matching for AggregatedValidationError.
func (a *AggregatedValidationError) Is(target error) bool {
	var aggErr *AggregatedValidationError
	return errors.As(target, &aggErr)
}

// HasErrors reports whether any contained record is error-severity.
func (a *AggregatedValidationError) HasErrors() bool {
	for _, e := range a.Errors {
		if e.IsError() {
			return true
		}
	}
	return false
}
