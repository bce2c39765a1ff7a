package events

import (
	"errors"
	"fmt"
)

// ParseError is a fatal, position-carrying parse failure: line, column, and
// byte offset pinpoint exactly where the document stopped being well-formed.
type ParseError struct {
	Line    int
	Column  int
	Offset  int64
	Message string
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d (offset %d): %s", e.Line, e.Column, e.Offset, e.Message)
}

// Is implements error matching for ParseError.
func (e *ParseError) Is(target error) bool {
	var parseErr *ParseError
	return errors.As(target, &parseErr)
}

// IsParseError reports whether err is, or wraps, a *ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// AsParseError extracts a *ParseError from err's chain, or nil.
func AsParseError(err error) *ParseError {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr
	}
	return nil
}
