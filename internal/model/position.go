// Package model defines the shared, allocation-cheap data types passed between
// the parser, validator, checkpoint manager, and cross-file index: positions,
// parser events, parser state, validation errors/results, and checkpoints.
// Every type here is a plain value — freely copyable, with no hidden
// references to an input stream or file handle.
package model

import "fmt"

// Position identifies a byte offset and 1-based line/column within a
// document. Positions refer to the start of the syntactic construct they
// annotate (the opening '<' of a tag, the first byte of a run of character
// data, and so on).
type Position struct {
	ByteOffset int64
	Line       int
	Column     int
}

// String renders the position the way error messages and log fields expect it.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d (offset %d)", p.Line, p.Column, p.ByteOffset)
}

// Zero reports whether the position has never been advanced past the
// document start (byte_offset 0, line 1, column 1 is itself a valid starting
// position, so Zero checks the sentinel used before reading begins).
func (p Position) Zero() bool {
	return p.ByteOffset == 0 && p.Line == 0 && p.Column == 0
}
