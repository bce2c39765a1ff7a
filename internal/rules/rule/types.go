// Package rule defines the shared Checker interface and context implemented
// by every built-in validation rule (internal/rules/structure, identity,
// names, phase, temporal). It is a separate package from internal/rules so
// that rule implementations do not import the engine that wires them
// together, avoiding an import cycle.
package rule

import (
	"github.com/farukalpay/xml-lib-sub000/internal/crossfile"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
)

// Context is shared, read-mostly state every rule may consult: the file
// under validation, the run's cross-file index, and policy limits.
type Context struct {
	File      string
	CrossFile *crossfile.Index
	MaxDepth  int
}

// Result is a rule's response to one event: zero or more violations, plus
// whether the violation is Fatal — structural errors (mismatched tags,
// unclosed elements, excess depth) halt the remainder of the file's
// validation once recorded; rule violations (id collisions, ordering,
// monotonicity, name warnings) never set Fatal.
type Result struct {
	Violations []model.ValidationError
	Fatal      bool
}

// Checker is one validation rule. The engine calls Check for every
// ParserEvent (StartElement, EndElement, Characters) in document order, and
// Finalize once at EndDocument. stackBefore is the element stack as it stood
// immediately before this event's structural effect (for a StartElement,
// the stack not yet including the new element; for an EndElement, the stack
// still including the element being closed).
type Checker interface {
	ID() string
	Check(ctx *Context, ev model.ParserEvent, stackBefore []string, depthBefore int) Result
	Finalize(ctx *Context, finalStack []string) []model.ValidationError
}
