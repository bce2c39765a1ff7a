// Package structure implements rule=structure.start/structure.end/
// structure.unclosed and rule=chars.outside: element nesting, maximum
// depth, and stray character data outside any element.
//
// One package, one Checker type, a small focused stack-depth check —
// the same shape as the other four rule packages.
package structure

import (
	"fmt"
	"strings"

	"github.com/farukalpay/xml-lib-sub000/internal/constants"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/rule"
)

// Checker enforces element-stack consistency and the configured maximum
// nesting depth.
type Checker struct{}

// New returns a structural Checker.
func New() *Checker { return &Checker{} }

// ID identifies this rule's external rule_id.
func (c *Checker) ID() string { return constants.RuleStructure }

// Check implements rule.Checker.
func (c *Checker) Check(ctx *rule.Context, ev model.ParserEvent, stackBefore []string, depthBefore int) rule.Result {
	switch ev.Kind {
	case model.EventStartElement:
		return c.checkStart(ctx, ev, depthBefore)
	case model.EventEndElement:
		return c.checkEnd(ctx, ev, stackBefore)
	case model.EventCharacters:
		return c.checkChars(ctx, ev, stackBefore)
	default:
		return rule.Result{}
	}
}

func (c *Checker) checkStart(ctx *rule.Context, ev model.ParserEvent, depthBefore int) rule.Result {
	maxDepth := ctx.MaxDepth
	if maxDepth <= 0 {
		maxDepth = constants.DefaultMaxDepth
	}

	newDepth := depthBefore + 1
	if newDepth > maxDepth {
		return rule.Result{
			Fatal: true,
			Violations: []model.ValidationError{{
				File:        ctx.File,
				Line:        ev.Position.Line,
				Column:      ev.Position.Column,
				Message:     fmt.Sprintf("maximum nesting depth %d exceeded at <%s>", maxDepth, ev.QualifiedName),
				Severity:    constants.SeverityError,
				RuleID:      constants.RuleStructure,
				ElementName: ev.QualifiedName,
			}},
		}
	}
	return rule.Result{}
}

func (c *Checker) checkEnd(ctx *rule.Context, ev model.ParserEvent, stackBefore []string) rule.Result {
	if len(stackBefore) == 0 {
		return rule.Result{
			Fatal: true,
			Violations: []model.ValidationError{{
				File:        ctx.File,
				Line:        ev.Position.Line,
				Column:      ev.Position.Column,
				Message:     fmt.Sprintf("unexpected closing tag </%s>", ev.QualifiedName),
				Severity:    constants.SeverityError,
				RuleID:      constants.RuleStructure,
				ElementName: ev.QualifiedName,
			}},
		}
	}

	top := stackBefore[len(stackBefore)-1]
	if top != ev.QualifiedName {
		return rule.Result{
			Fatal: true,
			Violations: []model.ValidationError{{
				File:     ctx.File,
				Line:     ev.Position.Line,
				Column:   ev.Position.Column,
				Message:  fmt.Sprintf("mismatched tags: expected </%s>, got </%s>", top, ev.QualifiedName),
				Severity: constants.SeverityError,
				RuleID:   constants.RuleStructure,
			}},
		}
	}

	return rule.Result{}
}

func (c *Checker) checkChars(ctx *rule.Context, ev model.ParserEvent, stackBefore []string) rule.Result {
	if len(stackBefore) != 0 {
		return rule.Result{}
	}
	if isWhitespace(ev.Text) {
		return rule.Result{}
	}
	return rule.Result{
		Violations: []model.ValidationError{{
			File:     ctx.File,
			Line:     ev.Position.Line,
			Column:   ev.Position.Column,
			Message:  "character data outside any element",
			Severity: constants.SeverityWarning,
			RuleID:   constants.RuleStructure,
		}},
	}
}

// Finalize implements rule.Checker: an unclosed element stack at
// EndDocument yields a single structure.unclosed error naming every
// unclosed element.
func (c *Checker) Finalize(ctx *rule.Context, finalStack []string) []model.ValidationError {
	if len(finalStack) == 0 {
		return nil
	}

	return []model.ValidationError{{
		File:     ctx.File,
		Message:  "unclosed elements at end of document: " + strings.Join(finalStack, ", "),
		Severity: constants.SeverityError,
		RuleID:   constants.RuleStructure,
	}}
}

func isWhitespace(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
