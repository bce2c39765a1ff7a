// Package phase implements rule=phase.order: for documents whose root
// element is "document", the "phase" children of a "phases" element must
// appear in the partial order begin, start, iteration, end, continuum,
// identified by each phase element's "name" attribute.
package phase

import (
	"github.com/farukalpay/xml-lib-sub000/internal/constants"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/rule"
)

// Checker tracks phase ordering within the most recently opened "phases"
// scope. A document is expected to contain at most one such scope, but the
// tracker resets on every "phases" StartElement so nested/repeated scopes
// don't falsely carry state forward.
type Checker struct {
	lastIndex int // index into constants.PhaseOrder of the last accepted phase name, -1 if none yet
}

// New returns a phase-ordering Checker.
func New() *Checker { return &Checker{lastIndex: -1} }

// ID identifies this rule's external rule_id.
func (c *Checker) ID() string { return constants.RulePhaseOrder }

// Check implements rule.Checker.
func (c *Checker) Check(ctx *rule.Context, ev model.ParserEvent, stackBefore []string, _ int) rule.Result {
	if ev.Kind != model.EventStartElement {
		return rule.Result{}
	}

	if ev.LocalName == "phases" && isDocumentRoot(stackBefore) {
		c.lastIndex = -1
		return rule.Result{}
	}

	if ev.LocalName != "phase" || !isPhasesScope(stackBefore) {
		return rule.Result{}
	}

	name, ok := ev.Attr("name")
	if !ok {
		return rule.Result{}
	}

	idx := phaseIndex(name)
	if idx < 0 {
		return rule.Result{} // not one of the recognized phase names; no ordering opinion
	}

	if idx < c.lastIndex {
		return rule.Result{
			Violations: []model.ValidationError{{
				File:        ctx.File,
				Line:        ev.Position.Line,
				Column:      ev.Position.Column,
				Message:     "phase '" + name + "' is out of order",
				Severity:    constants.SeverityError,
				RuleID:      constants.RulePhaseOrder,
				ElementName: ev.QualifiedName,
			}},
		}
	}

	c.lastIndex = idx
	return rule.Result{}
}

// Finalize implements rule.Checker; ordering is fully checked incrementally.
func (c *Checker) Finalize(*rule.Context, []string) []model.ValidationError { return nil }

func isDocumentRoot(stackBefore []string) bool {
	return len(stackBefore) == 1 && stackBefore[0] == "document"
}

func isPhasesScope(stackBefore []string) bool {
	return len(stackBefore) == 2 && stackBefore[0] == "document" && stackBefore[1] == "phases"
}

func phaseIndex(name string) int {
	for i, n := range constants.PhaseOrder {
		if n == name {
			return i
		}
	}
	return -1
}
