// Package temporal implements rule=time.monotone: within a "phases" scope,
// consecutive "phase" elements' "timestamp" attributes, parsed as ISO-8601
// instants, must be non-decreasing. A decrease is an error (rule_id
// temporal-monotonicity); an unparsable timestamp is always a warning
// (rule_id temporal), never silently ignored.
package temporal

import (
	"time"

	"github.com/farukalpay/xml-lib-sub000/internal/constants"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/rule"
)

// Checker tracks the last valid timestamp observed within the current
// "phases" scope.
type Checker struct {
	last      time.Time
	lastValid bool
}

// New returns a temporal-monotonicity Checker.
func New() *Checker { return &Checker{} }

// ID identifies this rule's external rule_id (its error-severity output;
// the warning path uses constants.RuleTemporal instead).
func (c *Checker) ID() string { return constants.RuleTemporalMonotonicity }

// Check implements rule.Checker.
func (c *Checker) Check(ctx *rule.Context, ev model.ParserEvent, stackBefore []string, _ int) rule.Result {
	if ev.Kind != model.EventStartElement {
		return rule.Result{}
	}

	if ev.LocalName == "phases" && len(stackBefore) == 1 && stackBefore[0] == "document" {
		c.lastValid = false
		return rule.Result{}
	}

	isPhasesScope := len(stackBefore) == 2 && stackBefore[0] == "document" && stackBefore[1] == "phases"
	if ev.LocalName != "phase" || !isPhasesScope {
		return rule.Result{}
	}

	raw, ok := ev.Attr("timestamp")
	if !ok {
		return rule.Result{}
	}

	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return rule.Result{
			Violations: []model.ValidationError{{
				File:        ctx.File,
				Line:        ev.Position.Line,
				Column:      ev.Position.Column,
				Message:     "unparsable timestamp '" + raw + "'",
				Severity:    constants.SeverityWarning,
				RuleID:      constants.RuleTemporal,
				ElementName: ev.QualifiedName,
			}},
		}
	}

	defer func() {
		c.last = ts
		c.lastValid = true
	}()

	if c.lastValid && ts.Before(c.last) {
		return rule.Result{
			Violations: []model.ValidationError{{
				File:        ctx.File,
				Line:        ev.Position.Line,
				Column:      ev.Position.Column,
				Message:     "timestamp decreases relative to the previous phase",
				Severity:    constants.SeverityError,
				RuleID:      constants.RuleTemporalMonotonicity,
				ElementName: ev.QualifiedName,
			}},
		}
	}

	return rule.Result{}
}

// Finalize implements rule.Checker; monotonicity is fully checked incrementally.
func (c *Checker) Finalize(*rule.Context, []string) []model.ValidationError { return nil }
