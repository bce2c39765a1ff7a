// Package names implements rule=xml.name: a StartElement whose local name,
// stripped of ASCII letters, digits, '_', '-', '.', leaves a non-empty
// remainder and carries no namespace prefix generates a warning.
package names

import (
	"strings"

	"github.com/farukalpay/xml-lib-sub000/internal/constants"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/rule"
)

// Checker flags element local names containing characters outside the
// conventional XML name vocabulary.
type Checker struct{}

// New returns a names Checker.
func New() *Checker { return &Checker{} }

// ID identifies this rule's external rule_id. Element-name warnings collapse
// onto the structure rule_id, the same way rule=chars.outside does.
func (c *Checker) ID() string { return constants.RuleStructure }

// Check implements rule.Checker.
func (c *Checker) Check(ctx *rule.Context, ev model.ParserEvent, _ []string, _ int) rule.Result {
	if ev.Kind != model.EventStartElement {
		return rule.Result{}
	}
	if strings.Contains(ev.QualifiedName, ":") {
		return rule.Result{} // has a namespace prefix, exempt
	}
	if stripNameChars(ev.LocalName) == "" {
		return rule.Result{}
	}

	return rule.Result{
		Violations: []model.ValidationError{{
			File:        ctx.File,
			Line:        ev.Position.Line,
			Column:      ev.Position.Column,
			Message:     "element name '" + ev.LocalName + "' contains unconventional characters",
			Severity:    constants.SeverityWarning,
			RuleID:      constants.RuleStructure,
			ElementName: ev.QualifiedName,
		}},
	}
}

// Finalize implements rule.Checker; this rule has no end-of-document check.
func (c *Checker) Finalize(*rule.Context, []string) []model.ValidationError { return nil }

func stripNameChars(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
