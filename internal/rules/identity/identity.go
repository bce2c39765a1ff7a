// Package identity implements rule=id.unique and the reference half of the
// cross-file index: every StartElement carrying an "id" attribute is checked
// against the run's cross-file index (internal/crossfile), which is itself
// the per-file id set's backing store — a duplicate within one file and a
// duplicate across two files surface the same rule_id, "cross-file-id". Every
// StartElement carrying one of the reference attributes ("ref-begin",
// "ref-start", "ref-iteration", "ref-end", "ref-continuum") enqueues a
// pending reference, resolved against the id table once the run finishes and
// reported under rule_id "cross-file-reference" for any target never seen.
package identity

import (
	"github.com/farukalpay/xml-lib-sub000/internal/constants"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/rule"
)

// referenceAttributes names the lifecycle reference attributes recognized on
// any element, each naming the id of a phase it refers back to.
var referenceAttributes = []string{"ref-begin", "ref-start", "ref-iteration", "ref-end", "ref-continuum"} //nolint:gochecknoglobals // fixed attribute vocabulary

// Checker enforces id uniqueness and enqueues reference attributes across
// the run via ctx.CrossFile.
type Checker struct{}

// New returns an identity Checker.
func New() *Checker { return &Checker{} }

// ID identifies this rule's external rule_id.
func (c *Checker) ID() string { return constants.RuleCrossFileID }

// Check implements rule.Checker.
func (c *Checker) Check(ctx *rule.Context, ev model.ParserEvent, _ []string, _ int) rule.Result {
	if ev.Kind != model.EventStartElement {
		return rule.Result{}
	}

	result := c.checkID(ctx, ev)
	c.enqueueReferences(ctx, ev)
	return result
}

func (c *Checker) checkID(ctx *rule.Context, ev model.ParserEvent) rule.Result {
	id, ok := ev.Attr("id")
	if !ok || id == "" || ctx.CrossFile == nil {
		return rule.Result{}
	}

	violation, duplicate := ctx.CrossFile.ObserveID(ctx.File, id, ev.Position)
	if !duplicate {
		return rule.Result{}
	}
	violation.ElementName = ev.QualifiedName
	return rule.Result{Violations: []model.ValidationError{violation}}
}

func (c *Checker) enqueueReferences(ctx *rule.Context, ev model.ParserEvent) {
	if ctx.CrossFile == nil {
		return
	}
	for _, attr := range referenceAttributes {
		targetID, ok := ev.Attr(attr)
		if !ok || targetID == "" {
			continue
		}
		ctx.CrossFile.ObserveReference(ctx.File, targetID, attr, ev.Position)
	}
}

// Finalize implements rule.Checker; dangling references (not id
// duplicates) are resolved at run finalization by internal/crossfile, not
// per-file, so this is a no-op.
func (c *Checker) Finalize(*rule.Context, []string) []model.ValidationError { return nil }
