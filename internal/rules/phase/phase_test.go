package phase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/rule"
)

func phaseElement(name string) model.ParserEvent {
	ev := model.ParserEvent{Kind: model.EventStartElement, QualifiedName: "phase", LocalName: "phase"}
	if name != "" {
		ev.Attributes = []model.Attribute{{Name: "name", Value: name}}
	}
	return ev
}

func TestCheckIgnoresOutsidePhasesScope(t *testing.T) {
	c := New()
	result := c.Check(&rule.Context{}, phaseElement("iteration"), []string{"document"}, 0)
	assert.Empty(t, result.Violations)
}

func TestCheckAscendingOrderIsClean(t *testing.T) {
	c := New()
	stack := []string{"document", "phases"}

	for _, name := range []string{"begin", "start", "iteration", "end", "continuum"} {
		result := c.Check(&rule.Context{}, phaseElement(name), stack, 0)
		assert.Empty(t, result.Violations, "phase %q should not violate ordering", name)
	}
}

func TestCheckOutOfOrderPhaseIsError(t *testing.T) {
	c := New()
	stack := []string{"document", "phases"}

	assert.Empty(t, c.Check(&rule.Context{}, phaseElement("iteration"), stack, 0).Violations)

	result := c.Check(&rule.Context{File: "a.xml"}, phaseElement("start"), stack, 0)
	if assert.Len(t, result.Violations, 1) {
		assert.Equal(t, "phase-order", result.Violations[0].RuleID)
	}
}

func TestCheckUnrecognizedPhaseNameHasNoOpinion(t *testing.T) {
	c := New()
	stack := []string{"document", "phases"}

	assert.Empty(t, c.Check(&rule.Context{}, phaseElement("iteration"), stack, 0).Violations)
	assert.Empty(t, c.Check(&rule.Context{}, phaseElement("unknown-phase"), stack, 0).Violations)
}

func TestCheckPhasesScopeResetsTrackerOnReentry(t *testing.T) {
	c := New()
	stack := []string{"document", "phases"}

	assert.Empty(t, c.Check(&rule.Context{}, phaseElement("continuum"), stack, 0).Violations)

	phasesStart := model.ParserEvent{Kind: model.EventStartElement, LocalName: "phases"}
	assert.Empty(t, c.Check(&rule.Context{}, phasesStart, []string{"document"}, 0).Violations)

	assert.Empty(t, c.Check(&rule.Context{}, phaseElement("begin"), stack, 0).Violations)
}

func TestFinalizeIsNoOp(t *testing.T) {
	c := New()
	assert.Nil(t, c.Finalize(&rule.Context{}, nil))
}
