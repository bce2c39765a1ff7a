package names

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/rule"
)

func startElement(qname, local string) model.ParserEvent {
	return model.ParserEvent{Kind: model.EventStartElement, QualifiedName: qname, LocalName: local}
}

func TestCheckIgnoresNonStartElementEvents(t *testing.T) {
	c := New()
	result := c.Check(&rule.Context{}, model.ParserEvent{Kind: model.EventCharacters}, nil, 0)
	assert.Empty(t, result.Violations)
}

func TestCheckConventionalNameIsClean(t *testing.T) {
	c := New()
	result := c.Check(&rule.Context{}, startElement("item", "item"), nil, 0)
	assert.Empty(t, result.Violations)
}

func TestCheckUnconventionalNameWarns(t *testing.T) {
	c := New()
	result := c.Check(&rule.Context{File: "a.xml"}, startElement("weird$name", "weird$name"), nil, 0)

	if assert.Len(t, result.Violations, 1) {
		assert.Equal(t, "structure", result.Violations[0].RuleID)
		assert.Equal(t, "warning", result.Violations[0].Severity)
		assert.False(t, result.Fatal)
	}
}

func TestCheckNamespacePrefixedNameIsExempt(t *testing.T) {
	c := New()
	result := c.Check(&rule.Context{}, startElement("ns:weird$name", "weird$name"), nil, 0)
	assert.Empty(t, result.Violations)
}

func TestFinalizeIsNoOp(t *testing.T) {
	c := New()
	assert.Nil(t, c.Finalize(&rule.Context{}, []string{"a"}))
}
