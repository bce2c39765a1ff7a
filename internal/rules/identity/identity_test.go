package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farukalpay/xml-lib-sub000/internal/crossfile"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/rule"
)

func startElement(qname, id string) model.ParserEvent {
	ev := model.ParserEvent{Kind: model.EventStartElement, QualifiedName: qname}
	if id != "" {
		ev.Attributes = []model.Attribute{{Name: "id", Value: id}}
	}
	return ev
}

func TestCheckIgnoresNonStartElementEvents(t *testing.T) {
	c := New()
	ctx := &rule.Context{File: "a.xml", CrossFile: crossfile.New()}

	result := c.Check(ctx, model.ParserEvent{Kind: model.EventEndElement}, nil, 0)
	assert.Empty(t, result.Violations)
}

func TestCheckIgnoresStartElementWithoutID(t *testing.T) {
	c := New()
	ctx := &rule.Context{File: "a.xml", CrossFile: crossfile.New()}

	result := c.Check(ctx, startElement("item", ""), nil, 0)
	assert.Empty(t, result.Violations)
}

func TestCheckFirstOccurrenceIsClean(t *testing.T) {
	c := New()
	ctx := &rule.Context{File: "a.xml", CrossFile: crossfile.New()}

	result := c.Check(ctx, startElement("item", "x1"), nil, 0)
	assert.Empty(t, result.Violations)
}

func TestCheckDuplicateIDAcrossCallsIsReported(t *testing.T) {
	c := New()
	idx := crossfile.New()
	ctx := &rule.Context{File: "a.xml", CrossFile: idx}

	require.Empty(t, c.Check(ctx, startElement("item", "dup"), nil, 0).Violations)
	result := c.Check(ctx, startElement("other", "dup"), nil, 0)

	require.Len(t, result.Violations, 1)
	assert.Equal(t, "cross-file-id", result.Violations[0].RuleID)
	assert.Equal(t, "other", result.Violations[0].ElementName)
}

func TestCheckWithoutCrossFileIndexNeverReports(t *testing.T) {
	c := New()
	ctx := &rule.Context{File: "a.xml"}

	result := c.Check(ctx, startElement("item", "x1"), nil, 0)
	assert.Empty(t, result.Violations)
}

func TestFinalizeIsNoOp(t *testing.T) {
	c := New()
	assert.Nil(t, c.Finalize(&rule.Context{}, []string{"a", "b"}))
}

func TestCheckEnqueuesReferenceAttributeResolvedAtFinalize(t *testing.T) {
	c := New()
	idx := crossfile.New()
	ctx := &rule.Context{File: "a.xml", CrossFile: idx}

	ev := model.ParserEvent{
		Kind:          model.EventStartElement,
		QualifiedName: "phase",
		Attributes:    []model.Attribute{{Name: "ref-begin", Value: "p1"}},
	}
	require.Empty(t, c.Check(ctx, ev, nil, 0).Violations)

	violations := idx.Finalize()
	require.Len(t, violations, 1)
	assert.Equal(t, "cross-file-reference", violations[0].RuleID)
	assert.Contains(t, violations[0].Message, "p1")
}

func TestCheckEnqueuedReferenceResolvesCleanWhenTargetSeen(t *testing.T) {
	c := New()
	idx := crossfile.New()
	ctx := &rule.Context{File: "a.xml", CrossFile: idx}

	require.Empty(t, c.Check(ctx, startElement("phase", "p1"), nil, 0).Violations)

	ev := model.ParserEvent{
		Kind:          model.EventStartElement,
		QualifiedName: "phase",
		Attributes:    []model.Attribute{{Name: "ref-continuum", Value: "p1"}},
	}
	require.Empty(t, c.Check(ctx, ev, nil, 0).Violations)

	assert.Empty(t, idx.Finalize())
}

func TestCheckWithoutCrossFileIndexNeverEnqueuesReferences(t *testing.T) {
	c := New()
	ctx := &rule.Context{File: "a.xml"}

	ev := model.ParserEvent{
		Kind:          model.EventStartElement,
		QualifiedName: "phase",
		Attributes:    []model.Attribute{{Name: "ref-begin", Value: "p1"}},
	}
	result := c.Check(ctx, ev, nil, 0)
	assert.Empty(t, result.Violations)
}
