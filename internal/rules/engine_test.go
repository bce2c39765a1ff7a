package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farukalpay/xml-lib-sub000/internal/checkpoint"
	"github.com/farukalpay/xml-lib-sub000/internal/crossfile"
	"github.com/farukalpay/xml-lib-sub000/internal/events"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
)

func TestEngineValidatesWellFormedDocument(t *testing.T) {
	parser := events.NewParser(strings.NewReader(`<root><child id="1">text</child></root>`))
	engine := New(Config{File: "doc.xml"})

	frag := engine.Run(parser.Events())
	assert.True(t, frag.IsValid)
	assert.Empty(t, frag.Errors)
	assert.Equal(t, 2, frag.ElementsValidated)
}

func TestEngineReportsUnclosedElement(t *testing.T) {
	parser := events.NewParser(strings.NewReader(`<root><child>`))
	engine := New(Config{File: "doc.xml"})

	frag := engine.Run(parser.Events())
	assert.False(t, frag.IsValid)
	require.NotEmpty(t, frag.Errors)
}

func TestEngineHaltsAtMaxDepth(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString("<a>")
	}
	for i := 0; i < 10; i++ {
		b.WriteString("</a>")
	}

	parser := events.NewParser(strings.NewReader(b.String()))
	engine := New(Config{File: "doc.xml", MaxDepth: 5})

	frag := engine.Run(parser.Events())
	assert.False(t, frag.IsValid)
	require.NotEmpty(t, frag.Errors)
	assert.Equal(t, "structure", frag.Errors[0].RuleID)
}

func TestEngineSyntaxErrorTranslatesToFragment(t *testing.T) {
	parser := events.NewParser(strings.NewReader(`<root><unclosed></root>`))
	engine := New(Config{File: "doc.xml"})

	frag := engine.Run(parser.Events())
	assert.False(t, frag.IsValid)
	require.NotEmpty(t, frag.Errors)
}

func TestEngineRunParserSavesCheckpoints(t *testing.T) {
	dir := t.TempDir()
	mgr := checkpoint.NewManager(dir, -1)

	var b strings.Builder
	b.WriteString("<root>")
	for i := 0; i < 200; i++ {
		b.WriteString("<item>some reasonably sized text content here</item>")
	}
	b.WriteString("</root>")

	parser := events.NewParser(strings.NewReader(b.String()))
	engine := New(Config{
		File:                    "big.xml",
		Checkpointer:            mgr,
		CheckpointIntervalBytes: 256,
	})

	frag := engine.RunParser(parser)
	assert.True(t, frag.IsValid)

	paths, err := mgr.ListFor("big.xml")
	require.NoError(t, err)
	assert.NotEmpty(t, paths)
}

func TestEngineReportsCrossFileDuplicateIDButKeepsValidating(t *testing.T) {
	idx := crossfile.New()
	idx.ObserveID("other.xml", "shared", model.Position{Line: 1, Column: 1})

	parser := events.NewParser(strings.NewReader(`<root id="shared"><child/></root>`))
	engine := New(Config{File: "doc.xml", CrossFile: idx})

	frag := engine.Run(parser.Events())
	require.Len(t, frag.Errors, 1)
	assert.Equal(t, "cross-file-id", frag.Errors[0].RuleID)
	assert.Equal(t, 2, frag.ElementsValidated)
}
