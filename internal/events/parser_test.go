package events

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farukalpay/xml-lib-sub000/internal/model"
)

func collect(t *testing.T, src string) ([]model.ParserEvent, error) {
	t.Helper()
	p := NewParser(strings.NewReader(src))
	var evs []model.ParserEvent
	for ev, err := range p.Events() {
		if err != nil {
			return evs, err
		}
		evs = append(evs, ev)
	}
	return evs, nil
}

func TestParserEmitsStartAndEndDocument(t *testing.T) {
	evs, err := collect(t, `<root/>`)
	require.NoError(t, err)
	require.NotEmpty(t, evs)
	assert.Equal(t, model.EventStartDocument, evs[0].Kind)
	assert.Equal(t, model.EventEndDocument, evs[len(evs)-1].Kind)
}

func TestParserTracksQualifiedNamesAndAttributes(t *testing.T) {
	evs, err := collect(t, `<root id="1"><child name="x">hi</child></root>`)
	require.NoError(t, err)

	var start model.ParserEvent
	found := false
	for _, ev := range evs {
		if ev.Kind == model.EventStartElement && ev.QualifiedName == "child" {
			start = ev
			found = true
		}
	}
	require.True(t, found)
	require.Len(t, start.Attributes, 1)
	assert.Equal(t, "name", start.Attributes[0].Name)
	assert.Equal(t, "x", start.Attributes[0].Value)
}

func TestParserResolvesNamespacePrefix(t *testing.T) {
	evs, err := collect(t, `<root xmlns:a="urn:test"><a:item/></root>`)
	require.NoError(t, err)

	found := false
	for _, ev := range evs {
		if ev.Kind == model.EventStartElement && ev.QualifiedName == "a:item" {
			found = true
			assert.Equal(t, "urn:test", ev.NamespaceURI)
		}
	}
	assert.True(t, found)
}

func TestParserRejectsDuplicateAttributes(t *testing.T) {
	_, err := collect(t, `<root a="1" a="2"/>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate attribute")
}

func TestParserSuppressesTopLevelWhitespace(t *testing.T) {
	evs, err := collect(t, "  \n<root/>  \n")
	require.NoError(t, err)
	for _, ev := range evs {
		if ev.Kind == model.EventCharacters {
			t.Fatalf("unexpected top-level characters event: %+v", ev)
		}
	}
}

func TestParserMalformedDocumentReportsPosition(t *testing.T) {
	_, err := collect(t, `<root><unclosed></root>`)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Positive(t, pe.Line)
}

func TestParserStateReflectsProgress(t *testing.T) {
	p := NewParser(strings.NewReader(`<root><a/></root>`))
	for ev, err := range p.Events() {
		require.NoError(t, err)
		if ev.Kind == model.EventStartElement && ev.QualifiedName == "a" {
			break
		}
	}
	state := p.State()
	assert.Positive(t, state.BytesProcessed)
	assert.NotEmpty(t, state.ElementStack)
}
