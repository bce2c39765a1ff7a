package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farukalpay/xml-lib-sub000/internal/events"
)

func run(t *testing.T, xmlSrc string) Fragment {
	t.Helper()
	parser := events.NewParser(strings.NewReader(xmlSrc))
	engine := New(Config{File: "doc.xml"})
	return engine.Run(parser.Events())
}

func TestScenarioPhaseOrderViolation(t *testing.T) {
	frag := run(t, `<document><phases>
		<phase name="start" timestamp="2026-01-01T00:00:00Z"/>
		<phase name="begin" timestamp="2026-01-01T00:01:00Z"/>
	</phases></document>`)

	require.NotEmpty(t, frag.Errors)
	found := false
	for _, e := range frag.Errors {
		if e.RuleID == "phase-order" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScenarioPhaseOrderValid(t *testing.T) {
	frag := run(t, `<document><phases>
		<phase name="begin" timestamp="2026-01-01T00:00:00Z"/>
		<phase name="start" timestamp="2026-01-01T00:01:00Z"/>
		<phase name="end" timestamp="2026-01-01T00:02:00Z"/>
	</phases></document>`)

	assert.True(t, frag.IsValid)
}

func TestScenarioTemporalMonotonicityViolation(t *testing.T) {
	frag := run(t, `<document><phases>
		<phase name="begin" timestamp="2026-01-01T00:05:00Z"/>
		<phase name="start" timestamp="2026-01-01T00:01:00Z"/>
	</phases></document>`)

	require.NotEmpty(t, frag.Errors)
	found := false
	for _, e := range frag.Errors {
		if e.RuleID == "temporal-monotonicity" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScenarioUnparsableTimestampIsWarningNotError(t *testing.T) {
	frag := run(t, `<document><phases>
		<phase name="begin" timestamp="not-a-timestamp"/>
	</phases></document>`)

	assert.True(t, frag.IsValid)
	require.NotEmpty(t, frag.Warnings)
	assert.Equal(t, "temporal", frag.Warnings[0].RuleID)
}

func TestScenarioUnconventionalElementNameIsWarning(t *testing.T) {
	frag := run(t, `<root><naïve/></root>`)

	assert.True(t, frag.IsValid)
	found := false
	for _, w := range frag.Warnings {
		if strings.Contains(w.Message, "unconventional") {
			found = true
		}
	}
	assert.True(t, found)
}
