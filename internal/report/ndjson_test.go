package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farukalpay/xml-lib-sub000/internal/model"
)

func sampleResult() model.ValidationResult {
	r := model.ValidationResult{
		ValidatedFiles: []string{"a.xml"},
		Checksums:      map[string]string{"a.xml": "abc123"},
		Timestamp:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UsedStreaming:  true,
		Errors: []model.ValidationError{
			{File: "a.xml", Line: 3, Column: 4, Message: "bad", RuleID: "structure", Severity: "error"},
		},
		Warnings: []model.ValidationError{
			{File: "a.xml", Line: 5, Column: 1, Message: "meh", RuleID: "temporal", Severity: "warning"},
		},
	}
	r.Recompute()
	return r
}

func TestWriteNDJSONEmitsOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNDJSON(&buf, sampleResult()))

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 3)

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &summary))
	assert.Equal(t, "validation_result", summary["type"])
	assert.Equal(t, false, summary["is_valid"])

	var errLine map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &errLine))
	assert.Equal(t, "error", errLine["type"])
	assert.Equal(t, "structure", errLine["rule_id"])

	var warnLine map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &warnLine))
	assert.Equal(t, "warning", warnLine["type"])
}
