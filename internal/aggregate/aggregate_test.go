package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules"
)

func TestAddFileAccumulatesErrorsAndWarnings(t *testing.T) {
	agg := New()
	agg.AddFile("a.xml", "sum1", rules.Fragment{
		Errors:   []model.ValidationError{{File: "a.xml", Message: "bad", Severity: "error", RuleID: "R1"}},
		Warnings: []model.ValidationError{{File: "a.xml", Message: "meh", Severity: "warning", RuleID: "R2"}},
	}, true)

	result := agg.Finish()
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 1)
	assert.Len(t, result.Warnings, 1)
	assert.Equal(t, []string{"a.xml"}, result.ValidatedFiles)
	assert.Equal(t, "sum1", result.Checksums["a.xml"])
	assert.True(t, result.UsedStreaming)
}

func TestFinishValidWhenNoErrors(t *testing.T) {
	agg := New()
	agg.AddFile("a.xml", "sum1", rules.Fragment{
		Warnings: []model.ValidationError{{File: "a.xml", Message: "meh", Severity: "warning"}},
	}, true)

	result := agg.Finish()
	assert.True(t, result.IsValid)
}

func TestDedupIdenticalViolations(t *testing.T) {
	agg := New()
	dup := model.ValidationError{File: "a.xml", Line: 1, Column: 2, Message: "bad", Severity: "error", RuleID: "R1"}
	agg.AddFile("a.xml", "sum", rules.Fragment{Errors: []model.ValidationError{dup, dup}}, true)

	result := agg.Finish()
	assert.Len(t, result.Errors, 1)
}

func TestAddCrossFileViolations(t *testing.T) {
	agg := New()
	agg.AddFile("a.xml", "sum", rules.Fragment{}, true)
	agg.AddCrossFileViolations([]model.ValidationError{
		{File: "a.xml", Message: "dangling reference", Severity: "error", RuleID: "RC"},
	})

	result := agg.Finish()
	assert.Len(t, result.Errors, 1)
	assert.False(t, result.IsValid)
}
