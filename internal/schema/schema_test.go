package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchema(t *testing.T, yamlContent string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))
	return path
}

func TestLoadDefinitionDefaultsToSchematron(t *testing.T) {
	path := writeSchema(t, `
assertions:
  - select: "//missing"
    message: "missing element"
`)
	def, err := LoadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, KindSchematron, def.Kind)
}

func TestCompileRejectsInvalidXPath(t *testing.T) {
	_, err := Compile(&Definition{Assertions: []Assertion{{Select: "//["}}})
	require.Error(t, err)
}

func TestValidateReportsMatchingAssertion(t *testing.T) {
	def := &Definition{
		Kind: KindSchematron,
		Assertions: []Assertion{
			{Select: "//forbidden", Message: "forbidden element present", Severity: "error"},
		},
	}
	compiled, err := Compile(def)
	require.NoError(t, err)

	violations, err := Validate(strings.NewReader(`<root><forbidden/></root>`), "doc.xml", compiled)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "forbidden element present", violations[0].Message)
	assert.Equal(t, "schematron", violations[0].RuleID)
}

func TestValidateNoMatchesProducesNoViolations(t *testing.T) {
	def := &Definition{Assertions: []Assertion{{Select: "//forbidden", Message: "nope"}}}
	compiled, err := Compile(def)
	require.NoError(t, err)

	violations, err := Validate(strings.NewReader(`<root><ok/></root>`), "doc.xml", compiled)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCacheCompilesOnceAndReuses(t *testing.T) {
	path := writeSchema(t, `
kind: relaxng
assertions:
  - select: "//bad"
    message: "bad element"
`)
	cache, err := NewCache(4)
	require.NoError(t, err)

	c1, err := cache.Get(path)
	require.NoError(t, err)
	c2, err := cache.Get(path)
	require.NoError(t, err)
	assert.Same(t, c1, c2)
	assert.Equal(t, "relaxng", c1.RuleID())
}
