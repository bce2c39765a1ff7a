package benchmark

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunReportsBothMethodsForWellFormedDocument(t *testing.T) {
	path := writeDoc(t, `<root><child>text</child></root>`)

	comp, err := Run(context.Background(), path, time.Second)
	require.NoError(t, err)

	assert.True(t, comp.Streaming.Success)
	assert.Empty(t, comp.Streaming.Error)
	assert.True(t, comp.Tree.Success)
	assert.Empty(t, comp.Tree.Error)
	assert.Equal(t, MethodStreaming, comp.Streaming.Method)
	assert.Equal(t, MethodTree, comp.Tree.Method)
}

func TestRunStreamingFailureIsSuccessValuedRecord(t *testing.T) {
	path := writeDoc(t, `<root><unclosed></root>`)

	comp, err := Run(context.Background(), path, time.Second)
	require.NoError(t, err)

	assert.True(t, comp.Streaming.Success)
	assert.NotEmpty(t, comp.Streaming.Error)
}

func TestRunMissingFileReturnsError(t *testing.T) {
	_, err := Run(context.Background(), filepath.Join(t.TempDir(), "missing.xml"), time.Second)
	require.Error(t, err)
}

func TestRunUsesDefaultTimeoutWhenZero(t *testing.T) {
	path := writeDoc(t, `<root/>`)
	comp, err := Run(context.Background(), path, 0)
	require.NoError(t, err)
	assert.True(t, comp.Streaming.Success)
}
