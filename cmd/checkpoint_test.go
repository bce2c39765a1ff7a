package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointListWithNoCheckpointsReportsNone(t *testing.T) {
	dir := t.TempDir()
	cmd := GetRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"checkpoint", "list", "--dir", dir, "missing.xml"})

	require.NoError(t, cmd.Execute())
}

func TestCheckpointListAfterValidateWithCheckpointing(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), "doc.xml")
	generateFixture(t, fixture)

	checkpointDir := t.TempDir()
	reportPath := filepath.Join(t.TempDir(), "report.txt")

	cmd := GetRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"validate",
		"--checkpoint-dir", checkpointDir,
		"--checkpoint-interval-bytes=64",
		"--output", reportPath,
		fixture,
	})
	require.NoError(t, cmd.Execute())

	cmd = GetRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"checkpoint", "list", "--dir", checkpointDir, fixture})
	require.NoError(t, cmd.Execute())
}

func TestCheckpointDeleteRemovesCheckpoints(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), "doc.xml")
	generateFixture(t, fixture)

	checkpointDir := t.TempDir()
	reportPath := filepath.Join(t.TempDir(), "report.txt")

	cmd := GetRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"validate",
		"--checkpoint-dir", checkpointDir,
		"--checkpoint-interval-bytes=64",
		"--output", reportPath,
		fixture,
	})
	require.NoError(t, cmd.Execute())

	cmd = GetRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"checkpoint", "delete", "--dir", checkpointDir, fixture})
	require.NoError(t, cmd.Execute())
}

func TestCheckpointListRequiresDirFlag(t *testing.T) {
	cmd := GetRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"checkpoint", "list", "some.xml"})

	assert.Error(t, cmd.Execute())
}
