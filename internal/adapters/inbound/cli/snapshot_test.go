package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arcsight-ai/arcsight/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCommand_PrintsCycleCountAndConfidence(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	dir := t.TempDir()
	cmd.SetArgs([]string{"snapshot", cyclicFixtureDir, "--dir", dir})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "wrote snapshot:")
	assert.Contains(t, buf.String(), "cycle(s)")
}

func TestSnapshotCommand_NonGitRepoWritesNoFile(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	dir := t.TempDir()
	cmd.SetArgs([]string{"snapshot", cyclicFixtureDir, "--dir", dir})
	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "snapshotting a non-git repo path has no HEAD sha to key the record on")
}

func TestSnapshotCommand_MissingPathArgFails(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"snapshot"})
	assert.Error(t, cmd.Execute())
}

func TestSnapshotCommand_DefaultDirFlag(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	dirFlag := cmd.Flags()
	_ = dirFlag
	snap, _, err := cmd.Find([]string{"snapshot"})
	require.NoError(t, err)
	flag := snap.Flags().Lookup("dir")
	require.NotNil(t, flag)
	assert.Equal(t, filepath.Join(".arcsight", "snapshots"), filepath.Clean(flag.DefValue))
}
