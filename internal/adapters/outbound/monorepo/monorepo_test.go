package monorepo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/monorepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMonorepo_PackageJSONWorkspaces(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"workspaces":["packages/*"]}`), 0o644))

	d := monorepo.New()
	assert.True(t, d.IsMonorepo(dir))
}

func TestIsMonorepo_PnpmWorkspaceYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pnpm-workspace.yaml"), []byte("packages:\n  - 'packages/*'\n"), 0o644))

	d := monorepo.New()
	assert.True(t, d.IsMonorepo(dir))
}

func TestIsMonorepo_LernaJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lerna.json"), []byte(`{}`), 0o644))

	d := monorepo.New()
	assert.True(t, d.IsMonorepo(dir))
}

func TestIsMonorepo_PlainRepoIsFalse(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"app"}`), 0o644))

	d := monorepo.New()
	assert.False(t, d.IsMonorepo(dir))
}

func TestIsMonorepo_MissingPackageJSONIsFalse(t *testing.T) {
	d := monorepo.New()
	assert.False(t, d.IsMonorepo(t.TempDir()))
}
