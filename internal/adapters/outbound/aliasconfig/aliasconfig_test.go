package aliasconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/aliasconfig"
	"github.com/arcsight-ai/arcsight/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
}

func TestLoad_ReadsTsconfigPaths(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "tsconfig.json", `{
		"compilerOptions": {
			"paths": {
				"@/*": ["src/*"]
			}
		}
	}`)

	l := aliasconfig.New()
	table, err := l.Load(root)
	require.NoError(t, err)
	assert.Equal(t, domain.AliasTable{"@/*": "src/*"}, table)
}

func TestLoad_MissingFileReturnsEmptyTable(t *testing.T) {
	l := aliasconfig.New()
	table, err := l.Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestLoad_TolerateComments(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "tsconfig.json", `{
		// leading comment
		"compilerOptions": {
			"paths": {
				"@config/*": ["src/config/*"], /* trailing */
			}
		}
	}`)

	l := aliasconfig.New()
	table, err := l.Load(root)
	require.NoError(t, err)
	assert.Equal(t, domain.AliasTable{"@config/*": "src/config/*"}, table)
}

func TestLoad_PrefersTsconfigOverJsconfig(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "tsconfig.json", `{"compilerOptions":{"paths":{"@/*":["src/*"]}}}`)
	writeConfig(t, root, "jsconfig.json", `{"compilerOptions":{"paths":{"@/*":["lib/*"]}}}`)

	l := aliasconfig.New()
	table, err := l.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "src/*", table["@/*"])
}

func TestLoad_MalformedJSONReturnsEmptyTable(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "tsconfig.json", `{ not json`)

	l := aliasconfig.New()
	table, err := l.Load(root)
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestLoad_NoPathsEntryReturnsEmptyTable(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "tsconfig.json", `{"compilerOptions":{"target":"es2020"}}`)

	l := aliasconfig.New()
	table, err := l.Load(root)
	require.NoError(t, err)
	assert.Empty(t, table)
}
