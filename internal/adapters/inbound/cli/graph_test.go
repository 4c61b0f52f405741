package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arcsight-ai/arcsight/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphCommand_PrintsImportsForEachFile(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"graph", cyclicFixtureDir})
	require.NoError(t, cmd.Execute())
	output := buf.String()
	assert.Contains(t, output, "a.ts")
	assert.Contains(t, output, "b.ts")
	assert.Contains(t, output, "files analyzed")
}

func TestGraphCommand_JSON(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"graph", cyclicFixtureDir, "--json"})
	require.NoError(t, cmd.Execute())

	var entries []map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &entries)
	require.NoError(t, err, "output should be a valid JSON array")
	assert.Len(t, entries, 2)
}

func TestGraphCommand_AliasedRepoResolvesImports(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"graph", "../../../../testdata/jsrepo/aliased", "--json"})
	require.NoError(t, cmd.Execute())

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.NotEmpty(t, entries)
}

func TestGraphCommand_MissingPathArgFails(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"graph"})
	assert.Error(t, cmd.Execute())
}
