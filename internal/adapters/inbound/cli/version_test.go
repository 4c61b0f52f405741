package cli_test

import (
	"bytes"
	"testing"

	"github.com/arcsight-ai/arcsight/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand_PrintsVersionAndCommit(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "arcsight")
	assert.Contains(t, buf.String(), "dev")
}
