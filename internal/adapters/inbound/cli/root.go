package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "arcsight",
		Short:         "Catch import cycles before they land",
		Long:          "ArcSight analyzes a JS/TS repository's import graph and flags dependency cycles introduced by a pull request, attributing each to the changed file that closed it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAnalyzeCommitCmd())
	cmd.AddCommand(newAnalyzePRCmd())
	cmd.AddCommand(newGraphCmd())
	cmd.AddCommand(newSnapshotCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
