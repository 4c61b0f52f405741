package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/aliasconfig"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/importscan"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/monorepo"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/tui"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/vcs"
	"github.com/arcsight-ai/arcsight/internal/application"
)

func newAnalyzeCommitCmd() *cobra.Command {
	var (
		jsonOutput      bool
		excludePatterns []string
	)

	cmd := &cobra.Command{
		Use:   "analyze-commit <path>",
		Short: "Detect import cycles in a single commit's working tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath := args[0]

			orch := application.New(
				importscan.New(excludePatterns...),
				aliasconfig.New(),
				vcs.New(),
				nil,
				monorepo.New(),
			)

			result := orch.AnalyzeCommit(cmd.Context(), repoPath)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCommitAnalysis(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringArrayVar(&excludePatterns, "exclude-pattern", nil, "Additional glob pattern to exclude from analysis (repeatable)")
	return cmd
}
