package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/aliasconfig"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/importscan"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/monorepo"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/snapshot"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/vcs"
	"github.com/arcsight-ai/arcsight/internal/application"
)

func newSnapshotCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "snapshot <path>",
		Short: "Analyze the repository at HEAD and append an NDJSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath := args[0]

			writer := snapshot.New(dir)
			orch := application.New(
				importscan.New(),
				aliasconfig.New(),
				vcs.New(),
				writer,
				monorepo.New(),
			)

			result := orch.AnalyzeCommit(cmd.Context(), repoPath)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote snapshot: %d cycle(s), confidence %.2f\n", len(result.CanonicalCycles), result.Confidence)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".arcsight/snapshots", "Directory to append NDJSON snapshot files to")
	return cmd
}
