package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/aliasconfig"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/importscan"
)

func newGraphCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "graph <path>",
		Short: "Dump the raw import graph for a repository snapshot",
		Long:  "Extracts the import graph without running cycle detection, for debugging alias resolution and file traversal.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath := args[0]

			aliases, err := aliasconfig.New().Load(repoPath)
			if err != nil {
				return err
			}

			graph, stats, err := importscan.New().Extract(repoPath, aliases)
			if err != nil {
				return fmt.Errorf("graph: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(graph)
			}

			for _, entry := range graph {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", entry.FilePath)
				for _, imp := range entry.Imports {
					fmt.Fprintf(cmd.OutOrStdout(), "  -> %s\n", imp)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d files analyzed, %d unresolved imports\n", stats.AnalyzedFileCount, stats.UnresolvedImportCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
