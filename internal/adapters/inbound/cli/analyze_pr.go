package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/aliasconfig"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/importscan"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/monorepo"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/snapshot"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/tui"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/vcs"
	"github.com/arcsight-ai/arcsight/internal/application"
	"github.com/arcsight-ai/arcsight/internal/domain"
)

func newAnalyzePRCmd() *cobra.Command {
	var (
		changed         string
		jsonOutput      bool
		ciMode          bool
		failOnCycle     bool
		explain         bool
		snapshotDir     string
		excludePatterns []string
	)

	cmd := &cobra.Command{
		Use:   "analyze-pr <base> <head> <path>",
		Short: "Detect import cycles introduced between a base and head commit",
		Long:  "Checks out base and head in turn, diffs their import graphs, and reports only the new cycles that touch a changed file.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseSha, headSha, repoPath := args[0], args[1], args[2]
			changedFiles := splitChanged(changed)

			var writer domain.SnapshotWriter
			if snapshotDir != "" {
				writer = snapshot.New(snapshotDir)
			}

			orch := application.New(
				importscan.New(excludePatterns...),
				aliasconfig.New(),
				vcs.New(),
				writer,
				monorepo.New(),
			)

			result := orch.AnalyzePR(cmd.Context(), baseSha, headSha, changedFiles, repoPath)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if explain {
					payload := explainedResult{PRCycleAnalysis: result, Explain: tui.ExplainLines(result)}
					if err := enc.Encode(payload); err != nil {
						return err
					}
				} else if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderPRCycleAnalysis(result))
				if explain {
					printExplain(cmd, result)
				}
			}

			if ciMode && failOnCycle && len(result.RelevantCycles) > 0 {
				return fmt.Errorf("%d new import cycle(s) introduced", len(result.RelevantCycles))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&changed, "changed", "", "Comma-separated list of changed file paths")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: combine with --fail-on-cycle to set a non-zero exit code")
	cmd.Flags().BoolVar(&failOnCycle, "fail-on-cycle", false, "Exit non-zero when --ci is set and a new cycle is found")
	cmd.Flags().BoolVar(&explain, "explain", false, "Print the added line that closed each new cycle")
	cmd.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "Append commit analyses to NDJSON snapshots in this directory")
	cmd.Flags().StringArrayVar(&excludePatterns, "exclude-pattern", nil, "Additional glob pattern to exclude from analysis (repeatable)")

	return cmd
}

// explainedResult adds the --explain lines to the JSON payload without
// disturbing PRCycleAnalysis's own field order.
type explainedResult struct {
	domain.PRCycleAnalysis
	Explain []string `json:"explain,omitempty"`
}

func splitChanged(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// printExplain prints the single added line that closed each new cycle,
// when the attributor found one. Allowed outside silent mode per spec.md:
// the silencing rule only forbids diagnostics when the result is withheld.
func printExplain(cmd *cobra.Command, result domain.PRCycleAnalysis) {
	for _, edge := range result.RootCauses {
		if edge.ImportLine == "" {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s:%d: %s\n", edge.From, edge.LineNumber, edge.ImportLine)
	}
}
