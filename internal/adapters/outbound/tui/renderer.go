// Package tui renders ArcSight's two result shapes as styled terminal
// output, in the teacher's warm-palette lipgloss idiom.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/camelcase"

	"github.com/arcsight-ai/arcsight/internal/domain"
	"github.com/arcsight-ai/arcsight/internal/domain/confidence"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	cycleStyle    = lipgloss.NewStyle().Foreground(danger)
	confHighStyle = lipgloss.NewStyle().Bold(true).Foreground(success)
	confLowStyle  = lipgloss.NewStyle().Bold(true).Foreground(warning)
	edgeStyle     = lipgloss.NewStyle().Foreground(fg)
	lineTagStyle  = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderPRCycleAnalysis renders a PR's cycle-analysis result. An empty
// result (the silent-mode shape) renders a single pass line rather than a
// misleading "0 issues out of 0 checked" summary.
func RenderPRCycleAnalysis(result domain.PRCycleAnalysis) string {
	var b strings.Builder

	title := headerStyle.Render("arcsight")
	if len(result.RelevantCycles) == 0 {
		subtitle := dimStyle.Render("no attributable new cycles")
		b.WriteString(boxStyle.Render(title + "\n" + subtitle))
		b.WriteString("\n")
		return b.String()
	}

	subtitle := cycleStyle.Render(fmt.Sprintf("%d new cycle(s) introduced", len(result.RelevantCycles)))
	confStyled := confidenceBadge(result.Confidence)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + confStyled))
	b.WriteString("\n\n")

	for i, cyc := range result.RelevantCycles {
		var edge domain.RootCauseEdge
		if i < len(result.RootCauses) {
			edge = result.RootCauses[i]
		}
		renderCycle(&b, cyc, edge)
		if i < len(result.RelevantCycles)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n")
	return b.String()
}

func renderCycle(b *strings.Builder, cyc domain.CanonicalCycle, edge domain.RootCauseEdge) {
	fmt.Fprintf(b, "  %s\n", cycleStyle.Render(string(cyc)))
	if edge.From == "" {
		return
	}
	fmt.Fprintf(b, "    %s %s %s %s\n",
		dimStyle.Render("root cause:"),
		edgeStyle.Render(string(edge.From)),
		dimStyle.Render("→"),
		edgeStyle.Render(string(edge.To)),
	)
	if edge.LineNumber > 0 {
		fmt.Fprintf(b, "    %s %s\n",
			lineTagStyle.Render(fmt.Sprintf("line %d:", edge.LineNumber)),
			faintStyle.Render(strings.TrimSpace(edge.ImportLine)),
		)
	}
}

// RenderCommitAnalysis renders a single-commit analysis, used by the
// `arcsight analyze-commit` command.
func RenderCommitAnalysis(result domain.CommitAnalysis) string {
	var b strings.Builder

	title := headerStyle.Render("arcsight")
	subtitle := dimStyle.Render(fmt.Sprintf("%d file(s) in import graph", len(result.ImportGraph)))
	confStyled := confidenceBadge(result.Confidence)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + confStyled))
	b.WriteString("\n\n")

	if len(result.CanonicalCycles) == 0 {
		b.WriteString("  " + dimStyle.Render("no cycles detected") + "\n")
		return b.String()
	}

	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("Cycles (%d)", len(result.CanonicalCycles))) + "\n\n")
	for _, cyc := range result.CanonicalCycles {
		fmt.Fprintf(&b, "  %s\n", cycleStyle.Render(string(cyc)))
	}
	return b.String()
}

// ExplainLines formats the one added line that closed each new cycle,
// stripped of any ANSI escape sequences so it stays byte-clean when
// embedded into a --json payload rather than printed to a terminal.
func ExplainLines(result domain.PRCycleAnalysis) []string {
	var lines []string
	for _, edge := range result.RootCauses {
		if edge.ImportLine == "" {
			continue
		}
		line := fmt.Sprintf("%s:%d: %s (%s)", edge.From, edge.LineNumber, edge.ImportLine, humanizeTarget(edge.To))
		lines = append(lines, ansi.Strip(line))
	}
	return lines
}

// humanizeTarget turns a target path's base name into a space-separated
// hint, splitting camelCase segments so "featureFlags.ts" reads as
// "feature Flags".
func humanizeTarget(p domain.NormalizedPath) string {
	base := strings.TrimSuffix(filepath.Base(string(p)), filepath.Ext(string(p)))
	return strings.Join(camelcase.Split(base), " ")
}

func confidenceBadge(score float64) string {
	style := confLowStyle
	if score >= confidence.HighThreshold {
		style = confHighStyle
	}
	return style.Render(fmt.Sprintf("confidence %.2f", score))
}
