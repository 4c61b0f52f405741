// Package safety implements the invariant validator and safety switch of
// spec.md §4.8–§4.9, the last gate before a PR result is allowed to leave
// the orchestrator.
package safety

import (
	"strings"

	"github.com/arcsight-ai/arcsight/internal/domain"
)

// ValidationResult is the output of ValidateInvariants.
type ValidationResult struct {
	AllInvariantsSatisfied bool
	Violations             []string
}

// ValidateInvariants cross-checks the structural contracts of spec.md §4.8
// against a set of canonical cycles, an import graph, and the root-cause
// edges that claim to belong to it.
func ValidateInvariants(cycles []domain.CanonicalCycle, graph domain.ImportGraph, edges []domain.RootCauseEdge) ValidationResult {
	var violations []string

	seenCycles := make(map[domain.CanonicalCycle]bool, len(cycles))
	for _, c := range cycles {
		if !isValidCycleFormat(c) {
			violations = append(violations, "invalid cycle format: "+string(c))
			continue
		}
		if seenCycles[c] {
			violations = append(violations, "duplicate cycle: "+string(c))
			continue
		}
		seenCycles[c] = true
	}

	if !isGraphWellFormed(graph) {
		violations = append(violations, "import graph is not well-formed")
	}

	cycleSet := make(map[domain.CanonicalCycle]bool, len(cycles))
	for _, c := range cycles {
		cycleSet[c] = true
	}
	for _, e := range edges {
		if e.From == "" || e.To == "" {
			violations = append(violations, "root-cause edge has empty endpoint")
			continue
		}
		if e.CanonicalCycle == "" {
			violations = append(violations, "root-cause edge has empty canonical cycle")
			continue
		}
		if e.LineNumber < 0 {
			violations = append(violations, "root-cause edge has negative line number")
		}
		if !cycleSet[e.CanonicalCycle] {
			violations = append(violations, "root-cause edge references unknown cycle: "+string(e.CanonicalCycle))
		}
	}

	if violations == nil {
		violations = []string{}
	}
	return ValidationResult{AllInvariantsSatisfied: len(violations) == 0, Violations: violations}
}

// isValidCycleFormat checks the format rules spec.md §4.5/§4.8 impose on a
// canonical cycle string: contains the separator, splits to ≥ 2 nodes,
// lowercase, and free of backslashes.
func isValidCycleFormat(c domain.CanonicalCycle) bool {
	s := string(c)
	if s == "" {
		return false
	}
	if strings.Contains(s, "\\") {
		return false
	}
	if s != strings.ToLower(s) {
		return false
	}
	if !strings.Contains(s, domain.CycleSeparator) {
		return false
	}
	parts := strings.Split(s, domain.CycleSeparator)
	return len(parts) >= 2
}

// isGraphWellFormed re-validates the import-graph invariants the extractor
// produces: ascending unique filePaths, ascending deduplicated imports per
// entry.
func isGraphWellFormed(graph domain.ImportGraph) bool {
	for i := 1; i < len(graph); i++ {
		if graph[i].FilePath <= graph[i-1].FilePath {
			return false
		}
	}
	for _, e := range graph {
		if e.FilePath == "" {
			return false
		}
		for i := 1; i < len(e.Imports); i++ {
			if e.Imports[i] <= e.Imports[i-1] {
				return false
			}
		}
	}
	return true
}
