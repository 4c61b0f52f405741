// Package attribution implements the root-cause attributor of spec.md
// §4.6: for each new cycle it finds the single added, changed-file-sourced
// edge responsible, and anchors it to a diff line when one is found.
package attribution

import (
	"sort"
	"strings"

	"github.com/arcsight-ai/arcsight/internal/domain"
	"github.com/arcsight-ai/arcsight/internal/domain/importparse"
	"github.com/arcsight-ai/arcsight/internal/domain/pathnorm"
)

// Result is the output of Attribute.
type Result struct {
	RootCauseEdges []domain.RootCauseEdge
	ErrorDetected  bool
}

// edgeSet is a set of directed (from, to) pairs, keyed for O(1) lookup.
type edgeSet map[[2]domain.NormalizedPath]bool

// Attribute finds the root-cause edge of every cycle in newCycles, dropping
// cycles for which no attributable edge exists. changedFiles is trusted to
// already be normalized. headGraph/baseGraph are trusted well-formed import
// graphs. hunks supplies the head-side added lines used to locate the
// import statement responsible for an edge.
func Attribute(newCycles []domain.CanonicalCycle, changedFiles []domain.NormalizedPath, headGraph, baseGraph domain.ImportGraph, hunks []domain.DiffHunk) Result {
	nodeLists := make([][]domain.NormalizedPath, len(newCycles))
	for i, c := range newCycles {
		nodes, ok := splitCycle(c)
		if !ok {
			return Result{ErrorDetected: true}
		}
		nodeLists[i] = nodes
	}

	changed := make(map[domain.NormalizedPath]bool, len(changedFiles))
	for _, f := range changedFiles {
		changed[f] = true
	}

	headEdges := buildEdgeSet(headGraph)
	baseEdges := buildEdgeSet(baseGraph)
	hunksByFile := make(map[domain.NormalizedPath][]domain.AddedLine, len(hunks))
	for _, h := range hunks {
		hunksByFile[h.FilePath] = h.AddedLines
	}

	var edges []domain.RootCauseEdge
	for i, nodes := range nodeLists {
		edge, ok := attributeOne(nodes, changed, headEdges, baseEdges)
		if !ok {
			continue
		}
		edge.CanonicalCycle = newCycles[i]
		attachDiffLine(&edge, hunksByFile, headGraph)
		edges = append(edges, edge)
	}

	if edges == nil {
		edges = []domain.RootCauseEdge{}
	}
	return Result{RootCauseEdges: edges}
}

// splitCycle parses "p1 → p2 → … → p1" into its node list without the
// repeated closing node, requiring at least 2 distinct positions.
func splitCycle(c domain.CanonicalCycle) ([]domain.NormalizedPath, bool) {
	parts := strings.Split(string(c), domain.CycleSeparator)
	if len(parts) < 2 {
		return nil, false
	}
	// Self-cycle "p → p": two identical parts, one node.
	if len(parts) == 2 && parts[0] == parts[1] {
		return []domain.NormalizedPath{domain.NormalizedPath(parts[0])}, true
	}
	if len(parts) < 3 || parts[0] != parts[len(parts)-1] {
		return nil, false
	}
	nodes := make([]domain.NormalizedPath, len(parts)-1)
	for i := 0; i < len(parts)-1; i++ {
		nodes[i] = domain.NormalizedPath(parts[i])
	}
	return nodes, true
}

func buildEdgeSet(graph domain.ImportGraph) edgeSet {
	set := make(edgeSet)
	for _, e := range graph {
		for _, imp := range e.Imports {
			set[[2]domain.NormalizedPath{e.FilePath, imp}] = true
		}
	}
	return set
}

func attributeOne(nodes []domain.NormalizedPath, changed map[domain.NormalizedPath]bool, headEdges, baseEdges edgeSet) (domain.RootCauseEdge, bool) {
	n := len(nodes)
	var candidates [][2]domain.NormalizedPath

	if n == 1 {
		pair := [2]domain.NormalizedPath{nodes[0], nodes[0]}
		if headEdges[pair] && !baseEdges[pair] && changed[nodes[0]] {
			candidates = append(candidates, pair)
		}
	} else {
		for i := 0; i < n; i++ {
			from := nodes[i]
			to := nodes[(i+1)%n]
			pair := [2]domain.NormalizedPath{from, to}
			if headEdges[pair] && !baseEdges[pair] && changed[from] {
				candidates = append(candidates, pair)
			}
		}
	}

	if len(candidates) == 0 {
		return domain.RootCauseEdge{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i][0] != candidates[j][0] {
			return candidates[i][0] < candidates[j][0]
		}
		return candidates[i][1] < candidates[j][1]
	})
	best := candidates[0]
	return domain.RootCauseEdge{From: best[0], To: best[1]}, true
}

// attachDiffLine scans the head-side added lines of edge.From for the first
// line whose specifier resolves to edge.To. A relative specifier is joined
// against edge.From's own directory exactly the way the extractor joins it,
// since a hand-written specifier is relative to the importing file, not to
// the repository root. A bare or alias specifier carries no directory
// information to resolve without filesystem access, so it is matched on the
// target's own basename instead.
func attachDiffLine(edge *domain.RootCauseEdge, hunksByFile map[domain.NormalizedPath][]domain.AddedLine, headGraph domain.ImportGraph) {
	lines := hunksByFile[edge.From]
	if len(lines) == 0 {
		return
	}
	fromDir := pathnorm.Dir(edge.From)
	toStem := specifierStem(edge.To)
	toBase := baseName(toStem)

	for _, l := range lines {
		if lineClosesEdge(l.Content, fromDir, toStem, toBase) {
			edge.LineNumber = l.LineNumber
			edge.ImportLine = l.Content
			return
		}
	}
}

// lineClosesEdge reports whether any specifier parsed out of line resolves
// to the cycle-closing target described by toStem/toBase.
func lineClosesEdge(line string, fromDir domain.NormalizedPath, toStem, toBase string) bool {
	for _, spec := range importparse.Extract(line) {
		if isRelativeImportSpecifier(spec.Text) {
			if joined, ok := pathnorm.Join(fromDir, spec.Text); ok && specifierStem(joined) == toStem {
				return true
			}
			continue
		}
		if baseName(spec.Text) == toBase {
			return true
		}
	}
	return false
}

func isRelativeImportSpecifier(s string) bool {
	return strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../")
}

// baseName returns the final "/"-separated segment of s.
func baseName(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// specifierStem derives the repo-relative file stem (directory/basename
// without extension, with a trailing "/index" dropped) of a target path,
// e.g. "src/utils/math.ts" -> "src/utils/math", "src/x/index.ts" -> "src/x".
func specifierStem(p domain.NormalizedPath) string {
	s := string(p)
	for _, ext := range []string{".tsx", ".ts", ".jsx", ".js"} {
		if strings.HasSuffix(s, ext) {
			s = strings.TrimSuffix(s, ext)
			break
		}
	}
	if idx := strings.LastIndex(s, "/index"); idx >= 0 && idx == len(s)-len("/index") {
		s = s[:idx]
	}
	return s
}
