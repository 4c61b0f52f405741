// Package cycle implements the deterministic cycle detector and differ of
// spec.md §4.4–§4.5: Tarjan SCC enumeration, Johnson-style elementary-cycle
// enumeration restricted to each SCC, canonicalization, and set-diffing of
// canonical cycle lists.
package cycle

import (
	"sort"
	"strings"

	"github.com/arcsight-ai/arcsight/internal/domain"
)

// DetectResult is the output of Detect.
type DetectResult struct {
	CanonicalCycles []domain.CanonicalCycle
	ErrorDetected   bool
}

// maxRecursionFactor bounds the DFS recursion depth cap proportional to
// node count, per spec.md §4.4's "fixed recursion-depth cap".
const maxRecursionFactor = 4
const minRecursionCap = 64

// Detect finds every elementary cycle in graph via Tarjan SCC enumeration
// followed by Johnson-style cycle enumeration within each non-trivial SCC.
// graph is trusted as already normalized; top-level entries may come in
// any order and are sorted by filePath first. Malformed input (duplicate
// filePath, unsorted/duplicated imports) yields ErrorDetected without
// partial results.
func Detect(graph domain.ImportGraph) DetectResult {
	sorted := append(domain.ImportGraph(nil), graph...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].FilePath < sorted[j].FilePath })
	graph = sorted

	if !isWellFormed(graph) {
		return DetectResult{CanonicalCycles: []domain.CanonicalCycle{}, ErrorDetected: true}
	}
	if len(graph) == 0 {
		return DetectResult{CanonicalCycles: []domain.CanonicalCycle{}}
	}

	nodes, _, adj := buildGraph(graph)

	recursionCap := len(nodes)*maxRecursionFactor + minRecursionCap

	sccs, overflowed := tarjanSCCs(nodes, adj, recursionCap)
	if overflowed {
		return DetectResult{CanonicalCycles: []domain.CanonicalCycle{}, ErrorDetected: true}
	}

	seen := make(map[string]bool)
	var cycles []domain.CanonicalCycle

	for _, scc := range sccs {
		if len(scc) == 1 {
			v := scc[0]
			if hasSelfEdge(adj, v) {
				c := canonicalize([]int{v, v}, nodes)
				if !seen[string(c)] {
					seen[string(c)] = true
					cycles = append(cycles, c)
				}
			}
			continue
		}

		raw, overflowed := enumerateSCCCycles(scc, adj, recursionCap)
		if overflowed {
			return DetectResult{CanonicalCycles: []domain.CanonicalCycle{}, ErrorDetected: true}
		}
		for _, raw := range raw {
			c := canonicalize(raw, nodes)
			if !seen[string(c)] {
				seen[string(c)] = true
				cycles = append(cycles, c)
			}
		}
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i] < cycles[j] })
	if cycles == nil {
		cycles = []domain.CanonicalCycle{}
	}
	return DetectResult{CanonicalCycles: cycles}
}

// isWellFormed checks the structural invariants Detect relies on once it
// has sorted the entries: ascending unique filePaths, ascending
// deduplicated imports per entry.
func isWellFormed(graph domain.ImportGraph) bool {
	for i := 1; i < len(graph); i++ {
		if graph[i].FilePath <= graph[i-1].FilePath {
			return false
		}
	}
	for _, entry := range graph {
		imps := entry.Imports
		for i := 1; i < len(imps); i++ {
			if imps[i] <= imps[i-1] {
				return false
			}
		}
	}
	return true
}

// buildGraph assigns each node a stable sorted index and builds sorted
// adjacency lists. Import targets that are not graph nodes are permitted
// but contribute no outgoing edges (they are terminal).
func buildGraph(graph domain.ImportGraph) (nodes []domain.NormalizedPath, index map[domain.NormalizedPath]int, adj [][]int) {
	nodes = make([]domain.NormalizedPath, len(graph))
	index = make(map[domain.NormalizedPath]int, len(graph))
	for i, e := range graph {
		nodes[i] = e.FilePath
		index[e.FilePath] = i
	}

	adj = make([][]int, len(nodes))
	for i, e := range graph {
		for _, imp := range e.Imports {
			if j, ok := index[imp]; ok {
				adj[i] = append(adj[i], j)
			}
		}
		sort.Ints(adj[i])
	}
	return nodes, index, adj
}

func hasSelfEdge(adj [][]int, v int) bool {
	for _, w := range adj[v] {
		if w == v {
			return true
		}
	}
	return false
}

// tarjanSCCs computes strongly connected components in deterministic order:
// nodes are processed in ascending index order and each SCC's members are
// sorted ascending.
func tarjanSCCs(nodes []domain.NormalizedPath, adj [][]int, recursionCap int) (sccs [][]int, overflowed bool) {
	n := len(nodes)
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}
	var stack []int
	counter := 0

	var strongconnect func(v, depth int) bool
	strongconnect = func(v, depth int) bool {
		if depth > recursionCap {
			overflowed = true
			return false
		}
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if overflowed {
				return false
			}
			if index[w] == -1 {
				if !strongconnect(w, depth+1) {
					return false
				}
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
		}

		if lowlink[v] == index[v] {
			var scc []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sort.Ints(scc)
			sccs = append(sccs, scc)
		}
		return true
	}

	for v := 0; v < n; v++ {
		if overflowed {
			break
		}
		if index[v] == -1 {
			strongconnect(v, 0)
		}
	}

	sort.Slice(sccs, func(i, j int) bool { return sccs[i][0] < sccs[j][0] })
	return sccs, overflowed
}

// canonicalize rotates a raw cycle (sequence of node indices, first node
// repeated implicitly at the end) so the byte-wise smallest node is first,
// then renders it as "p1 → p2 → … → pn → p1".
func canonicalize(raw []int, nodes []domain.NormalizedPath) domain.CanonicalCycle {
	if len(raw) == 2 && raw[0] == raw[1] {
		p := string(nodes[raw[0]])
		return domain.CanonicalCycle(p + domain.CycleSeparator + p)
	}

	minIdx := 0
	for i, v := range raw {
		if nodes[v] < nodes[raw[minIdx]] {
			minIdx = i
		}
	}
	rotated := make([]domain.NormalizedPath, len(raw))
	for i := range raw {
		rotated[i] = nodes[raw[(minIdx+i)%len(raw)]]
	}

	strs := make([]string, 0, len(rotated)+1)
	for _, p := range rotated {
		strs = append(strs, string(p))
	}
	strs = append(strs, string(rotated[0]))
	return domain.CanonicalCycle(strings.Join(strs, domain.CycleSeparator))
}
