package cycle

import "sort"

// enumerateSCCCycles enumerates every elementary cycle within the induced
// subgraph of scc using Johnson's algorithm, restricted one least-vertex at
// a time the way the original algorithm restricts the search to the
// remaining graph after each starting vertex is exhausted. scc is already
// sorted ascending. Returns raw node-index sequences (first node implied to
// close back on itself) or overflowed if recursion exceeds the shared cap.
func enumerateSCCCycles(scc []int, adjFull [][]int, recursionCap int) (cycles [][]int, overflowed bool) {
	member := make(map[int]bool, len(scc))
	for _, v := range scc {
		member[v] = true
	}

	remaining := append([]int(nil), scc...)
	sort.Ints(remaining)

	for len(remaining) > 0 {
		// Restrict to the subgraph induced by `remaining`, then find the
		// strongly connected component containing the least vertex in
		// `remaining`. Only that component is searched for cycles rooted
		// at the least vertex; the least vertex is then dropped and the
		// process repeats.
		inRemaining := make(map[int]bool, len(remaining))
		for _, v := range remaining {
			inRemaining[v] = true
		}
		sub := make([][]int, len(adjFull))
		for _, v := range remaining {
			for _, w := range adjFull[v] {
				if inRemaining[w] {
					sub[v] = append(sub[v], w)
				}
			}
		}

		least := remaining[0]
		compNodes, ok := componentContaining(least, remaining, sub, recursionCap)
		if !ok {
			overflowed = true
			return nil, true
		}

		if len(compNodes) >= 1 {
			blocked := make(map[int]bool)
			B := make(map[int][]int)
			for _, v := range compNodes {
				blocked[v] = false
			}
			var stack []int
			depth := 0

			var circuit func(v int) (bool, bool)
			circuit = func(v int) (found bool, overflow bool) {
				depth++
				if depth > recursionCap {
					depth--
					return false, true
				}
				defer func() { depth-- }()

				stack = append(stack, v)
				blocked[v] = true

				for _, w := range sub[v] {
					if !inComponent(w, compNodes) {
						continue
					}
					if w == least {
						cycles = append(cycles, append([]int(nil), stack...))
						found = true
					} else if !blocked[w] {
						f, ov := circuit(w)
						if ov {
							return false, true
						}
						if f {
							found = true
						}
					}
				}

				if found {
					unblock(v, blocked, B)
				} else {
					for _, w := range sub[v] {
						if !inComponent(w, compNodes) {
							continue
						}
						already := false
						for _, x := range B[w] {
							if x == v {
								already = true
								break
							}
						}
						if !already {
							B[w] = append(B[w], v)
						}
					}
				}

				stack = stack[:len(stack)-1]
				return found, false
			}

			_, ov := circuit(least)
			if ov {
				return nil, true
			}
		}

		// Drop `least` from consideration and continue with the rest.
		next := remaining[1:]
		remaining = next
	}

	return cycles, false
}

func inComponent(v int, comp []int) bool {
	i := sort.SearchInts(comp, v)
	return i < len(comp) && comp[i] == v
}

func unblock(u int, blocked map[int]bool, B map[int][]int) {
	blocked[u] = false
	ws := B[u]
	B[u] = nil
	for _, w := range ws {
		if blocked[w] {
			unblock(w, blocked, B)
		}
	}
}

// componentContaining returns the sorted node list of the strongly
// connected component that contains `least` within the subgraph induced by
// `nodes`/`sub`. Returns ok=false on recursion overflow.
func componentContaining(least int, nodes []int, sub [][]int, recursionCap int) ([]int, bool) {
	index := make(map[int]int)
	lowlink := make(map[int]int)
	onStack := make(map[int]bool)
	order := make(map[int]int)
	var stack []int
	counter := 0
	var found []int
	ok := true

	var strongconnect func(v, depth int)
	strongconnect = func(v, depth int) {
		if !ok || depth > recursionCap {
			ok = false
			return
		}
		order[v] = counter
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range sub[v] {
			if !ok {
				return
			}
			if _, visited := order[w]; !visited {
				strongconnect(w, depth+1)
				if !ok {
					return
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
			var comp []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			if containsInt(comp, least) {
				found = comp
			}
		}
	}

	for _, v := range nodes {
		if !ok {
			return nil, false
		}
		if _, visited := order[v]; !visited {
			strongconnect(v, 0)
		}
		if found != nil {
			break
		}
	}
	if !ok {
		return nil, false
	}

	sort.Ints(found)
	return found, true
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
