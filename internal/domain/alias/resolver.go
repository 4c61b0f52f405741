// Package alias implements the best-effort, ambiguity-detecting resolver
// for non-relative import specifiers (spec.md §4.2).
package alias

import (
	"sort"
	"strings"

	"github.com/arcsight-ai/arcsight/internal/domain"
)

// Outcome classifies the result of Resolve.
type Outcome int

const (
	// NoMatch: the specifier matched no alias pattern, or the table is empty.
	NoMatch Outcome = iota
	// Matched: the specifier matched exactly one pattern.
	Matched
	// Ambiguous: the specifier matched two or more patterns.
	Ambiguous
)

// Resolver evaluates alias patterns in lexicographic order of the full
// alias key, so two overlapping patterns are tested deterministically.
type Resolver struct {
	keys  []string
	table domain.AliasTable
}

// New builds a Resolver from an already key/value-normalized alias table.
// A nil or empty table produces a Resolver that always returns NoMatch.
func New(table domain.AliasTable) *Resolver {
	r := &Resolver{table: table}
	for k := range table {
		r.keys = append(r.keys, k)
	}
	sort.Strings(r.keys)
	return r
}

// Resolve matches specifier against every alias pattern ("@/*" style,
// where "*" stands for an arbitrary suffix). It returns the single
// resolved target on Matched, "" on NoMatch, and "" on Ambiguous (the
// caller must treat an Ambiguous outcome as unresolved and raise
// aliasAmbiguityDetected).
func (r *Resolver) Resolve(specifier string) (target string, outcome Outcome) {
	if r == nil || len(r.table) == 0 {
		return "", NoMatch
	}

	var matches []string
	for _, key := range r.keys {
		if t, ok := match(key, r.table[key], specifier); ok {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return "", NoMatch
	case 1:
		return matches[0], Matched
	default:
		return "", Ambiguous
	}
}

// match tests a single "prefix*" or exact alias pattern against specifier,
// returning the resolved target with the wildcard suffix substituted.
func match(pattern, target, specifier string) (string, bool) {
	if !strings.Contains(pattern, "*") {
		if pattern == specifier {
			return target, true
		}
		return "", false
	}

	prefix, suffix, _ := strings.Cut(pattern, "*")
	if !strings.HasPrefix(specifier, prefix) || !strings.HasSuffix(specifier, suffix) {
		return "", false
	}
	rest := specifier[len(prefix) : len(specifier)-len(suffix)]

	tPrefix, tSuffix, hasWildcard := strings.Cut(target, "*")
	if !hasWildcard {
		return target, true
	}
	return tPrefix + rest + tSuffix, true
}
