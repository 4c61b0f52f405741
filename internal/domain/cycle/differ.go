package cycle

import (
	"unicode"

	"github.com/arcsight-ai/arcsight/internal/domain"
)

// DiffResult is the output of Diff.
type DiffResult struct {
	NewCycles     []domain.CanonicalCycle
	RemovedCycles []domain.CanonicalCycle
	ErrorDetected bool
}

// Diff compares two canonical cycle sets (base, before the change; head,
// after) and reports which cycles are newly introduced and which
// disappeared. Comparison is byte-for-byte on the canonical string form.
// Inputs are treated as sets: duplicates are tolerated on input and absent
// from output. base and head are trusted to already be canonically
// formatted; a malformed entry (empty, missing the canonical separator,
// containing a backslash, or containing an uppercase character) yields
// ErrorDetected with no partial results, per spec.md §4.5.
func Diff(base, head []domain.CanonicalCycle) DiffResult {
	if !isCanonicalFormat(base) || !isCanonicalFormat(head) {
		return DiffResult{
			NewCycles:     []domain.CanonicalCycle{},
			RemovedCycles: []domain.CanonicalCycle{},
			ErrorDetected: true,
		}
	}

	baseSet := make(map[domain.CanonicalCycle]bool, len(base))
	for _, c := range base {
		baseSet[c] = true
	}
	headSet := make(map[domain.CanonicalCycle]bool, len(head))
	for _, c := range head {
		headSet[c] = true
	}

	newCycles := []domain.CanonicalCycle{}
	seenNew := make(map[domain.CanonicalCycle]bool, len(head))
	for _, c := range head {
		if !baseSet[c] && !seenNew[c] {
			newCycles = append(newCycles, c)
			seenNew[c] = true
		}
	}
	removed := []domain.CanonicalCycle{}
	seenRemoved := make(map[domain.CanonicalCycle]bool, len(base))
	for _, c := range base {
		if !headSet[c] && !seenRemoved[c] {
			removed = append(removed, c)
			seenRemoved[c] = true
		}
	}

	return DiffResult{NewCycles: newCycles, RemovedCycles: removed}
}

// isCanonicalFormat checks that every entry is non-empty, contains the
// canonical separator, and uses the extractor's lower-case, forward-slash
// form throughout: no backslashes, no uppercase characters. Duplicates are
// not a format error — Diff treats its inputs as sets.
func isCanonicalFormat(cycles []domain.CanonicalCycle) bool {
	for _, c := range cycles {
		s := string(c)
		if s == "" {
			return false
		}
		if !containsSeparator(s) {
			return false
		}
		if containsBackslash(s) {
			return false
		}
		if containsUppercase(s) {
			return false
		}
	}
	return true
}

func containsSeparator(s string) bool {
	for i := 0; i+len(domain.CycleSeparator) <= len(s); i++ {
		if s[i:i+len(domain.CycleSeparator)] == domain.CycleSeparator {
			return true
		}
	}
	return false
}

func containsBackslash(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			return true
		}
	}
	return false
}

func containsUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
