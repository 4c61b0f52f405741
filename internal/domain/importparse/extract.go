// Package importparse implements the pure regex classification rules of
// spec.md §4.3: comment stripping, the three import-pattern families, and
// type-only / dynamic-import exclusion. It never touches a filesystem —
// resolving a specifier to a NormalizedPath is the outbound adapter's job.
package importparse

import (
	"regexp"
	"strings"
)

// MaxMatchesPerFile is the soft cap on import-like matches per file.
// Matches beyond this are invisible to every counter.
const MaxMatchesPerFile = 500

// LookaheadLines is how many additional lines past the keyword's line the
// scanner searches for the specifier's opening quote.
const LookaheadLines = 2

// Specifier is one recognized, statically-resolvable import-like construct.
type Specifier struct {
	// Text is the raw specifier string, e.g. "./foo" or "react".
	Text string
	// Line is the 1-based line on which the keyword (import/require)
	// appears.
	Line int
	// TypeOnly is true for `import type …` / `import { type … }` forms.
	// Type-only specifiers never produce an edge and never count toward
	// totalImportCount.
	TypeOnly bool
}

var (
	reImportKeyword  = regexp.MustCompile(`\bimport\b`)
	reRequireCall    = regexp.MustCompile(`\brequire\s*\(`)
	reFromClause     = regexp.MustCompile(`(?s)from\s*(['"])((?:\\.|[^\\])*?)\1`)
	reBareQuote      = regexp.MustCompile(`(?s)^\s*(['"])((?:\\.|[^\\])*?)\1`)
	reRequireQuote   = regexp.MustCompile(`(?s)^\s*(['"])((?:\\.|[^\\])*?)\1\s*\)`)
	reTypeOnlyWhole  = regexp.MustCompile(`^\s*type\s`)
	reTypeOnlyBraced = regexp.MustCompile(`^\s*\{\s*type\s`)
)

// Extract strips comments from BOM/CRLF-normalized source, scans it, and
// returns every recognized import specifier, in source order, up to the
// 500-match soft cap.
func Extract(src string) []Specifier {
	src = stripComments(src)
	lines := strings.Split(src, "\n")

	var out []Specifier
	matches := 0

	// Index byte offsets of each line start within the full stripped text
	// isn't needed: we operate line-by-line and locate keyword positions
	// per line, forming lookahead windows from line slices directly.
	for i := 0; i < len(lines) && matches < MaxMatchesPerFile; i++ {
		line := lines[i]

		for _, loc := range reImportKeyword.FindAllStringIndex(line, -1) {
			if matches >= MaxMatchesPerFile {
				break
			}
			after := line[loc[1]:]
			if isDynamicImportCall(after) {
				continue
			}

			window := windowFrom(lines, i, after)
			if spec, ok := parseImportClause(after, window); ok {
				spec.Line = i + 1
				out = append(out, spec)
				matches++
			}
		}

		for _, loc := range reRequireCall.FindAllStringIndex(line, -1) {
			if matches >= MaxMatchesPerFile {
				break
			}
			after := line[loc[1]:]
			window := windowFrom(lines, i, after)
			if text, ok := matchRequireQuote(after, window); ok {
				out = append(out, Specifier{Text: text, Line: i + 1})
				matches++
			}
		}
	}

	return out
}

// isDynamicImportCall reports whether the text immediately following the
// "import" keyword opens a call, i.e. `import(...)`. Such dynamic imports
// are ignored entirely: no edge, no unresolved count.
func isDynamicImportCall(after string) bool {
	trimmed := strings.TrimLeft(after, " \t")
	return strings.HasPrefix(trimmed, "(")
}

// windowFrom builds the lookahead text used to find a specifier's opening
// quote: the remainder of the keyword's own line plus up to LookaheadLines
// additional lines.
func windowFrom(lines []string, idx int, restOfLine string) string {
	var b strings.Builder
	b.WriteString(restOfLine)
	for j := 1; j <= LookaheadLines && idx+j < len(lines); j++ {
		b.WriteString("\n")
		b.WriteString(lines[idx+j])
	}
	return b.String()
}

// parseImportClause classifies an ES-module import construct: either a
// `from '...'` form or a bare side-effect `import '...'` form. typeOnly is
// detected from the text immediately after "import".
func parseImportClause(after, window string) (Specifier, bool) {
	typeOnly := reTypeOnlyWhole.MatchString(after) || reTypeOnlyBraced.MatchString(after)

	// A quote right after the keyword is a bare side-effect import; it is
	// checked first so a "from" clause on a following line is not taken
	// for this keyword's specifier.
	trimmed := strings.TrimLeft(after, " \t")
	if m := reBareQuote.FindStringSubmatch(trimmed); m != nil {
		return Specifier{Text: m[2], TypeOnly: typeOnly}, true
	}

	if m := reFromClause.FindStringSubmatch(window); m != nil {
		return Specifier{Text: m[2], TypeOnly: typeOnly}, true
	}

	return Specifier{}, false
}

// matchRequireQuote extracts the static string literal argument of a
// require(...) call. Template-literal or computed arguments do not match
// the quote-anchored regex and are silently ignored, as spec'd.
func matchRequireQuote(after, window string) (string, bool) {
	trimmed := strings.TrimLeft(after, " \t")
	if m := reRequireQuote.FindStringSubmatch(trimmed); m != nil {
		return m[2], true
	}
	// Allow the closing paren to land on a later line within the window.
	if m := reRequireQuote.FindStringSubmatch(window); m != nil {
		return m[2], true
	}
	return "", false
}
