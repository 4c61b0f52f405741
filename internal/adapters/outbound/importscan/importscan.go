// Package importscan implements the filesystem-facing half of the import
// extractor (spec.md §4.3): walking the repository tree, gating files, and
// resolving specifiers produced by the pure internal/domain/importparse
// package into graph edges. It is the only place in the core that touches
// a filesystem, mirroring the teacher's scanner/detector split.
package importscan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/arcsight-ai/arcsight/internal/domain"
	"github.com/arcsight-ai/arcsight/internal/domain/alias"
	"github.com/arcsight-ai/arcsight/internal/domain/importparse"
	"github.com/arcsight-ai/arcsight/internal/domain/pathnorm"
)

// readConcurrency bounds the parallel file-read fan-out below.
const readConcurrency = 8

// MaxFileSize is the size gate past which a file is skipped as unreadable.
const MaxFileSize = 2 * 1024 * 1024

var excludedDirs = map[string]bool{
	"node_modules":   true,
	".next":          true,
	"dist":           true,
	"build":          true,
	"coverage":       true,
	"vendor":         true,
	"generated":      true,
	"__generated__":  true,
	"__tests__":      true,
	"tests":          true,
}

// includedExtensions also doubles as the extension-inference order tried,
// in turn, against a relative-import target stem and against
// "<stem>/index" for a directory import.
var includedExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// Scanner implements domain.ImportExtractor by walking a repository tree.
// excludeGlobs holds additional doublestar patterns (matched against the
// repo-relative path) layered on top of the hard-coded exclusions; they
// only ever narrow the candidate set further, never widen it.
type Scanner struct {
	excludeGlobs []string
}

// New builds a Scanner. excludeGlobs are additional doublestar ignore
// patterns supplied by the caller (e.g. a CLI --exclude-pattern flag).
func New(excludeGlobs ...string) *Scanner { return &Scanner{excludeGlobs: excludeGlobs} }

// fileRead is the outcome of reading and decoding one candidate file.
type fileRead struct {
	normPath domain.NormalizedPath
	src      string
	ok       bool
	size     int64
}

// Extract walks repoRoot and builds the repository's ImportGraph and
// FileStats, per spec.md §4.3. aliases may be nil or empty.
func (s *Scanner) Extract(repoRoot string, aliases domain.AliasTable) (domain.ImportGraph, domain.FileStats, error) {
	absRoot, err := filepath.Abs(repoRoot)
	if err != nil {
		return nil, domain.FileStats{}, err
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, domain.FileStats{}, err
	}

	files, walkErr := walkCandidates(absRoot, s.excludeGlobs)
	if walkErr != nil {
		return nil, domain.FileStats{}, walkErr
	}

	reads := readAll(files, absRoot)

	resolver := alias.New(aliases)
	stats := domain.FileStats{}
	var entries domain.ImportGraph

	for _, r := range reads {
		stats.FileCount++
		if !r.ok {
			stats.UnreadableFileCount++
			continue
		}

		entry, ambiguous := analyzeFile(r.normPath, r.src, absRoot, resolver, &stats)
		if ambiguous {
			stats.AliasAmbiguityDetected = true
		}
		entries = append(entries, entry)
		stats.AnalyzedFileCount++
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].FilePath < entries[j].FilePath })
	if entries == nil {
		entries = domain.ImportGraph{}
	}
	return entries, stats, nil
}

// readAll reads and decodes every candidate file with a bounded worker
// pool; each result is stored at its file's index, so the result is
// order-invariant regardless of goroutine completion order.
func readAll(files []string, absRoot string) []fileRead {
	out := make([]fileRead, len(files))

	var g errgroup.Group
	g.SetLimit(readConcurrency)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			out[i] = readOne(f, absRoot)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func readOne(f, absRoot string) fileRead {
	info, err := os.Lstat(f)
	if err != nil || info.Size() > MaxFileSize {
		return fileRead{ok: false}
	}

	raw, err := os.ReadFile(f)
	if err != nil {
		return fileRead{ok: false}
	}

	src, ok := decodeSource(raw)
	if !ok {
		return fileRead{ok: false}
	}

	normPath, ok := pathnorm.Normalize(f, absRoot, false)
	if !ok {
		return fileRead{ok: false}
	}

	return fileRead{normPath: normPath, src: src, ok: true}
}

// decodeSource strictly UTF-8 decodes raw, strips a leading BOM, and
// normalizes CRLF to LF. ok is false when raw contains invalid UTF-8.
func decodeSource(raw []byte) (string, bool) {
	if !utf8.Valid(raw) {
		return "", false
	}
	raw = stripBOM(raw)
	s := string(raw)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return s, true
}

func stripBOM(raw []byte) []byte {
	const bom = "\xef\xbb\xbf"
	if len(raw) >= 3 && string(raw[:3]) == bom {
		return raw[3:]
	}
	return raw
}

// analyzeFile extracts and classifies every specifier in src, returning the
// finished graph entry for this file.
func analyzeFile(normPath domain.NormalizedPath, src, repoRoot string, resolver *alias.Resolver, stats *domain.FileStats) (domain.ImportGraphEntry, bool) {
	specs := importparse.Extract(src)
	dir := pathnorm.Dir(normPath)

	edgeSet := make(map[domain.NormalizedPath]bool)
	ambiguous := false

	for _, spec := range specs {
		if spec.TypeOnly {
			continue
		}
		stats.TotalImportCount++

		target, resolvedAmbiguous, attempted := resolveSpecifier(spec.Text, dir, repoRoot, resolver)
		if resolvedAmbiguous {
			ambiguous = true
			stats.UnresolvedImportCount++
			continue
		}
		if target == "" {
			if attempted {
				stats.UnresolvedImportCount++
			}
			continue
		}
		edgeSet[target] = true
	}

	imports := make([]domain.NormalizedPath, 0, len(edgeSet))
	for t := range edgeSet {
		imports = append(imports, t)
	}
	sort.Slice(imports, func(i, j int) bool { return imports[i] < imports[j] })

	return domain.ImportGraphEntry{FilePath: normPath, Imports: imports}, ambiguous
}

func isRelativeSpecifier(s string) bool {
	return strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../")
}

// resolveSpecifier classifies one specifier per spec.md §4.3's
// Classification rules. ambiguous is true only for the alias-ambiguous
// case; target is "" whenever no edge should be emitted. attempted is true
// whenever extension inference was actually run against a target stem
// (relative specifiers, and alias specifiers that matched), so the caller
// can tell "no file found" apart from "nothing to resolve" (a bare or
// unmatched alias specifier) when deciding whether to count the import as
// unresolved.
func resolveSpecifier(specifier string, fromDir domain.NormalizedPath, repoRoot string, resolver *alias.Resolver) (target domain.NormalizedPath, ambiguous, attempted bool) {
	if isRelativeSpecifier(specifier) {
		return inferExtension(fromDir, specifier, repoRoot), false, true
	}

	resolved, outcome := resolver.Resolve(specifier)
	switch outcome {
	case alias.Ambiguous:
		return "", true, true
	case alias.Matched:
		return inferExtension("", resolved, repoRoot), false, true
	default:
		// Bare/external import: counted above, no edge, no unresolved bump.
		return "", false, false
	}
}

// inferExtension tries the fixed extension-inference order against the
// joined stem, returning "" when no candidate file exists on disk.
func inferExtension(fromDir domain.NormalizedPath, specifier string, repoRoot string) domain.NormalizedPath {
	stem, ok := pathnorm.Join(fromDir, specifier)
	if !ok {
		return ""
	}

	for _, ext := range includedExtensions {
		candidate := domain.NormalizedPath(string(stem) + ext)
		if fileExists(repoRoot, candidate) {
			return candidate
		}
	}
	for _, ext := range includedExtensions {
		candidate := domain.NormalizedPath(string(stem) + "/index" + ext)
		if fileExists(repoRoot, candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(repoRoot string, normPath domain.NormalizedPath) bool {
	p := filepath.Join(repoRoot, filepath.FromSlash(string(normPath)))
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// walkCandidates walks repoRoot depth-first, visiting directory entries in
// byte-order ascending, skipping excluded directories, resolving symlinks
// with a visited-set to prevent cycles, and collecting files whose
// extension is included, whose name does not match the excluded "*.d.ts"
// pattern, and that don't match any caller-supplied excludeGlob.
func walkCandidates(repoRoot string, excludeGlobs []string) ([]string, error) {
	visited := make(map[string]bool)
	var out []string

	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, e := range entries {
			name := e.Name()
			full := filepath.Join(dir, name)

			info, err := os.Lstat(full)
			if err != nil {
				continue
			}

			real := full
			if info.Mode()&os.ModeSymlink != 0 {
				resolved, err := filepath.EvalSymlinks(full)
				if err != nil {
					continue
				}
				real = resolved
				info, err = os.Stat(real)
				if err != nil {
					continue
				}
			}

			if visited[real] {
				continue
			}
			visited[real] = true

			if info.IsDir() {
				if excludedDirs[name] {
					continue
				}
				if err := walk(real); err != nil {
					return err
				}
				continue
			}

			if isCandidateFile(name) && !matchesExcludeGlob(repoRoot, full, excludeGlobs) {
				out = append(out, full)
			}
		}
		return nil
	}

	if err := walk(repoRoot); err != nil {
		return nil, err
	}
	return out, nil
}

func isCandidateFile(name string) bool {
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	for _, ext := range includedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// matchesExcludeGlob reports whether full's repo-relative, slash-separated
// path matches any of the caller-supplied doublestar patterns.
func matchesExcludeGlob(repoRoot, full string, excludeGlobs []string) bool {
	if len(excludeGlobs) == 0 {
		return false
	}
	rel, err := filepath.Rel(repoRoot, full)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range excludeGlobs {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
