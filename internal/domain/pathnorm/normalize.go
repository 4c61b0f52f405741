// Package pathnorm implements the single normalization rule every other
// ArcSight stage relies on: one canonical string form for a file path.
package pathnorm

import (
	"path/filepath"
	"strings"

	"github.com/arcsight-ai/arcsight/internal/domain"
)

// Normalize resolves symlinks (when resolveSymlinks is true — the
// filesystem walk sets this; a path that is already known-real does not
// need it), computes the path relative to repoRoot, converts backslashes
// to forward slashes, lower-cases it, and strips a leading "./". It fails
// (ok=false) when the result escapes repoRoot or is empty.
func Normalize(absOrRelative, repoRoot string, resolveSymlinks bool) (domain.NormalizedPath, bool) {
	root, err := filepath.Abs(repoRoot)
	if err != nil {
		return "", false
	}

	p := absOrRelative
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}

	if resolveSymlinks {
		if real, err := filepath.EvalSymlinks(p); err == nil {
			p = real
		}
	}

	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", false
	}

	slashed := filepath.ToSlash(rel)
	slashed = strings.ReplaceAll(slashed, "\\", "/")
	slashed = strings.TrimPrefix(slashed, "./")

	if slashed == "" || slashed == "." {
		return "", false
	}
	if slashed == ".." || strings.HasPrefix(slashed, "../") {
		return "", false
	}
	if strings.HasSuffix(slashed, "/") {
		return "", false
	}

	return domain.NormalizedPath(strings.ToLower(slashed)), true
}

// Join normalizes the concatenation of a normalized directory and a
// (possibly ".."-laden) relative specifier, without touching the
// filesystem. Used by the extractor to resolve relative import specifiers
// against the importing file's directory.
func Join(fromFileDir domain.NormalizedPath, specifier string) (domain.NormalizedPath, bool) {
	joined := filepath.ToSlash(filepath.Join(string(fromFileDir), specifier))
	joined = strings.TrimPrefix(joined, "./")

	if joined == "" || joined == "." {
		return "", false
	}
	if joined == ".." || strings.HasPrefix(joined, "../") {
		return "", false
	}
	return domain.NormalizedPath(strings.ToLower(joined)), true
}

// Dir returns the normalized parent directory of a normalized path, or ""
// for a top-level file.
func Dir(p domain.NormalizedPath) domain.NormalizedPath {
	d := filepath.ToSlash(filepath.Dir(string(p)))
	if d == "." {
		return ""
	}
	return domain.NormalizedPath(d)
}
