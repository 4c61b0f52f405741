// Package aliasconfig implements domain.AliasLoader by reading the path
// alias table out of a repository's tsconfig.json or jsconfig.json.
// Absence of either file is not an error — the core treats a missing alias
// map as "no aliases configured", per spec.md §4.2's Open Questions.
package aliasconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arcsight-ai/arcsight/internal/domain"
)

// candidateFiles is the search order: tsconfig.json is preferred over
// jsconfig.json when both are present.
var candidateFiles = []string{"tsconfig.json", "jsconfig.json"}

type tsconfigFile struct {
	CompilerOptions struct {
		Paths   map[string][]string `json:"paths"`
		BaseURL string               `json:"baseUrl"`
	} `json:"compilerOptions"`
	// jsconfig.json places "paths" at the top level of compilerOptions too,
	// so the same struct covers both file shapes.
}

// Loader implements domain.AliasLoader.
type Loader struct{}

func New() *Loader { return &Loader{} }

// Load tries each candidate config file in repoRoot in order and returns
// the normalized alias table of the first one that parses and has a
// "paths" entry. A missing file, a file that fails to parse, or a config
// with no "paths" entry moves on to the next candidate; when none yields
// paths, Load returns an empty table and a nil error — alias loading is
// best-effort by design.
func (l *Loader) Load(repoRoot string) (domain.AliasTable, error) {
	for _, name := range candidateFiles {
		path := filepath.Join(repoRoot, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var cfg tsconfigFile
		if err := json.Unmarshal(stripJSONComments(raw), &cfg); err != nil {
			continue
		}
		if len(cfg.CompilerOptions.Paths) == 0 {
			continue
		}

		return normalize(cfg.CompilerOptions.Paths), nil
	}
	return domain.AliasTable{}, nil
}

// normalize collapses tsconfig's "pattern -> [candidates...]" shape into
// the single-target AliasTable the resolver expects, taking the first
// candidate for each pattern (the convention every tsconfig in the wild
// follows: one candidate per pattern, extras are fallback paths the
// resolver does not need to reason about).
func normalize(paths map[string][]string) domain.AliasTable {
	table := make(domain.AliasTable, len(paths))
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		candidates := paths[k]
		if len(candidates) == 0 {
			continue
		}
		target := strings.TrimSuffix(candidates[0], "/")
		table[k] = target
	}
	return table
}

// stripJSONComments removes // and /* */ comments so the permissive JSONC
// dialect tsconfig.json allows still parses with encoding/json. No
// third-party JSONC parser appears anywhere in the dependency pack this
// module draws on, so this minimal pre-pass is the documented
// standard-library exception (see DESIGN.md).
func stripJSONComments(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	inString := false
	inLineComment := false
	inBlockComment := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if inLineComment {
			if c == '\n' {
				inLineComment = false
				out = append(out, c)
			}
			continue
		}
		if inBlockComment {
			if c == '*' && i+1 < len(raw) && raw[i+1] == '/' {
				inBlockComment = false
				i++
			}
			continue
		}
		if inString {
			out = append(out, c)
			if c == '\\' && i+1 < len(raw) {
				out = append(out, raw[i+1])
				i++
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '/' && i+1 < len(raw) && raw[i+1] == '/':
			inLineComment = true
			i++
		case c == '/' && i+1 < len(raw) && raw[i+1] == '*':
			inBlockComment = true
			i++
		default:
			out = append(out, c)
		}
	}
	return stripTrailingCommas(out)
}

// stripTrailingCommas removes a trailing comma immediately before a
// closing "}" or "]", the other JSONC leniency tsconfig.json relies on.
func stripTrailingCommas(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == ',' {
			j := i + 1
			for j < len(raw) && isJSONWhitespace(raw[j]) {
				j++
			}
			if j < len(raw) && (raw[j] == '}' || raw[j] == ']') {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func isJSONWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
