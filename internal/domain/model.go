// Package domain holds the data model shared by every ArcSight pipeline
// stage. Nothing here performs I/O; every type is a plain value.
package domain

// NormalizedPath is a repo-relative, forward-slash, lower-cased file path
// with no "." or ".." segments and no trailing slash. It is the only form
// in which paths exist once they cross into the core.
type NormalizedPath string

// ImportGraphEntry describes the outgoing edges of a single analyzed file.
// Imports is sorted ascending by byte order and contains no duplicates.
type ImportGraphEntry struct {
	FilePath NormalizedPath   `json:"file_path"`
	Imports  []NormalizedPath `json:"imports"`
}

// ImportGraph is the ordered, deduplicated-by-FilePath set of entries
// produced by the import extractor. Sorted ascending by FilePath.
type ImportGraph []ImportGraphEntry

// FileStats summarizes a single extraction pass; it feeds the confidence
// scorer and the safety switch.
type FileStats struct {
	FileCount              int  `json:"file_count"`
	AnalyzedFileCount      int  `json:"analyzed_file_count"`
	TotalImportCount       int  `json:"total_import_count"`
	UnresolvedImportCount  int  `json:"unresolved_import_count"`
	UnreadableFileCount    int  `json:"unreadable_file_count"`
	AliasAmbiguityDetected bool `json:"alias_ambiguity_detected"`
}

// CanonicalCycle is the canonical string form of a directed cycle:
// "p1 → p2 → … → pn → p1", rotated so p1 is the byte-wise smallest node.
type CanonicalCycle string

// CycleSeparator joins nodes in a CanonicalCycle string.
const CycleSeparator = " → "

// RootCauseEdge is the single edge on a new cycle attributed to a changed
// file. LineNumber and ImportLine are present together or both absent.
type RootCauseEdge struct {
	From           NormalizedPath `json:"from"`
	To             NormalizedPath `json:"to"`
	CanonicalCycle CanonicalCycle `json:"canonical_cycle"`
	LineNumber     int            `json:"line_number,omitempty"`
	ImportLine     string         `json:"import_line,omitempty"`
}

// AddedLine is a single line added on the head side of a diff hunk.
type AddedLine struct {
	LineNumber int    `json:"line_number"`
	Content    string `json:"content"`
}

// DiffHunk carries the added lines of one file between a base and head
// commit. Renames are represented as delete+add by the VCS collaborator.
type DiffHunk struct {
	FilePath   NormalizedPath `json:"file_path"`
	AddedLines []AddedLine    `json:"added_lines"`
}

// AliasStatus reports whether alias resolution was unambiguous.
type AliasStatus string

const (
	AliasStatusOK        AliasStatus = "ok"
	AliasStatusUncertain AliasStatus = "uncertain"
)

// SegmentationQuality summarizes how confident the extractor is in its own
// output. It is the sole input to the confidence scorer.
type SegmentationQuality struct {
	FileCount             int         `json:"file_count"`
	AnalyzedFileCount     int         `json:"analyzed_file_count"`
	AnalyzedFileCoverage  float64     `json:"analyzed_file_coverage"`
	AliasStatus           AliasStatus `json:"alias_status"`
	IsMonorepo            bool        `json:"is_monorepo"`
	ImportGraphStable     bool        `json:"import_graph_stable"`
	UnresolvedImportRatio float64     `json:"unresolved_import_ratio"`
}

// ConfidenceBucket buckets a numeric score for display purposes.
type ConfidenceBucket string

const (
	ConfidenceHigh ConfidenceBucket = "High"
	ConfidenceLow  ConfidenceBucket = "Low"
)

// CommitAnalysis is the result of analyzeCommit.
type CommitAnalysis struct {
	CanonicalCycles []CanonicalCycle `json:"canonical_cycles"`
	ImportGraph     ImportGraph      `json:"import_graph"`
	Confidence      float64          `json:"confidence"`
}

// PRCycleAnalysis is the result of analyzePR. RelevantCycles and RootCauses
// are paired 1:1 by index.
type PRCycleAnalysis struct {
	RelevantCycles []CanonicalCycle `json:"relevant_cycles"`
	RootCauses     []RootCauseEdge  `json:"root_causes"`
	Confidence     float64          `json:"confidence"`
}

// EmptyPRCycleAnalysis is the uniform silent-mode result.
func EmptyPRCycleAnalysis() PRCycleAnalysis {
	return PRCycleAnalysis{
		RelevantCycles: []CanonicalCycle{},
		RootCauses:     []RootCauseEdge{},
		Confidence:     0,
	}
}

// EmptyCommitAnalysis is the uniform zero-result for a failed/silent commit analysis.
func EmptyCommitAnalysis() CommitAnalysis {
	return CommitAnalysis{
		CanonicalCycles: []CanonicalCycle{},
		ImportGraph:     ImportGraph{},
		Confidence:      0,
	}
}

// AliasTable maps a normalized alias pattern (e.g. "@/*") to a normalized
// target pattern (e.g. "src/*"). Keys and values are pre-normalized by the
// loader that builds the table.
type AliasTable map[string]string

// SnapshotRecord is what the external snapshot writer persists, one line
// of NDJSON per record, keys sorted alphabetically by the writer.
type SnapshotRecord struct {
	RepoID          string           `json:"repoId"`
	CommitSha       string           `json:"commitSha"`
	Timestamp       string           `json:"timestamp"`
	CanonicalCycles []CanonicalCycle `json:"canonicalCycles"`
	Confidence      float64          `json:"confidence"`
}
