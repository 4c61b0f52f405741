package domain

import "context"

// ImportExtractor walks a repository snapshot on disk and produces an
// ImportGraph plus the FileStats needed by the confidence scorer. It is the
// only port that walks the source tree; AliasLoader and MonorepoDetector
// read just their own config and manifest files.
type ImportExtractor interface {
	Extract(repoRoot string, aliases AliasTable) (ImportGraph, FileStats, error)
}

// AliasLoader discovers a project's non-relative import alias table from
// tsconfig.json or jsconfig.json. Absence of either file is not an error;
// it returns an empty table.
type AliasLoader interface {
	Load(repoRoot string) (AliasTable, error)
}

// VCS is the version-control collaborator consumed by the orchestrator's
// PR pipeline. Checkout mutates the working tree synchronously.
type VCS interface {
	Checkout(ctx context.Context, repoPath, sha string) error
	HeadSHA(ctx context.Context, repoPath string) (string, error)
	Diff(ctx context.Context, repoPath, baseSha, headSha string) ([]DiffHunk, error)
}

// SnapshotWriter is the external, append-only collaborator described in
// spec.md §6. The orchestrator treats every error from it as a no-op.
type SnapshotWriter interface {
	Write(record SnapshotRecord) error
}

// MonorepoDetector supplies the isMonorepo signal SegmentationQuality
// requires. This is deliberately not part of the pure core: whether a
// repository is a monorepo is a filesystem-level heuristic (workspace
// manifests), not something derivable from the import graph itself.
type MonorepoDetector interface {
	IsMonorepo(repoRoot string) bool
}
