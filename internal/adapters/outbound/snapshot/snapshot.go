// Package snapshot implements domain.SnapshotWriter as an append-only
// newline-delimited JSON file per repoId, mirroring the teacher's
// filesystem-backed cache store in internal/adapters/outbound/cache.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/arcsight-ai/arcsight/internal/domain"
)

// line is a private mirror of domain.SnapshotRecord whose field order is
// alphabetical by JSON key, since encoding/json emits object keys in
// struct-field declaration order and the wire contract requires
// alphabetically sorted keys.
type line struct {
	CanonicalCycles []domain.CanonicalCycle `json:"canonicalCycles"`
	CommitSha       string                   `json:"commitSha"`
	Confidence      float64                  `json:"confidence"`
	RepoID          string                   `json:"repoId"`
	Timestamp       string                   `json:"timestamp"`
}

// Writer implements domain.SnapshotWriter, writing one file per repoId
// under dir. All concurrent appends through one Writer, to the same or to
// distinct repoIds, are serialized by a per-writer mutex, satisfying the
// "line-atomic" contract of spec.md §5.
type Writer struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write appends record as one JSON line to its repoId's snapshot file.
// Any failure (directory creation, encode, or append) is returned to the
// caller; the orchestrator is responsible for swallowing it, per the
// core's "writer failure is a no-op" contract.
func (w *Writer) Write(record domain.SnapshotRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}

	encoded, err := json.Marshal(line{
		CanonicalCycles: record.CanonicalCycles,
		CommitSha:       record.CommitSha,
		Confidence:      record.Confidence,
		RepoID:          record.RepoID,
		Timestamp:       record.Timestamp,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(w.path(record.RepoID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(encoded, '\n'))
	return err
}

func (w *Writer) path(repoID string) string {
	return filepath.Join(w.dir, repoID+".ndjson")
}
