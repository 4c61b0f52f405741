// Package vcs implements domain.VCS using go-git, the same library the
// teacher uses for its own repository introspection.
package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/arcsight-ai/arcsight/internal/domain"
)

// GitVCS implements domain.VCS against a local working tree.
type GitVCS struct{}

func New() *GitVCS { return &GitVCS{} }

// Checkout hard-resets the working tree at repoPath to sha.
func (g *GitVCS) Checkout(ctx context.Context, repoPath, sha string) error {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("opening git repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{
		Hash:  plumbing.NewHash(sha),
		Force: true,
	}); err != nil {
		return fmt.Errorf("checking out %s: %w", sha, err)
	}
	return nil
}

// HeadSHA returns the current HEAD commit hash.
func (g *GitVCS) HeadSHA(ctx context.Context, repoPath string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// Diff computes the per-file added lines between baseSha and headSha,
// 1-based and numbered against the head-side file content, per spec.md
// §4.6's diff-hunk contract.
func (g *GitVCS) Diff(ctx context.Context, repoPath, baseSha, headSha string) ([]domain.DiffHunk, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	baseCommit, err := repo.CommitObject(plumbing.NewHash(baseSha))
	if err != nil {
		return nil, fmt.Errorf("resolving base commit %s: %w", baseSha, err)
	}
	headCommit, err := repo.CommitObject(plumbing.NewHash(headSha))
	if err != nil {
		return nil, fmt.Errorf("resolving head commit %s: %w", headSha, err)
	}

	baseTree, err := baseCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading base tree: %w", err)
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading head tree: %w", err)
	}

	changes, err := baseTree.Diff(headTree)
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	var hunks []domain.DiffHunk
	for _, change := range changes {
		patch, err := change.Patch()
		if err != nil {
			continue
		}
		for _, fp := range patch.FilePatches() {
			_, to := fp.Files()
			if to == nil {
				continue
			}
			path := strings.ToLower(to.Path())

			var added []domain.AddedLine
			lineNo := 0
			for _, chunk := range fp.Chunks() {
				raw := chunk.Content()
				if raw == "" {
					continue
				}
				lines := strings.Split(strings.TrimSuffix(raw, "\n"), "\n")
				switch chunk.Type() {
				case object.Equal:
					lineNo += len(lines)
				case object.Add:
					for _, l := range lines {
						lineNo++
						added = append(added, domain.AddedLine{LineNumber: lineNo, Content: l})
					}
				case object.Delete:
					// Deletions do not advance the head-side line counter.
				}
			}

			if len(added) > 0 {
				hunks = append(hunks, domain.DiffHunk{
					FilePath:   domain.NormalizedPath(path),
					AddedLines: added,
				})
			}
		}
	}

	return hunks, nil
}
