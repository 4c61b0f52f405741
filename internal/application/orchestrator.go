// Package application implements the two-operation orchestrator of
// spec.md §4.10: analyzeCommit and analyzePR. It is the only layer that
// wires the pure domain stages together with the outbound collaborators
// (filesystem extractor, VCS, snapshot writer, monorepo detector).
package application

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arcsight-ai/arcsight/internal/domain"
	"github.com/arcsight-ai/arcsight/internal/domain/attribution"
	"github.com/arcsight-ai/arcsight/internal/domain/confidence"
	"github.com/arcsight-ai/arcsight/internal/domain/cycle"
	"github.com/arcsight-ai/arcsight/internal/domain/pathnorm"
	"github.com/arcsight-ai/arcsight/internal/domain/safety"
)

// minCycleNodes and maxCycleNodes bound the cycle-size window a PR result
// may report, per spec.md §3's PRCycleAnalysis invariants.
const (
	minCycleNodes = 2
	maxCycleNodes = 5
)

// Orchestrator wires the pure core stages to the outbound ports.
type Orchestrator struct {
	Extractor  domain.ImportExtractor
	Aliases    domain.AliasLoader
	VCS        domain.VCS
	Snapshots  domain.SnapshotWriter
	Monorepo   domain.MonorepoDetector
}

// New builds an Orchestrator. Snapshots and Monorepo may be nil: a nil
// snapshot writer disables snapshotting, and a nil monorepo detector
// always reports isMonorepo = false.
func New(extractor domain.ImportExtractor, aliases domain.AliasLoader, vcs domain.VCS, snapshots domain.SnapshotWriter, monorepoDetector domain.MonorepoDetector) *Orchestrator {
	return &Orchestrator{
		Extractor: extractor,
		Aliases:   aliases,
		VCS:       vcs,
		Snapshots: snapshots,
		Monorepo:  monorepoDetector,
	}
}

// AnalyzeCommit implements spec.md §4.10's analyzeCommit(repoPath).
func (o *Orchestrator) AnalyzeCommit(ctx context.Context, repoPath string) domain.CommitAnalysis {
	result, _ := o.analyzeCommitInternal(repoPath)
	o.writeSnapshot(repoPath, result)
	return result
}

// analyzeCommitInternal additionally returns the raw FileStats so AnalyzePR
// can build a safety context without re-walking the tree a third time.
func (o *Orchestrator) analyzeCommitInternal(repoPath string) (domain.CommitAnalysis, stageSignals) {
	aliases, _ := o.Aliases.Load(repoPath)

	graph, stats, err := o.Extractor.Extract(repoPath, aliases)
	if err != nil {
		return domain.EmptyCommitAnalysis(), stageSignals{importGraphIncomplete: true}
	}

	detectRes := cycle.Detect(graph)
	if detectRes.ErrorDetected {
		return domain.EmptyCommitAnalysis(), stageSignals{componentError: true}
	}

	quality := o.buildQuality(repoPath, stats, graph, aliases)
	score := confidence.Score(quality)

	signals := stageSignals{
		aliasAmbiguity: stats.AliasAmbiguityDetected,
		stable:         quality.ImportGraphStable,
	}

	return domain.CommitAnalysis{
		CanonicalCycles: detectRes.CanonicalCycles,
		ImportGraph:     graph,
		Confidence:      score,
	}, signals
}

// stageSignals carries the flags the safety switch needs that are not
// otherwise surfaced on CommitAnalysis itself.
type stageSignals struct {
	importGraphIncomplete bool
	componentError        bool
	aliasAmbiguity        bool
	stable                bool
}

// AnalyzePR implements spec.md §4.10's analyzePR pipeline.
func (o *Orchestrator) AnalyzePR(ctx context.Context, baseSha, headSha string, changedFiles []string, repoPath string) domain.PRCycleAnalysis {
	start := time.Now()
	empty := domain.EmptyPRCycleAnalysis()

	if err := o.VCS.Checkout(ctx, repoPath, baseSha); err != nil {
		return empty
	}
	baseResult, baseSignals := o.analyzeCommitInternal(repoPath)

	if err := o.VCS.Checkout(ctx, repoPath, headSha); err != nil {
		return empty
	}
	headResult, headSignals := o.analyzeCommitInternal(repoPath)

	o.writeSnapshot(repoPath, baseResult)
	o.writeSnapshot(repoPath, headResult)

	diffRes := cycle.Diff(baseResult.CanonicalCycles, headResult.CanonicalCycles)
	if diffRes.ErrorDetected {
		return empty
	}

	changed := normalizeChangedFiles(changedFiles, repoPath)

	sized := filterBySize(diffRes.NewCycles)
	touching := filterTouchingChangedFiles(sized, changed)

	if len(touching) == 0 {
		return empty
	}

	hunks, err := o.VCS.Diff(ctx, repoPath, baseSha, headSha)
	if err != nil {
		return empty
	}

	attrRes := attribution.Attribute(touching, changed, headResult.ImportGraph, baseResult.ImportGraph, hunks)
	if attrRes.ErrorDetected {
		return empty
	}

	relevantCycles, rootCauses := pairCyclesWithEdges(touching, attrRes.RootCauseEdges)
	if len(relevantCycles) == 0 {
		return empty
	}

	validation := safety.ValidateInvariants(relevantCycles, headResult.ImportGraph, rootCauses)
	if !validation.AllInvariantsSatisfied {
		return empty
	}

	switchCtx := safety.SwitchContext{
		DeterministicRunsAgree: baseSignals.stable && headSignals.stable,
		RuntimeSeconds:         time.Since(start).Seconds(),
		AliasAmbiguityDetected: baseSignals.aliasAmbiguity || headSignals.aliasAmbiguity,
		ImportGraphIncomplete:  baseSignals.importGraphIncomplete || headSignals.importGraphIncomplete,
		RootCauseUnstable:      false,
		ComponentErrorDetected: baseSignals.componentError || headSignals.componentError,
	}
	if safety.ShouldSilence(switchCtx) {
		return empty
	}

	sort.Slice(relevantCycles, func(i, j int) bool { return relevantCycles[i] < relevantCycles[j] })

	confidenceScore := headResult.Confidence
	if confidenceScore > baseResult.Confidence {
		confidenceScore = baseResult.Confidence
	}

	return domain.PRCycleAnalysis{
		RelevantCycles: relevantCycles,
		RootCauses:     rootCauses,
		Confidence:     confidenceScore,
	}
}

func normalizeChangedFiles(files []string, repoPath string) []domain.NormalizedPath {
	out := make([]domain.NormalizedPath, 0, len(files))
	for _, f := range files {
		if p, ok := pathnorm.Normalize(f, repoPath, false); ok {
			out = append(out, p)
		}
	}
	return out
}

func filterBySize(cycles []domain.CanonicalCycle) []domain.CanonicalCycle {
	var out []domain.CanonicalCycle
	for _, c := range cycles {
		n := strings.Count(string(c), domain.CycleSeparator)
		if n >= minCycleNodes && n <= maxCycleNodes {
			out = append(out, c)
		}
	}
	return out
}

func filterTouchingChangedFiles(cycles []domain.CanonicalCycle, changed []domain.NormalizedPath) []domain.CanonicalCycle {
	changedSet := make(map[domain.NormalizedPath]bool, len(changed))
	for _, f := range changed {
		changedSet[f] = true
	}

	var out []domain.CanonicalCycle
	for _, c := range cycles {
		nodes := strings.Split(string(c), domain.CycleSeparator)
		for _, n := range nodes {
			if changedSet[domain.NormalizedPath(n)] {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// pairCyclesWithEdges keeps only the cycles for which the attributor
// produced a root-cause edge, restoring the 1:1 relevantCycles/rootCauses
// pairing spec.md §3 requires.
func pairCyclesWithEdges(cycles []domain.CanonicalCycle, edges []domain.RootCauseEdge) ([]domain.CanonicalCycle, []domain.RootCauseEdge) {
	byCycle := make(map[domain.CanonicalCycle]domain.RootCauseEdge, len(edges))
	for _, e := range edges {
		byCycle[e.CanonicalCycle] = e
	}

	var relevant []domain.CanonicalCycle
	var paired []domain.RootCauseEdge
	for _, c := range cycles {
		if e, ok := byCycle[c]; ok {
			relevant = append(relevant, c)
			paired = append(paired, e)
		}
	}
	return relevant, paired
}

func (o *Orchestrator) buildQuality(repoPath string, stats domain.FileStats, graph domain.ImportGraph, aliases domain.AliasTable) domain.SegmentationQuality {
	aliasStatus := domain.AliasStatusOK
	if stats.AliasAmbiguityDetected {
		aliasStatus = domain.AliasStatusUncertain
	}

	isMonorepo := false
	if o.Monorepo != nil {
		isMonorepo = o.Monorepo.IsMonorepo(repoPath)
	}

	return domain.SegmentationQuality{
		FileCount:             stats.FileCount,
		AnalyzedFileCount:     stats.AnalyzedFileCount,
		AnalyzedFileCoverage:  ratio(stats.AnalyzedFileCount, stats.FileCount),
		AliasStatus:           aliasStatus,
		IsMonorepo:            isMonorepo,
		ImportGraphStable:     o.checkStability(repoPath, aliases, graph),
		UnresolvedImportRatio: ratio(stats.UnresolvedImportCount, stats.TotalImportCount),
	}
}

func ratio(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// checkStability re-extracts the tree and compares the result byte-for-
// byte (via sorted JSON) against the first pass, the externally measured
// determinism flag the safety switch consumes per spec.md §4.9.
func (o *Orchestrator) checkStability(repoPath string, aliases domain.AliasTable, first domain.ImportGraph) bool {
	second, _, err := o.Extractor.Extract(repoPath, aliases)
	if err != nil {
		return false
	}

	firstJSON, err1 := json.Marshal(first)
	secondJSON, err2 := json.Marshal(second)
	if err1 != nil || err2 != nil {
		return false
	}
	return string(firstJSON) == string(secondJSON)
}

func (o *Orchestrator) writeSnapshot(repoPath string, result domain.CommitAnalysis) {
	if o.Snapshots == nil {
		return
	}
	sha, err := o.VCS.HeadSHA(context.Background(), repoPath)
	if err != nil {
		return
	}
	_ = o.Snapshots.Write(domain.SnapshotRecord{
		RepoID:          filepath.Base(repoPath),
		CommitSha:       sha,
		Timestamp:       time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		CanonicalCycles: result.CanonicalCycles,
		Confidence:      result.Confidence,
	})
}
