// Package e2e exercises the full extractor → detector → confidence pipeline
// against the fixture trees in testdata/jsrepo, with no fakes standing in
// for the outbound adapters on the analyzeCommit side.
package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/aliasconfig"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/importscan"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/monorepo"
	"github.com/arcsight-ai/arcsight/internal/application"
	"github.com/arcsight-ai/arcsight/internal/domain"
)

func newOrchestrator() *application.Orchestrator {
	return application.New(importscan.New(), aliasconfig.New(), nil, nil, monorepo.New())
}

func TestAnalyzeCommit_CyclicFixtureFindsTheCycle(t *testing.T) {
	result := newOrchestrator().AnalyzeCommit(context.Background(), "../../testdata/jsrepo/cyclic")

	require.Len(t, result.CanonicalCycles, 1)
	assert.Equal(t, domain.CanonicalCycle("a.ts → b.ts → a.ts"), result.CanonicalCycles[0])
}

func TestAnalyzeCommit_AcyclicFixtureFindsNoCycle(t *testing.T) {
	result := newOrchestrator().AnalyzeCommit(context.Background(), "../../testdata/jsrepo/acyclic")

	assert.Empty(t, result.CanonicalCycles)
	assert.Len(t, result.ImportGraph, 4)
}

func TestAnalyzeCommit_AliasedFixtureResolvesTheAliasIntoTheCycle(t *testing.T) {
	result := newOrchestrator().AnalyzeCommit(context.Background(), "../../testdata/jsrepo/aliased")

	require.Len(t, result.CanonicalCycles, 1)
	assert.Equal(t, domain.CanonicalCycle("src/a.ts → src/b.ts → src/a.ts"), result.CanonicalCycles[0])
}

func TestAnalyzeCommit_MonorepoFixtureIsStillAnalyzed(t *testing.T) {
	result := newOrchestrator().AnalyzeCommit(context.Background(), "../../testdata/jsrepo/monorepo")

	require.Len(t, result.CanonicalCycles, 1)
	assert.Equal(t,
		domain.CanonicalCycle("packages/pkg-a/index.ts → packages/pkg-b/index.ts → packages/pkg-a/index.ts"),
		result.CanonicalCycles[0],
	)
}

func TestAnalyzeCommit_FileCountTracksFixtureSize(t *testing.T) {
	result := newOrchestrator().AnalyzeCommit(context.Background(), "../../testdata/jsrepo/acyclic")
	assert.Len(t, result.ImportGraph, 4)
}
