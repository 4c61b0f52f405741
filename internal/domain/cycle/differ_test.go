package cycle_test

import (
	"testing"

	"github.com/arcsight-ai/arcsight/internal/domain"
	"github.com/arcsight-ai/arcsight/internal/domain/cycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_NewCycleIntroduced(t *testing.T) {
	base := []domain.CanonicalCycle{"/a.ts → /b.ts → /a.ts"}
	head := []domain.CanonicalCycle{"/a.ts → /b.ts → /a.ts", "/c.ts → /d.ts → /c.ts"}

	res := cycle.Diff(base, head)
	require.False(t, res.ErrorDetected)
	assert.Equal(t, []domain.CanonicalCycle{"/c.ts → /d.ts → /c.ts"}, res.NewCycles)
	assert.Empty(t, res.RemovedCycles)
}

func TestDiff_CycleRemoved(t *testing.T) {
	base := []domain.CanonicalCycle{"/a.ts → /b.ts → /a.ts", "/c.ts → /d.ts → /c.ts"}
	head := []domain.CanonicalCycle{"/a.ts → /b.ts → /a.ts"}

	res := cycle.Diff(base, head)
	require.False(t, res.ErrorDetected)
	assert.Empty(t, res.NewCycles)
	assert.Equal(t, []domain.CanonicalCycle{"/c.ts → /d.ts → /c.ts"}, res.RemovedCycles)
}

func TestDiff_NoChange(t *testing.T) {
	both := []domain.CanonicalCycle{"/a.ts → /b.ts → /a.ts"}
	res := cycle.Diff(both, both)
	require.False(t, res.ErrorDetected)
	assert.Empty(t, res.NewCycles)
	assert.Empty(t, res.RemovedCycles)
}

func TestDiff_BothEmpty(t *testing.T) {
	res := cycle.Diff(nil, nil)
	require.False(t, res.ErrorDetected)
	assert.Empty(t, res.NewCycles)
	assert.Empty(t, res.RemovedCycles)
}

func TestDiff_MalformedEntryWithoutSeparator(t *testing.T) {
	res := cycle.Diff([]domain.CanonicalCycle{"not-canonical"}, nil)
	assert.True(t, res.ErrorDetected)
}

func TestDiff_DuplicateEntryIsDedupedNotAnError(t *testing.T) {
	dup := []domain.CanonicalCycle{"/a.ts → /b.ts → /a.ts", "/a.ts → /b.ts → /a.ts"}
	res := cycle.Diff(dup, nil)
	require.False(t, res.ErrorDetected)
	assert.Equal(t, []domain.CanonicalCycle{}, res.NewCycles)
	assert.Equal(t, []domain.CanonicalCycle{"/a.ts → /b.ts → /a.ts"}, res.RemovedCycles)
}

func TestDiff_DuplicateEntryInHeadIsDedupedIntoOneNewCycle(t *testing.T) {
	head := []domain.CanonicalCycle{"/a.ts → /b.ts → /a.ts", "/a.ts → /b.ts → /a.ts"}
	res := cycle.Diff(nil, head)
	require.False(t, res.ErrorDetected)
	assert.Equal(t, []domain.CanonicalCycle{"/a.ts → /b.ts → /a.ts"}, res.NewCycles)
	assert.Empty(t, res.RemovedCycles)
}

func TestDiff_BackslashInEntryIsMalformed(t *testing.T) {
	res := cycle.Diff([]domain.CanonicalCycle{`src\a.ts → src\b.ts → src\a.ts`}, nil)
	assert.True(t, res.ErrorDetected)
}

func TestDiff_UppercaseCharacterInEntryIsMalformed(t *testing.T) {
	res := cycle.Diff([]domain.CanonicalCycle{"src/A.ts → src/b.ts → src/A.ts"}, nil)
	assert.True(t, res.ErrorDetected)
}
