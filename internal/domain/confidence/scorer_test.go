package confidence_test

import (
	"testing"

	"github.com/arcsight-ai/arcsight/internal/domain"
	"github.com/arcsight-ai/arcsight/internal/domain/confidence"
	"github.com/stretchr/testify/assert"
)

func baseQuality() domain.SegmentationQuality {
	return domain.SegmentationQuality{
		FileCount:             10,
		AnalyzedFileCount:     10,
		AnalyzedFileCoverage:  1,
		AliasStatus:           domain.AliasStatusOK,
		IsMonorepo:            false,
		ImportGraphStable:     true,
		UnresolvedImportRatio: 0,
	}
}

func TestScore_PerfectInputsYieldOne(t *testing.T) {
	assert.Equal(t, 1.0, confidence.Score(baseQuality()))
}

func TestScore_FileCountBelowTenIsZero(t *testing.T) {
	q := baseQuality()
	q.FileCount = 9
	assert.Zero(t, confidence.Score(q))
}

func TestScore_FileCountExactlyTenIsNonZero(t *testing.T) {
	q := baseQuality()
	assert.NotZero(t, confidence.Score(q))
}

func TestScore_AliasUncertainIsZero(t *testing.T) {
	q := baseQuality()
	q.AliasStatus = domain.AliasStatusUncertain
	assert.Zero(t, confidence.Score(q))
}

func TestScore_MonorepoIsZero(t *testing.T) {
	q := baseQuality()
	q.IsMonorepo = true
	assert.Zero(t, confidence.Score(q))
}

func TestScore_UnstableGraphIsZero(t *testing.T) {
	q := baseQuality()
	q.ImportGraphStable = false
	assert.Zero(t, confidence.Score(q))
}

func TestScore_MalformedCoverageIsZero(t *testing.T) {
	q := baseQuality()
	q.AnalyzedFileCoverage = 1.5
	assert.Zero(t, confidence.Score(q))
}

func TestScore_PartialCoverageBlendsTerms(t *testing.T) {
	q := baseQuality()
	q.AnalyzedFileCoverage = 0.5
	q.UnresolvedImportRatio = 0.5
	got := confidence.Score(q)
	assert.InDelta(t, 0.4*0.5+0.3*0.5+0.3, got, 1e-9)
}

func TestBucket_ExactlyPointEightIsHigh(t *testing.T) {
	assert.Equal(t, domain.ConfidenceHigh, confidence.Bucket(0.8))
}

func TestBucket_JustBelowPointEightIsLow(t *testing.T) {
	assert.Equal(t, domain.ConfidenceLow, confidence.Bucket(0.8-1e-9))
}
