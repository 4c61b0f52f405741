// Package confidence implements the pure scorer of spec.md §4.7: it turns
// a SegmentationQuality snapshot into a [0,1] score and a High/Low bucket.
package confidence

import "github.com/arcsight-ai/arcsight/internal/domain"

// HighThreshold is the score at or above which the bucket is High.
const HighThreshold = 0.8

// Score computes the confidence score for q, short-circuiting to 0 in the
// fixed order the spec mandates: malformed input, low file count, uncertain
// alias status, monorepo, unstable import graph. Otherwise it blends
// coverage and resolution-ratio signals with a fixed 0.3 base term.
func Score(q domain.SegmentationQuality) float64 {
	if !isWellFormed(q) {
		return 0
	}
	if q.FileCount < 10 {
		return 0
	}
	if q.AliasStatus == domain.AliasStatusUncertain {
		return 0
	}
	if q.IsMonorepo {
		return 0
	}
	if !q.ImportGraphStable {
		return 0
	}

	score := 0.4*q.AnalyzedFileCoverage + 0.3*(1-q.UnresolvedImportRatio) + 0.3
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Bucket classifies a score into the High/Low bucket of spec.md §4.7.
func Bucket(score float64) domain.ConfidenceBucket {
	if score >= HighThreshold {
		return domain.ConfidenceHigh
	}
	return domain.ConfidenceLow
}

// isWellFormed rejects structurally nonsensical segmentation snapshots:
// negative counts, coverage/ratio outside [0,1], or analyzed count
// exceeding file count.
func isWellFormed(q domain.SegmentationQuality) bool {
	if q.FileCount < 0 || q.AnalyzedFileCount < 0 {
		return false
	}
	if q.AnalyzedFileCount > q.FileCount {
		return false
	}
	if q.AnalyzedFileCoverage < 0 || q.AnalyzedFileCoverage > 1 {
		return false
	}
	if q.UnresolvedImportRatio < 0 || q.UnresolvedImportRatio > 1 {
		return false
	}
	if q.AliasStatus != domain.AliasStatusOK && q.AliasStatus != domain.AliasStatusUncertain {
		return false
	}
	return true
}
