package safety

// SwitchContext aggregates the pre-computed signals the safety switch
// consults. It never measures anything itself; every field is produced by
// an earlier pipeline stage or the orchestrator's own bookkeeping.
type SwitchContext struct {
	// DeterministicRunsAgree is false when repeated analysis of the same
	// input produced different results (the orchestrator's own
	// double-check, when performed).
	DeterministicRunsAgree bool
	// RuntimeSeconds is an externally measured wall-clock duration.
	RuntimeSeconds float64
	// AliasAmbiguityDetected mirrors FileStats.AliasAmbiguityDetected.
	AliasAmbiguityDetected bool
	// ImportGraphIncomplete is true when the extractor could not finish
	// walking the repository, i.e. its Extract call returned an error.
	ImportGraphIncomplete bool
	// RootCauseUnstable is true when the attributor itself reported
	// errorDetected.
	RootCauseUnstable bool
	// ComponentErrorDetected is true when any upstream stage's own
	// errorDetected flag was set.
	ComponentErrorDetected bool
	// Malformed marks the context itself as structurally invalid input
	// (e.g. a negative runtime). A malformed context always silences.
	Malformed bool
}

// RuntimeThresholdSeconds is the strict upper bound on analysis runtime.
// Exactly at the threshold the switch does not trigger.
const RuntimeThresholdSeconds = 7.0

// ShouldSilence evaluates ctx and reports whether the orchestrator must
// collapse its result to the empty, zero-confidence shape.
func ShouldSilence(ctx SwitchContext) bool {
	if ctx.Malformed {
		return true
	}
	if ctx.RuntimeSeconds < 0 {
		return true
	}
	if !ctx.DeterministicRunsAgree {
		return true
	}
	if ctx.RuntimeSeconds > RuntimeThresholdSeconds {
		return true
	}
	if ctx.AliasAmbiguityDetected {
		return true
	}
	if ctx.ImportGraphIncomplete {
		return true
	}
	if ctx.RootCauseUnstable {
		return true
	}
	if ctx.ComponentErrorDetected {
		return true
	}
	return false
}
