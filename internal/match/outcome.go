package match

import "slices"

// Outcome is the semantic classification of a finished match.
type Outcome int

const (
	// OutcomeUnknown means the match never produced a terminal unit set.
	OutcomeUnknown Outcome = iota

	// OutcomeSuccess means every unit exited cleanly.
	OutcomeSuccess

	// OutcomeRealtimeTimedOut means a unit reported the realtime
	// timeout sentinel.
	OutcomeRealtimeTimedOut

	// OutcomeUnitError means a unit finished with a generic error code.
	OutcomeUnitError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRealtimeTimedOut:
		return "realtime-timed-out"
	case OutcomeUnitError:
		return "unit-error"
	default:
		return "unknown"
	}
}

// Classify maps raw unit exit codes to a match outcome. A realtime
// timeout takes precedence over a generic error when both occur in the
// same match. Codes other than the two reserved values count as
// success here; they are preserved upstream for diagnostics.
func Classify(exitCodes []int) Outcome {
	if slices.Contains(exitCodes, ExitCodeRealtimeOuted) {
		return OutcomeRealtimeTimedOut
	}
	if slices.Contains(exitCodes, exitCodeUnitError) {
		return OutcomeUnitError
	}
	return OutcomeSuccess
}
