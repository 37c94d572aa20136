package provisioning

import "fmt"

// Outcome tags a step result. The sequencer branches on the tag, never on
// error contents.
type Outcome int

const (
	// OutcomeSuccess: the step achieved its primary goal automatically.
	OutcomeSuccess Outcome = iota
	// OutcomeFallback: the goal was achieved through a secondary path
	// (adopted project, recovered key). Reported as
	// "automated-with-fallback" in the summary.
	OutcomeFallback
	// OutcomeDegraded: the goal was not achieved; manual follow-up
	// instructions were recorded and the run continues.
	OutcomeDegraded
	// OutcomeFatal: the run cannot continue.
	OutcomeFatal
)

// String returns the summary label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "automated"
	case OutcomeFallback:
		return "automated-with-fallback"
	case OutcomeDegraded:
		return "manual-required"
	case OutcomeFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// StepResult is the tagged result every step returns.
type StepResult struct {
	Outcome Outcome
	// Detail is a one-line human explanation recorded in the summary.
	Detail string
	// Err carries the underlying failure for Degraded and Fatal results.
	Err error
}

// Success returns a plain success result.
func Success() StepResult {
	return StepResult{Outcome: OutcomeSuccess}
}

// Successf returns a success result with a recorded detail line.
func Successf(format string, args ...any) StepResult {
	return StepResult{Outcome: OutcomeSuccess, Detail: fmt.Sprintf(format, args...)}
}

// Fallbackf returns a fallback result.
func Fallbackf(format string, args ...any) StepResult {
	return StepResult{Outcome: OutcomeFallback, Detail: fmt.Sprintf(format, args...)}
}

// Degraded returns a degraded result wrapping the causing error.
func Degraded(err error, format string, args ...any) StepResult {
	return StepResult{Outcome: OutcomeDegraded, Detail: fmt.Sprintf(format, args...), Err: err}
}

// Fatalf returns a fatal result.
func Fatalf(err error, format string, args ...any) StepResult {
	return StepResult{Outcome: OutcomeFatal, Detail: fmt.Sprintf(format, args...), Err: err}
}
