package reagent

import "time"

// Limits bound the resources one run may consume.
//
// A run without limits can loop forever when the model never emits a final answer, and a hung
// backend stalls the REPL. Every field has a non-zero default in [DefaultLimits].
type Limits struct {
	// MaxIterations is the maximum number of completions per run. The run fails with
	// [ErrMaxIterationsExceeded] when reached. Must be >= 1.
	MaxIterations int

	// ModelTimeout bounds each completion request. Zero disables the per-call timeout.
	ModelTimeout time.Duration

	// ToolTimeout bounds each tool execution. Zero disables the per-call timeout.
	ToolTimeout time.Duration
}

// DefaultLimits returns the limits used when none are configured:
//   - 10 iterations
//   - 60s per completion
//   - 30s per tool call
func DefaultLimits() Limits {
	return Limits{
		MaxIterations: 10,
		ModelTimeout:  60 * time.Second,
		ToolTimeout:   30 * time.Second,
	}
}
