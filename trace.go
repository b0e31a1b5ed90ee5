package reagent

import (
	"time"
)

// -----------------------------------------------------------------------------
// Run Trace
// -----------------------------------------------------------------------------

// Trace stores debug information for one agent run.
type Trace struct {
	// Iterations contains trace data for each loop iteration.
	Iterations []IterationTrace

	// StartTime is when the run began.
	StartTime time.Time

	// EndTime is when the run completed.
	EndTime time.Time

	// TotalDuration is the total run time.
	TotalDuration time.Duration

	// TerminationReason describes why the run ended.
	TerminationReason TerminationReason

	// FinalIteration is the last iteration number (1-indexed).
	FinalIteration int
}

// TerminationReason indicates why a run terminated.
type TerminationReason string

const (
	// TerminationSuccess means the model produced a final answer.
	TerminationSuccess TerminationReason = "success"

	// TerminationMaxIterations means the iteration bound was reached.
	TerminationMaxIterations TerminationReason = "max_iterations"

	// TerminationStuck means the model produced no marker and strict termination is on.
	TerminationStuck TerminationReason = "stuck"

	// TerminationError means a completion error ended the run.
	TerminationError TerminationReason = "error"

	// TerminationContextCanceled means the caller's context was canceled.
	TerminationContextCanceled TerminationReason = "context_canceled"
)

// IterationTrace stores trace data for a single loop iteration.
type IterationTrace struct {
	// Iteration is the iteration number (1-indexed).
	Iteration int

	// State is the state this iteration moved the loop into.
	State LoopState

	// PromptLength is the length in bytes of the prompt sent on this iteration.
	PromptLength int

	// Response is the raw model response.
	Response string

	// Action is set when State is StateActionRequested.
	Action *Action

	// Observation is the text appended after the response.
	Observation string

	// Duration is how long this iteration took.
	Duration time.Duration

	// Error is a completion error or a tool error fed back to the model.
	Error error
}
