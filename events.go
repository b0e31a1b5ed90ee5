package reagent

import "time"

// -----------------------------------------------------------------------------
// Hook Event Interface
// -----------------------------------------------------------------------------

// HookEvent is a marker interface for all hook events.
type HookEvent interface {
	hookEvent()
}

// -----------------------------------------------------------------------------
// Run Events
// -----------------------------------------------------------------------------

// BeforeExecutionEvent is emitted once before the first iteration of a run.
type BeforeExecutionEvent struct {
	// Question is the self-contained question the run answers.
	Question string
}

func (BeforeExecutionEvent) hookEvent() {}

// AfterExecutionEvent is emitted once after a run terminates.
type AfterExecutionEvent struct {
	// Answer is the final answer (empty on failure).
	Answer string

	// TerminationReason indicates why the run ended.
	TerminationReason TerminationReason

	// Iterations is the number of completed iterations.
	Iterations int

	// Duration is the total run time.
	Duration time.Duration

	// Error is the error if the run failed (nil on success).
	Error error
}

func (AfterExecutionEvent) hookEvent() {}

// AfterIterationEvent is emitted after each completion has been parsed and handled.
type AfterIterationEvent struct {
	// Iteration is the current iteration number (1-indexed).
	Iteration int

	// State is the state the response moved the loop into.
	State LoopState

	// Response is the raw model response.
	Response string

	// Observation is the text appended after the response (empty when Done).
	Observation string

	// Duration is how long this iteration took.
	Duration time.Duration
}

func (AfterIterationEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Model Call Events
// -----------------------------------------------------------------------------

// BeforeModelCallEvent is emitted before the completion backend is called.
type BeforeModelCallEvent struct {
	// Model is the backend model identifier.
	Model string

	// Prompt is the raw prompt.
	Prompt string
}

func (BeforeModelCallEvent) hookEvent() {}

// AfterModelCallEvent is emitted after the completion backend returns.
type AfterModelCallEvent struct {
	// Model is the backend model identifier.
	Model string

	// Prompt is the raw prompt.
	Prompt string

	// Response is the raw response text (empty on error).
	Response string

	// InputTokens and OutputTokens are the usage reported by the backend, 0 when unknown.
	InputTokens  int
	OutputTokens int

	// Duration is how long the call took.
	Duration time.Duration

	// Error is the call error, if any.
	Error error
}

func (AfterModelCallEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Tool Call Events
// -----------------------------------------------------------------------------

// BeforeToolCallEvent is emitted before a tool is executed.
type BeforeToolCallEvent struct {
	// ToolName is the name the model asked for.
	ToolName string

	// Input is the parsed action input.
	Input string
}

func (BeforeToolCallEvent) hookEvent() {}

// AfterToolCallEvent is emitted after a tool execution completes.
type AfterToolCallEvent struct {
	// ToolName is the name the model asked for.
	ToolName string

	// Input is the parsed action input.
	Input string

	// Output is the tool result (empty on error).
	Output string

	// Duration is how long the call took.
	Duration time.Duration

	// Error is the tool error, if any. Tool errors are fed back to the model, not returned.
	Error error
}

func (AfterToolCallEvent) hookEvent() {}
