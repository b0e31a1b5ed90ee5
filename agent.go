package reagent

import (
	"context"
)

// Agent answers one self-contained question. [react.Agent] is the implementation shipped with
// this module; the interface exists so the REPL and tests can substitute their own.
type Agent interface {
	Run(ctx context.Context, question string) (string, error)
}

// LoopState is the state of the agent loop state machine.
//
//	Reasoning --(action parsed)--> ActionRequested --(observation appended)--> Reasoning
//	Reasoning --(final answer)---> Done
//	Reasoning --(no marker)------> Stuck
type LoopState string

const (
	// StateReasoning is the initial state: the model is asked to continue the prompt.
	StateReasoning LoopState = "reasoning"

	// StateActionRequested means the model asked for a tool invocation.
	StateActionRequested LoopState = "action_requested"

	// StateDone means the model produced a final answer.
	StateDone LoopState = "done"

	// StateStuck means the response carried neither an action nor a final answer.
	StateStuck LoopState = "stuck"
)

// Action is a tool invocation requested by the model, parsed from one completion response.
type Action struct {
	Name  string
	Input string
}

// StepKind says which terminal marker a response carried.
type StepKind int

const (
	// StepAction means the response requested a tool invocation.
	StepAction StepKind = iota + 1

	// StepFinalAnswer means the response carried the final answer.
	StepFinalAnswer
)

// Step is the parsed form of one completion response.
type Step struct {
	Kind StepKind

	// Action is set when Kind is StepAction.
	Action Action

	// Answer is set when Kind is StepFinalAnswer.
	Answer string
}

// Exchange is one question/answer pair in a session transcript.
type Exchange struct {
	Question string
	Answer   string

	// Summary marks a synthetic exchange produced by compaction. Answer holds the summary of
	// the exchanges it replaced and Question is empty.
	Summary bool
}

// Result contains the final result of one agent run.
type Result struct {
	// Answer is the final answer (set when the run terminated successfully).
	Answer string

	// Trace contains per-iteration trace data.
	Trace *Trace

	// Error is any error that occurred (nil if successful).
	Error error
}
