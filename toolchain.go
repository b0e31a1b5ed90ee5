package reagent

import "context"

// ToolDescription is a tool's name and the description shown to the model.
type ToolDescription struct {
	Name        string
	Description string
}

// ToolChain is the closed set of tools an agent may call.
//
// # Responsibilities
//
//   - Describe/Prompt: the tool catalog substituted into the main template
//   - Execute: exact-match dispatch on the trimmed name, failure wrapping
//
// # Error Contract
//
// Execute must return an error matching [ErrUnknownTool] for unregistered names and a
// [*ToolExecutionError] for failures of a registered tool. The agent loop turns both into an
// "Observation: error: ..." line; neither ends the run.
//
// # Available Implementations
//
//   - toolchain.NewRegistry(): immutable name -> tool mapping
type ToolChain interface {
	Describe() []ToolDescription
	Prompt() string
	Execute(ctx context.Context, name, input string) (string, error)
}
