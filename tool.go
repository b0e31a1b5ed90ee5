package reagent

import (
	"context"
)

// Tool represents a single named capability the model may invoke with a string input.
//
// Responsibility design:
//   - Tool: accept the raw input, execute logic, return the text the model will observe
//   - ToolChain: dispatch by name, wrap failures, describe tools for the prompt
//
// Tools are defined once at process start and must be safe for concurrent use when shared
// between sessions.
type Tool interface {
	// Name returns the tool's identifier used in "Action:" lines.
	Name() string

	// Description returns a human-readable description for the model.
	Description() string

	// Call executes the tool with the given input.
	Call(ctx context.Context, input string) (string, error)
}

// ToolFunc is a convenience type for creating tools from functions.
type ToolFunc struct {
	name        string
	description string
	fn          func(ctx context.Context, input string) (string, error)
}

// NewToolFunc creates a new ToolFunc.
func NewToolFunc(
	name, description string,
	fn func(ctx context.Context, input string) (string, error),
) *ToolFunc {
	return &ToolFunc{
		name:        name,
		description: description,
		fn:          fn,
	}
}

// Name returns the tool's identifier.
func (t *ToolFunc) Name() string {
	return t.name
}

// Description returns a human-readable description for the model.
func (t *ToolFunc) Description() string {
	return t.description
}

// Call executes the tool function with the given input.
func (t *ToolFunc) Call(ctx context.Context, input string) (string, error) {
	return t.fn(ctx, input)
}

// Compile-time check that ToolFunc implements Tool.
var _ Tool = (*ToolFunc)(nil)
