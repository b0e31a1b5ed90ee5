package toolchain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rickchristie/reagent"
)

// Construction errors.
var (
	ErrEmptyToolName     = errors.New("toolchain: tool name is empty")
	ErrDuplicateToolName = errors.New("toolchain: duplicate tool name")
	ErrNilTool           = errors.New("toolchain: tool is nil")
)

// Registry is an immutable mapping from tool name to tool.
type Registry struct {
	order []string
	tools map[string]reagent.Tool
}

// NewRegistry builds a registry from tools. Names must be non-empty, free of surrounding
// whitespace and unique.
func NewRegistry(tools ...reagent.Tool) (*Registry, error) {
	r := &Registry{
		order: make([]string, 0, len(tools)),
		tools: make(map[string]reagent.Tool, len(tools)),
	}
	for _, tool := range tools {
		if tool == nil {
			return nil, ErrNilTool
		}
		name := tool.Name()
		if strings.TrimSpace(name) == "" || strings.TrimSpace(name) != name {
			return nil, fmt.Errorf("%w: %q", ErrEmptyToolName, name)
		}
		if _, exists := r.tools[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateToolName, name)
		}
		r.order = append(r.order, name)
		r.tools[name] = tool
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
// Use this for tool sets defined at init time.
func MustNewRegistry(tools ...reagent.Tool) *Registry {
	r, err := NewRegistry(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

// Describe returns the registered tools in registration order.
func (r *Registry) Describe() []reagent.ToolDescription {
	out := make([]reagent.ToolDescription, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, reagent.ToolDescription{
			Name:        name,
			Description: r.tools[name].Description(),
		})
	}
	return out
}

// Prompt renders the tool catalog as "name: description" lines.
func (r *Registry) Prompt() string {
	lines := make([]string, 0, len(r.order))
	for _, d := range r.Describe() {
		lines = append(lines, d.Name+": "+d.Description)
	}
	return strings.Join(lines, "\n")
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Execute calls the named tool with input.
func (r *Registry) Execute(ctx context.Context, name, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	tool, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (available: %s)",
			reagent.ErrUnknownTool, name, strings.Join(r.order, ", "))
	}

	output, err := tool.Call(ctx, input)
	if err != nil {
		return "", &reagent.ToolExecutionError{Tool: name, Err: err}
	}
	return output, nil
}

// Compile-time check that Registry implements reagent.ToolChain.
var _ reagent.ToolChain = (*Registry)(nil)
