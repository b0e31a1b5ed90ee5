package reagent

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is; the typed errors below unwrap to them.
var (
	// ErrConfiguration is fatal at startup: missing credentials, unreadable templates, invalid
	// config file.
	ErrConfiguration = errors.New("reagent: configuration error")

	// ErrCompletion is returned when the completion backend fails.
	ErrCompletion = errors.New("reagent: completion failed")

	// ErrUnknownTool is returned when the model names a tool that is not registered.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrToolExecution is returned when a registered tool fails.
	ErrToolExecution = errors.New("tool execution failed")

	// ErrInvalidExpression is returned by the calculator on malformed input.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrNoTerminalMarkerFound is returned when a response has neither an action nor a final
	// answer.
	ErrNoTerminalMarkerFound = errors.New("no Action or Final Answer found in model output")

	// ErrMaxIterationsExceeded is returned when the loop hits its iteration bound.
	ErrMaxIterationsExceeded = errors.New("reagent: maximum iterations exceeded")

	// ErrTimeout is returned when a model or tool call exceeds its per-call timeout.
	ErrTimeout = errors.New("reagent: call timed out")
)

// ConfigurationError describes an invalid or missing setting.
type ConfigurationError struct {
	// Key is the setting that failed, e.g. "OPENAI_API_KEY" or "templates.main".
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("configuration: %s", e.Key)
	}
	return fmt.Sprintf("configuration: %s: %v", e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfiguration}
	}
	return []error{ErrConfiguration, e.Err}
}

// CompletionError wraps a completion backend failure.
type CompletionError struct {
	Model string
	Err   error
}

func (e *CompletionError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("completion failed: %v", e.Err)
	}
	return fmt.Sprintf("completion failed (%s): %v", e.Model, e.Err)
}

func (e *CompletionError) Unwrap() []error {
	return []error{ErrCompletion, e.Err}
}

// ToolExecutionError wraps a failure returned by a registered tool.
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %q: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() []error {
	return []error{ErrToolExecution, e.Err}
}
