package reagent

import (
	"context"
)

// -----------------------------------------------------------------------------
// Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe a run at fixed points. To use hooks:
//
//  1. Implement the desired hook interface(s)
//  2. Register with hooks.Registry
//  3. Pass the registry to the model wrapper and the agent
//
// Example:
//
//	type TimingHook struct{}
//
//	func (h *TimingHook) OnAfterModelCall(ctx context.Context, e reagent.AfterModelCallEvent) {
//	    log.Printf("model %s answered in %v", e.Model, e.Duration)
//	}
//
//	registry := hooks.NewRegistry().Register(&TimingHook{})
//
// Hooks are called in registration order. They cannot alter the values flowing through the
// loop; events are passed by value.
// -----------------------------------------------------------------------------

// BeforeExecutionHook is notified once before a run starts.
type BeforeExecutionHook interface {
	OnBeforeExecution(ctx context.Context, event BeforeExecutionEvent)
}

// AfterExecutionHook is notified once after a run terminates, successfully or not.
type AfterExecutionHook interface {
	OnAfterExecution(ctx context.Context, event AfterExecutionEvent)
}

// AfterIterationHook is notified after each loop iteration.
type AfterIterationHook interface {
	OnAfterIteration(ctx context.Context, event AfterIterationEvent)
}

// BeforeModelCallHook is notified with the raw prompt before each completion request.
type BeforeModelCallHook interface {
	OnBeforeModelCall(ctx context.Context, event BeforeModelCallEvent)
}

// AfterModelCallHook is notified with the raw response after each completion request.
type AfterModelCallHook interface {
	OnAfterModelCall(ctx context.Context, event AfterModelCallEvent)
}

// BeforeToolCallHook is notified before each tool execution.
type BeforeToolCallHook interface {
	OnBeforeToolCall(ctx context.Context, event BeforeToolCallEvent)
}

// AfterToolCallHook is notified after each tool execution.
type AfterToolCallHook interface {
	OnAfterToolCall(ctx context.Context, event AfterToolCallEvent)
}
