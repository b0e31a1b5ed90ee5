package hooks

import (
	"context"
	"sync"

	"github.com/rickchristie/reagent"
)

// Registry manages a collection of hooks and dispatches events to them.
//
// Hooks can implement any combination of hook interfaces - they only receive
// events for the interfaces they implement.
//
//	registry := hooks.NewRegistry().
//	    Register(loggers.NewConsoleHook(os.Stdout)).
//	    Register(loggers.NewZerologHook(logger))
//
// A nil *Registry is valid and drops every event.
//
// # Thread Safety
//
// Register and the Fire methods may be called concurrently; sessions running in parallel share
// one registry.
type Registry struct {
	mu    sync.RWMutex
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook to the registry. Hooks are called in the order they are registered.
func (r *Registry) Register(hook any) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
	return r
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

func (r *Registry) snapshot() []any {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hooks
}

// FireBeforeExecution dispatches a BeforeExecutionEvent.
func (r *Registry) FireBeforeExecution(ctx context.Context, event reagent.BeforeExecutionEvent) {
	for _, h := range r.snapshot() {
		if hook, ok := h.(reagent.BeforeExecutionHook); ok {
			hook.OnBeforeExecution(ctx, event)
		}
	}
}

// FireAfterExecution dispatches an AfterExecutionEvent.
func (r *Registry) FireAfterExecution(ctx context.Context, event reagent.AfterExecutionEvent) {
	for _, h := range r.snapshot() {
		if hook, ok := h.(reagent.AfterExecutionHook); ok {
			hook.OnAfterExecution(ctx, event)
		}
	}
}

// FireAfterIteration dispatches an AfterIterationEvent.
func (r *Registry) FireAfterIteration(ctx context.Context, event reagent.AfterIterationEvent) {
	for _, h := range r.snapshot() {
		if hook, ok := h.(reagent.AfterIterationHook); ok {
			hook.OnAfterIteration(ctx, event)
		}
	}
}

// FireBeforeModelCall dispatches a BeforeModelCallEvent.
func (r *Registry) FireBeforeModelCall(ctx context.Context, event reagent.BeforeModelCallEvent) {
	for _, h := range r.snapshot() {
		if hook, ok := h.(reagent.BeforeModelCallHook); ok {
			hook.OnBeforeModelCall(ctx, event)
		}
	}
}

// FireAfterModelCall dispatches an AfterModelCallEvent.
func (r *Registry) FireAfterModelCall(ctx context.Context, event reagent.AfterModelCallEvent) {
	for _, h := range r.snapshot() {
		if hook, ok := h.(reagent.AfterModelCallHook); ok {
			hook.OnAfterModelCall(ctx, event)
		}
	}
}

// FireBeforeToolCall dispatches a BeforeToolCallEvent.
func (r *Registry) FireBeforeToolCall(ctx context.Context, event reagent.BeforeToolCallEvent) {
	for _, h := range r.snapshot() {
		if hook, ok := h.(reagent.BeforeToolCallHook); ok {
			hook.OnBeforeToolCall(ctx, event)
		}
	}
}

// FireAfterToolCall dispatches an AfterToolCallEvent.
func (r *Registry) FireAfterToolCall(ctx context.Context, event reagent.AfterToolCallEvent) {
	for _, h := range r.snapshot() {
		if hook, ok := h.(reagent.AfterToolCallHook); ok {
			hook.OnAfterToolCall(ctx, event)
		}
	}
}
