package tt

import (
	"context"
	"fmt"
	"sync"

	"github.com/rickchristie/reagent"
)

// RecordingHook implements every hook interface and records events in firing order.
type RecordingHook struct {
	mu     sync.Mutex
	events []reagent.HookEvent
}

// NewRecordingHook creates an empty RecordingHook.
func NewRecordingHook() *RecordingHook {
	return &RecordingHook{}
}

func (h *RecordingHook) record(e reagent.HookEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

// Events returns a copy of the recorded events.
func (h *RecordingHook) Events() []reagent.HookEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]reagent.HookEvent, len(h.events))
	copy(out, h.events)
	return out
}

// EventTypes returns the recorded event type names, e.g. "BeforeModelCallEvent".
func (h *RecordingHook) EventTypes() []string {
	events := h.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = EventName(e)
	}
	return out
}

// EventName returns the unqualified type name of e.
func EventName(e reagent.HookEvent) string {
	name := fmt.Sprintf("%T", e)
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}

func (h *RecordingHook) OnBeforeExecution(_ context.Context, e reagent.BeforeExecutionEvent) {
	h.record(e)
}

func (h *RecordingHook) OnAfterExecution(_ context.Context, e reagent.AfterExecutionEvent) {
	h.record(e)
}

func (h *RecordingHook) OnAfterIteration(_ context.Context, e reagent.AfterIterationEvent) {
	h.record(e)
}

func (h *RecordingHook) OnBeforeModelCall(_ context.Context, e reagent.BeforeModelCallEvent) {
	h.record(e)
}

func (h *RecordingHook) OnAfterModelCall(_ context.Context, e reagent.AfterModelCallEvent) {
	h.record(e)
}

func (h *RecordingHook) OnBeforeToolCall(_ context.Context, e reagent.BeforeToolCallEvent) {
	h.record(e)
}

func (h *RecordingHook) OnAfterToolCall(_ context.Context, e reagent.AfterToolCallEvent) {
	h.record(e)
}

// Compile-time checks that RecordingHook implements every hook interface.
var (
	_ reagent.BeforeExecutionHook = (*RecordingHook)(nil)
	_ reagent.AfterExecutionHook  = (*RecordingHook)(nil)
	_ reagent.AfterIterationHook  = (*RecordingHook)(nil)
	_ reagent.BeforeModelCallHook = (*RecordingHook)(nil)
	_ reagent.AfterModelCallHook  = (*RecordingHook)(nil)
	_ reagent.BeforeToolCallHook  = (*RecordingHook)(nil)
	_ reagent.AfterToolCallHook   = (*RecordingHook)(nil)
)
