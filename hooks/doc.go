// Package hooks provides a registry for run lifecycle hooks.
//
// Each hook interface corresponds to a specific event type - implement only
// the interfaces you need.
//
// # Hook Interfaces
//
// Run lifecycle hooks:
//   - [reagent.BeforeExecutionHook] - Called once before first iteration
//   - [reagent.AfterExecutionHook] - Called once after the run ends
//   - [reagent.AfterIterationHook] - Called after each iteration
//
// Model call hooks (fired by models.LCGCompleter):
//   - [reagent.BeforeModelCallHook] - Receives the raw prompt
//   - [reagent.AfterModelCallHook] - Receives the raw response
//
// Tool call hooks (fired by the agent loop):
//   - [reagent.BeforeToolCallHook]
//   - [reagent.AfterToolCallHook]
//
// # Creating a Hook
//
//	type ToolTimer struct{}
//
//	func (h *ToolTimer) OnAfterToolCall(ctx context.Context, event reagent.AfterToolCallEvent) {
//	    log.Printf("%s took %v", event.ToolName, event.Duration)
//	}
//
//	// Compile-time check
//	var _ reagent.AfterToolCallHook = (*ToolTimer)(nil)
//
// # Sharing
//
// One registry is normally shared by the completion client and the agent so a single
// console hook sees both model and tool events. See package loggers for complete hooks.
package hooks
