package loggers

import (
	"context"

	"github.com/rickchristie/reagent"
	"github.com/rs/zerolog"
)

// ZerologHook writes agent events as structured log records.
//
// Runs log at info, iterations and calls at debug, failures at warn. Prompts and responses
// are logged at trace only.
type ZerologHook struct {
	logger zerolog.Logger
}

// NewZerologHook creates a hook writing to logger.
func NewZerologHook(logger zerolog.Logger) *ZerologHook {
	return &ZerologHook{logger: logger}
}

func (h *ZerologHook) with(ctx context.Context) *zerolog.Logger {
	l := h.logger
	if id := reagent.SessionIDFromContext(ctx); id != "" {
		l = l.With().Str("session_id", id).Logger()
	}
	return &l
}

// OnBeforeExecution logs the question.
func (h *ZerologHook) OnBeforeExecution(ctx context.Context, event reagent.BeforeExecutionEvent) {
	h.with(ctx).Info().
		Str("question", event.Question).
		Msg("run started")
}

// OnAfterExecution logs how the run ended.
func (h *ZerologHook) OnAfterExecution(ctx context.Context, event reagent.AfterExecutionEvent) {
	l := h.with(ctx)
	var e *zerolog.Event
	if event.Error != nil {
		e = l.Warn().Err(event.Error)
	} else {
		e = l.Info()
	}
	e.Str("termination_reason", string(event.TerminationReason)).
		Int("iterations", event.Iterations).
		Dur("duration", event.Duration).
		Msg("run finished")
}

// OnAfterIteration logs the iteration state.
func (h *ZerologHook) OnAfterIteration(ctx context.Context, event reagent.AfterIterationEvent) {
	h.with(ctx).Debug().
		Int("iteration", event.Iteration).
		Str("state", string(event.State)).
		Dur("duration", event.Duration).
		Msg("iteration")
}

// OnBeforeModelCall logs the prompt at trace level.
func (h *ZerologHook) OnBeforeModelCall(ctx context.Context, event reagent.BeforeModelCallEvent) {
	h.with(ctx).Trace().
		Str("model", event.Model).
		Str("prompt", event.Prompt).
		Msg("model call")
}

// OnAfterModelCall logs usage and latency.
func (h *ZerologHook) OnAfterModelCall(ctx context.Context, event reagent.AfterModelCallEvent) {
	l := h.with(ctx)
	if event.Error != nil {
		l.Warn().Err(event.Error).
			Str("model", event.Model).
			Dur("duration", event.Duration).
			Msg("model call failed")
		return
	}
	l.Debug().
		Str("model", event.Model).
		Int("input_tokens", event.InputTokens).
		Int("output_tokens", event.OutputTokens).
		Dur("duration", event.Duration).
		Msg("model call finished")
	l.Trace().Str("response", event.Response).Msg("model response")
}

// OnBeforeToolCall logs the tool name and input.
func (h *ZerologHook) OnBeforeToolCall(ctx context.Context, event reagent.BeforeToolCallEvent) {
	h.with(ctx).Debug().
		Str("tool", event.ToolName).
		Str("input", event.Input).
		Msg("tool call")
}

// OnAfterToolCall logs the tool result.
func (h *ZerologHook) OnAfterToolCall(ctx context.Context, event reagent.AfterToolCallEvent) {
	l := h.with(ctx)
	if event.Error != nil {
		l.Warn().Err(event.Error).
			Str("tool", event.ToolName).
			Dur("duration", event.Duration).
			Msg("tool call failed")
		return
	}
	l.Debug().
		Str("tool", event.ToolName).
		Str("output", event.Output).
		Dur("duration", event.Duration).
		Msg("tool call finished")
}

var (
	_ reagent.BeforeExecutionHook = (*ZerologHook)(nil)
	_ reagent.AfterExecutionHook  = (*ZerologHook)(nil)
	_ reagent.AfterIterationHook  = (*ZerologHook)(nil)
	_ reagent.BeforeModelCallHook = (*ZerologHook)(nil)
	_ reagent.AfterModelCallHook  = (*ZerologHook)(nil)
	_ reagent.BeforeToolCallHook  = (*ZerologHook)(nil)
	_ reagent.AfterToolCallHook   = (*ZerologHook)(nil)
)
