package loggers

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologHook(t *testing.T) {
	var buf bytes.Buffer
	hook := NewZerologHook(zerolog.New(&buf).Level(zerolog.DebugLevel))
	ctx := reagent.WithSessionID(context.Background(), "session-1")

	hook.OnBeforeExecution(ctx, reagent.BeforeExecutionEvent{Question: "What is 2+2?"})
	hook.OnBeforeModelCall(ctx, reagent.BeforeModelCallEvent{Model: "gpt", Prompt: "secret prompt"})
	hook.OnAfterModelCall(ctx, reagent.AfterModelCallEvent{
		Model:        "gpt",
		Response:     "Action: calculator",
		InputTokens:  12,
		OutputTokens: 5,
		Duration:     time.Second,
	})
	hook.OnBeforeToolCall(ctx, reagent.BeforeToolCallEvent{ToolName: "calculator", Input: "2+2"})
	hook.OnAfterToolCall(ctx, reagent.AfterToolCallEvent{
		ToolName: "calculator",
		Error:    errors.New("boom"),
	})
	hook.OnAfterIteration(ctx, reagent.AfterIterationEvent{Iteration: 1, State: reagent.StateActionRequested})
	hook.OnAfterExecution(ctx, reagent.AfterExecutionEvent{
		Answer:            "4",
		TerminationReason: reagent.TerminationSuccess,
		Iterations:        2,
	})

	records := decodeRecords(t, &buf)
	require.Len(t, records, 6, "trace records are filtered at debug")

	messages := make([]string, len(records))
	for i, r := range records {
		messages[i] = r["message"].(string)
		assert.Equal(t, "session-1", r["session_id"])
	}
	assert.Equal(t, []string{
		"run started",
		"model call finished",
		"tool call",
		"tool call failed",
		"iteration",
		"run finished",
	}, messages)

	assert.Equal(t, float64(12), records[1]["input_tokens"])
	assert.Equal(t, float64(5), records[1]["output_tokens"])
	assert.Equal(t, "warn", records[3]["level"])
	assert.Equal(t, "boom", records[3]["error"])
	assert.Equal(t, "action_requested", records[4]["state"])
	assert.Equal(t, "success", records[5]["termination_reason"])
	assert.NotContains(t, buf.String(), "secret prompt")
}

func TestZerologHook_NoSession(t *testing.T) {
	var buf bytes.Buffer
	hook := NewZerologHook(zerolog.New(&buf))

	hook.OnAfterExecution(context.Background(), reagent.AfterExecutionEvent{
		TerminationReason: reagent.TerminationMaxIterations,
		Error:             reagent.ErrMaxIterationsExceeded,
	})

	records := decodeRecords(t, &buf)
	require.Len(t, records, 1)
	assert.NotContains(t, records[0], "session_id")
	assert.Equal(t, "warn", records[0]["level"])
}

func TestConsoleHook(t *testing.T) {
	t.Run("prompt and response", func(t *testing.T) {
		var buf bytes.Buffer
		hook := NewConsoleHook(&buf)

		hook.OnBeforeModelCall(context.Background(), reagent.BeforeModelCallEvent{
			Prompt: "Question: What is 2+2?\nThought:",
		})
		hook.OnAfterModelCall(context.Background(), reagent.AfterModelCallEvent{
			Response: " I should use the calculator\nAction: calculator\nAction Input: 2+2",
		})
		hook.OnBeforeToolCall(context.Background(), reagent.BeforeToolCallEvent{ToolName: "calculator"})

		out := buf.String()
		assert.Contains(t, out, "Question: What is 2+2?\nThought:")
		assert.Contains(t, out, "Action: calculator\nAction Input: 2+2")
		assert.NotContains(t, out, "BeforeToolCall", "tool dumps are verbose only")
	})

	t.Run("model error", func(t *testing.T) {
		var buf bytes.Buffer
		hook := NewConsoleHook(&buf)

		hook.OnAfterModelCall(context.Background(), reagent.AfterModelCallEvent{
			Error: errors.New("rate limited"),
		})

		assert.Contains(t, buf.String(), "model error: rate limited")
	})

	t.Run("verbose tool dumps", func(t *testing.T) {
		var buf bytes.Buffer
		hook := NewConsoleHook(&buf).WithVerbose(true)

		hook.OnBeforeToolCall(context.Background(), reagent.BeforeToolCallEvent{
			ToolName: "search",
			Input:    "weather in Paris",
		})
		hook.OnAfterToolCall(context.Background(), reagent.AfterToolCallEvent{
			ToolName: "search",
			Output:   "Sunny",
			Duration: 2 * time.Second,
		})
		hook.OnAfterExecution(context.Background(), reagent.AfterExecutionEvent{
			TerminationReason: reagent.TerminationSuccess,
			Iterations:        2,
		})

		out := buf.String()
		assert.Contains(t, out, ">>> BeforeToolCall: search")
		assert.Contains(t, out, "input: weather in Paris")
		assert.Contains(t, out, ">>> AfterToolCall: search")
		assert.Contains(t, out, "output: Sunny")
		assert.Contains(t, out, "duration: 2s")
		assert.Contains(t, out, "termination_reason: success")
	})
}
