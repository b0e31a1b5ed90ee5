package models

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/hooks"
	"github.com/rickchristie/reagent/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestLCGCompleter_Complete(t *testing.T) {
	type input struct {
		setup func(llm *tt.MockLLM)
		delay time.Duration
	}

	type expected struct {
		response   string
		completion bool
		timeout    bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "returns first choice content",
			input: input{setup: func(llm *tt.MockLLM) {
				llm.AddResponse("Thought: easy\nFinal Answer: 4", 12, 6)
			}},
			expected: expected{response: "Thought: easy\nFinal Answer: 4"},
		},
		{
			name: "backend failure",
			input: input{setup: func(llm *tt.MockLLM) {
				llm.AddError(errors.New("status 500"))
			}},
			expected: expected{completion: true},
		},
		{
			name: "empty choices",
			input: input{setup: func(llm *tt.MockLLM) {
				llm.AddRawResponse(&llms.ContentResponse{})
			}},
			expected: expected{completion: true},
		},
		{
			name:     "deadline is a timeout",
			input:    input{setup: func(*tt.MockLLM) {}, delay: time.Second},
			expected: expected{completion: true, timeout: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			llm := tt.NewMockLLM().WithDelay(tc.input.delay)
			tc.input.setup(llm)
			model := NewLCGCompleter(llm, reagent.DefaultGenerationParams())

			ctx := context.Background()
			if tc.input.delay > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, 10*time.Millisecond)
				defer cancel()
			}

			response, err := model.Complete(ctx, "prompt")
			if tc.expected.completion {
				assert.True(t, errors.Is(err, reagent.ErrCompletion), "got %v", err)
				assert.Equal(t, tc.expected.timeout, errors.Is(err, reagent.ErrTimeout))
				var completionErr *reagent.CompletionError
				require.True(t, errors.As(err, &completionErr))
				assert.Equal(t, "gpt-3.5-turbo", completionErr.Model)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected.response, response)
		})
	}
}

func TestLCGCompleter_SendsFixedParams(t *testing.T) {
	llm := tt.NewMockLLM().AddResponse("ok", 1, 1)
	model := NewLCGCompleter(llm, reagent.DefaultGenerationParams())

	_, err := model.Complete(context.Background(), "Question: hi\nThought:")
	require.NoError(t, err)

	require.Len(t, llm.CapturedMessages, 1)
	messages := llm.CapturedMessages[0]
	require.Len(t, messages, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, messages[0].Role)
	require.Len(t, messages[0].Parts, 1)
	assert.Equal(t, llms.TextContent{Text: "Question: hi\nThought:"}, messages[0].Parts[0])

	opts := llm.CapturedOptions[0]
	assert.Equal(t, "gpt-3.5-turbo", opts.Model)
	assert.Equal(t, 256, opts.MaxTokens)
	assert.InDelta(t, 0.7, opts.Temperature, 1e-9)
	assert.Equal(t, []string{"Observation:"}, opts.StopWords)
}

func TestLCGCompleter_FiresHooks(t *testing.T) {
	llm := tt.NewMockLLM().
		AddResponse("Final Answer: 4", 20, 5).
		AddError(errors.New("boom"))
	recorder := tt.NewRecordingHook()
	model := NewLCGCompleter(llm, reagent.DefaultGenerationParams()).
		WithHooks(hooks.NewRegistry().Register(recorder))

	_, err := model.Complete(context.Background(), "p1")
	require.NoError(t, err)
	_, err = model.Complete(context.Background(), "p2")
	require.Error(t, err)

	events := recorder.Events()
	require.Len(t, events, 4)

	before := events[0].(reagent.BeforeModelCallEvent)
	assert.Equal(t, "p1", before.Prompt)

	after := events[1].(reagent.AfterModelCallEvent)
	assert.Equal(t, "p1", after.Prompt)
	assert.Equal(t, "Final Answer: 4", after.Response)
	assert.Equal(t, 20, after.InputTokens)
	assert.Equal(t, 5, after.OutputTokens)
	assert.NoError(t, after.Error)

	failed := events[3].(reagent.AfterModelCallEvent)
	assert.Empty(t, failed.Response)
	assert.True(t, errors.Is(failed.Error, reagent.ErrCompletion))
}

func TestGetIntFromMap(t *testing.T) {
	info := map[string]any{
		"PromptTokens":     float64(10),
		"CompletionTokens": int64(3),
		"input_tokens":     "nope",
	}
	assert.Equal(t, 10, extractInputTokens(info))
	assert.Equal(t, 3, extractOutputTokens(info))
	assert.Equal(t, 0, getIntFromMap(info, "input_tokens"))
	assert.Equal(t, 0, getIntFromMap(info, "missing"))
}
