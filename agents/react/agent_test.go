package react

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/hooks"
	"github.com/rickchristie/reagent/internal/tt"
	"github.com/rickchristie/reagent/prompt"
	"github.com/rickchristie/reagent/toolchain"
	"github.com/rickchristie/reagent/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, extra ...reagent.Tool) *toolchain.Registry {
	t.Helper()
	registry, err := toolchain.NewRegistry(append([]reagent.Tool{tools.NewCalculator()}, extra...)...)
	require.NoError(t, err)
	return registry
}

func TestAgent_Run_EndToEnd(t *testing.T) {
	actionResponse := " I need to compute 15% of 200.\nAction: calculator\nAction Input: 200 * 0.15\n"
	answerResponse := " I now know the final answer\nFinal Answer: 30"

	model := tt.NewMockModel().AddResponses(actionResponse, answerResponse)
	agent := NewAgent(model, newRegistry(t))

	answer, err := agent.Run(context.Background(), "What is 15% of 200?")
	require.NoError(t, err)
	assert.Equal(t, "30", answer)

	prompts := model.Prompts()
	require.Len(t, prompts, 2)

	initial := prompt.DefaultMain().Render(
		prompt.V(prompt.Question, "What is 15% of 200?"),
		prompt.V(prompt.Tools, newRegistry(t).Prompt()),
	)
	assert.Equal(t, initial, prompts[0])
	assert.Contains(t, prompts[0], "calculator: Useful for getting the result of a math expression.")
	assert.Contains(t, prompts[0], "Question: What is 15% of 200?")
	assert.NotContains(t, prompts[0], "${")

	assert.Equal(t, prompts[0]+actionResponse+tt.Observation("30"), prompts[1])
	tt.AssertPromptsGrow(t, prompts)
}

func TestAgent_Execute(t *testing.T) {
	type input struct {
		responses []string
		setup     func(m *tt.MockModel)
		limits    reagent.Limits
		strict    bool
	}

	type expected struct {
		answer      string
		errs        []error
		reason      reagent.TerminationReason
		states      []reagent.LoopState
		modelCalls  int
		observation string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:  "direct final answer",
			input: input{responses: []string{" I know this.\nFinal Answer: Paris"}},
			expected: expected{
				answer:     "Paris",
				reason:     reagent.TerminationSuccess,
				states:     []reagent.LoopState{reagent.StateDone},
				modelCalls: 1,
			},
		},
		{
			name: "action takes priority over final answer",
			input: input{responses: []string{
				"Action: calculator\nAction Input: 2+2\nFinal Answer: 5",
				"Final Answer: 4",
			}},
			expected: expected{
				answer:      "4",
				reason:      reagent.TerminationSuccess,
				states:      []reagent.LoopState{reagent.StateActionRequested, reagent.StateDone},
				modelCalls:  2,
				observation: tt.Observation("4"),
			},
		},
		{
			name: "unknown tool is fed back",
			input: input{responses: []string{
				"Action: weather\nAction Input: Paris",
				"Final Answer: sunny",
			}},
			expected: expected{
				answer:      "sunny",
				reason:      reagent.TerminationSuccess,
				states:      []reagent.LoopState{reagent.StateActionRequested, reagent.StateDone},
				modelCalls:  2,
				observation: "Observation: error: unknown tool",
			},
		},
		{
			name: "invalid expression is fed back",
			input: input{responses: []string{
				"Action: calculator\nAction Input: not math",
				"Final Answer: unsure",
			}},
			expected: expected{
				answer:      "unsure",
				reason:      reagent.TerminationSuccess,
				states:      []reagent.LoopState{reagent.StateActionRequested, reagent.StateDone},
				modelCalls:  2,
				observation: "Observation: error: tool \"calculator\": invalid expression",
			},
		},
		{
			name: "stuck response is nudged",
			input: input{responses: []string{
				"I am not sure what to do.",
				"Final Answer: 42",
			}},
			expected: expected{
				answer:      "42",
				reason:      reagent.TerminationSuccess,
				states:      []reagent.LoopState{reagent.StateStuck, reagent.StateDone},
				modelCalls:  2,
				observation: tt.ErrorObservation(reagent.ErrNoTerminalMarkerFound.Error()),
			},
		},
		{
			name: "strict termination fails on stuck response",
			input: input{
				responses: []string{"I am not sure what to do."},
				strict:    true,
			},
			expected: expected{
				errs:       []error{reagent.ErrNoTerminalMarkerFound},
				reason:     reagent.TerminationStuck,
				states:     []reagent.LoopState{reagent.StateStuck},
				modelCalls: 1,
			},
		},
		{
			name: "max iterations with tool calls",
			input: input{
				responses: []string{
					"Action: calculator\nAction Input: 1+1",
					"Action: calculator\nAction Input: 2+2",
					"Action: calculator\nAction Input: 3+3",
					"Final Answer: never reached",
				},
				limits: reagent.Limits{MaxIterations: 3},
			},
			expected: expected{
				errs:   []error{reagent.ErrMaxIterationsExceeded},
				reason: reagent.TerminationMaxIterations,
				states: []reagent.LoopState{
					reagent.StateActionRequested,
					reagent.StateActionRequested,
					reagent.StateActionRequested,
				},
				modelCalls: 3,
			},
		},
		{
			name: "max iterations while stuck wraps the parse error",
			input: input{
				responses: []string{"hmm", "hmm", "hmm"},
				limits:    reagent.Limits{MaxIterations: 2},
			},
			expected: expected{
				errs:       []error{reagent.ErrMaxIterationsExceeded, reagent.ErrNoTerminalMarkerFound},
				reason:     reagent.TerminationMaxIterations,
				states:     []reagent.LoopState{reagent.StateStuck, reagent.StateStuck},
				modelCalls: 2,
			},
		},
		{
			name: "completion error aborts the run",
			input: input{setup: func(m *tt.MockModel) {
				m.AddError(&reagent.CompletionError{Model: "mock", Err: errors.New("status 500")})
			}},
			expected: expected{
				errs:       []error{reagent.ErrCompletion},
				reason:     reagent.TerminationError,
				states:     []reagent.LoopState{reagent.StateReasoning},
				modelCalls: 1,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model := tt.NewMockModel().AddResponses(tc.input.responses...)
			if tc.input.setup != nil {
				tc.input.setup(model)
			}
			agent := NewAgent(model, newRegistry(t)).WithStrictTermination(tc.input.strict)
			if tc.input.limits.MaxIterations > 0 {
				agent.WithLimits(tc.input.limits)
			}

			result := agent.Execute(context.Background(), "question")

			assert.Equal(t, tc.expected.answer, result.Answer)
			if len(tc.expected.errs) == 0 {
				assert.NoError(t, result.Error)
			}
			for _, want := range tc.expected.errs {
				assert.True(t, errors.Is(result.Error, want), "expected %v in %v", want, result.Error)
			}
			assert.Equal(t, tc.expected.reason, result.Trace.TerminationReason)
			tt.AssertIterationStates(t, result.Trace, tc.expected.states...)
			assert.Equal(t, tc.expected.modelCalls, model.CallCount())
			assert.Equal(t, len(tc.expected.states), result.Trace.FinalIteration)

			prompts := model.Prompts()
			tt.AssertPromptsGrow(t, prompts)
			if tc.expected.observation != "" {
				require.GreaterOrEqual(t, len(prompts), 2)
				appended := strings.TrimPrefix(prompts[1], prompts[0]+tc.input.responses[0])
				assert.True(t, strings.HasPrefix(appended, tc.expected.observation),
					"observation %q does not start with %q", appended, tc.expected.observation)
				assert.True(t, strings.HasSuffix(appended, "\n"))
			}
		})
	}
}

func TestAgent_ToolInputIsPassedVerbatim(t *testing.T) {
	echo := tt.NewMockTool("echo", "echoed")
	model := tt.NewMockModel().AddResponses(
		"Action: echo\nAction Input: \"hello world\"",
		"Final Answer: done",
	)

	_, err := NewAgent(model, newRegistry(t, echo)).Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello world"}, echo.Inputs())
}

func TestAgent_ToolTimeoutBecomesObservation(t *testing.T) {
	slow := tt.NewMockTool("slow", "").WithFunc(func(context.Context, string) (string, error) {
		time.Sleep(500 * time.Millisecond)
		return "too late", nil
	})
	model := tt.NewMockModel().AddResponses(
		"Action: slow\nAction Input: x",
		"Final Answer: gave up",
	)
	agent := NewAgent(model, newRegistry(t, slow)).WithLimits(reagent.Limits{
		MaxIterations: 5,
		ToolTimeout:   20 * time.Millisecond,
	})

	result := agent.Execute(context.Background(), "q")
	require.NoError(t, result.Error)
	assert.Equal(t, "gave up", result.Answer)

	require.Len(t, result.Trace.Iterations, 2)
	toolErr := result.Trace.Iterations[0].Error
	assert.True(t, errors.Is(toolErr, reagent.ErrTimeout), "got %v", toolErr)
	assert.True(t, errors.Is(toolErr, reagent.ErrToolExecution))
	assert.Contains(t, model.Prompts()[1], "Observation: error: ")
}

func TestAgent_ModelTimeoutFailsRun(t *testing.T) {
	model := tt.NewMockModel().WithDelay(time.Second)
	agent := NewAgent(model, newRegistry(t)).WithLimits(reagent.Limits{
		MaxIterations: 5,
		ModelTimeout:  20 * time.Millisecond,
	})

	_, err := agent.Run(context.Background(), "q")
	assert.True(t, errors.Is(err, reagent.ErrTimeout), "got %v", err)
	assert.True(t, errors.Is(err, reagent.ErrCompletion))
}

func TestAgent_CanceledContext(t *testing.T) {
	model := tt.NewMockModel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewAgent(model, newRegistry(t)).Execute(ctx, "q")
	assert.ErrorIs(t, result.Error, context.Canceled)
	assert.Equal(t, reagent.TerminationContextCanceled, result.Trace.TerminationReason)
	assert.Equal(t, 0, model.CallCount())
}

func TestAgent_FiresHooksInOrder(t *testing.T) {
	recorder := tt.NewRecordingHook()
	model := tt.NewMockModel().AddResponses(
		"Action: calculator\nAction Input: 2+2",
		"Final Answer: 4",
	)
	agent := NewAgent(model, newRegistry(t)).WithHooks(hooks.NewRegistry().Register(recorder))

	_, err := agent.Run(context.Background(), "What is 2+2?")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"BeforeExecutionEvent",
		"BeforeToolCallEvent",
		"AfterToolCallEvent",
		"AfterIterationEvent",
		"AfterIterationEvent",
		"AfterExecutionEvent",
	}, recorder.EventTypes())

	events := recorder.Events()
	toolCall := events[2].(reagent.AfterToolCallEvent)
	assert.Equal(t, "calculator", toolCall.ToolName)
	assert.Equal(t, "2+2", toolCall.Input)
	assert.Equal(t, "4", toolCall.Output)

	iteration := events[3].(reagent.AfterIterationEvent)
	assert.Equal(t, reagent.StateActionRequested, iteration.State)
	assert.Equal(t, tt.Observation("4"), iteration.Observation)

	done := events[5].(reagent.AfterExecutionEvent)
	assert.Equal(t, "4", done.Answer)
	assert.Equal(t, 2, done.Iterations)
	assert.Equal(t, reagent.TerminationSuccess, done.TerminationReason)
}

func TestAgent_CustomTemplate(t *testing.T) {
	model := tt.NewMockModel().AddResponse("Final Answer: ok")
	tmpl := prompt.New("main", "Tools:\n${tools}\nQ: ${question}\n")

	_, err := NewAgent(model, newRegistry(t)).WithTemplate(tmpl).Run(context.Background(), "${tools}?")
	require.NoError(t, err)

	assert.Equal(t, "Tools:\n"+newRegistry(t).Prompt()+"\nQ: ${tools}?\n", model.Prompts()[0])
}
