package format

import (
	"errors"
	"testing"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_Parse(t *testing.T) {
	type input struct {
		output string
	}

	type expected struct {
		step *reagent.Step
		err  error
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "action with quoted input",
			input: input{output: "Thought: I should compute this.\n" +
				"Action: calculator\n" +
				"Action Input: \"200*0.15\"\n"},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepAction,
				Action: reagent.Action{Name: "calculator", Input: "200*0.15"},
			}},
		},
		{
			name: "action with bare input",
			input: input{output: "Action: search\nAction Input: weather in Paris"},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepAction,
				Action: reagent.Action{Name: "search", Input: "weather in Paris"},
			}},
		},
		{
			name:  "action name is trimmed",
			input: input{output: "Action:    calculator   \nAction Input: 2+2"},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepAction,
				Action: reagent.Action{Name: "calculator", Input: "2+2"},
			}},
		},
		{
			name:  "action without input line",
			input: input{output: "Action: search"},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepAction,
				Action: reagent.Action{Name: "search", Input: ""},
			}},
		},
		{
			name:  "action and input on one line",
			input: input{output: "Action: search Action Input: \"go 1.24 release\""},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepAction,
				Action: reagent.Action{Name: "search", Input: "go 1.24 release"},
			}},
		},
		{
			name: "surrounding text is ignored",
			input: input{output: "Question: what now?\n" +
				"some preamble Action: calculator\n" +
				"blah\n" +
				"  Action Input: 1+1  \n" +
				"trailing text"},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepAction,
				Action: reagent.Action{Name: "calculator", Input: "1+1"},
			}},
		},
		{
			name: "first action wins",
			input: input{output: "Action: search\nAction Input: a\n" +
				"Action: calculator\nAction Input: b"},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepAction,
				Action: reagent.Action{Name: "search", Input: "a"},
			}},
		},
		{
			name:  "empty action name is skipped",
			input: input{output: "Action:\nAction: calculator\nAction Input: 3*3"},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepAction,
				Action: reagent.Action{Name: "calculator", Input: "3*3"},
			}},
		},
		{
			name:  "inner quotes are preserved",
			input: input{output: "Action: search\nAction Input: \"the \"best\" pizza\""},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepAction,
				Action: reagent.Action{Name: "search", Input: "the \"best\" pizza"},
			}},
		},
		{
			name:  "crlf line endings",
			input: input{output: "Action: calculator\r\nAction Input: 5-2\r\n"},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepAction,
				Action: reagent.Action{Name: "calculator", Input: "5-2"},
			}},
		},
		{
			name:  "action takes priority over final answer",
			input: input{output: "Final Answer: 42\nAction: calculator\nAction Input: 6*7"},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepAction,
				Action: reagent.Action{Name: "calculator", Input: "6*7"},
			}},
		},
		{
			name:  "final answer",
			input: input{output: "Thought: I now know the final answer\nFinal Answer: 30"},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepFinalAnswer,
				Answer: "30",
			}},
		},
		{
			name:  "final answer is trimmed only",
			input: input{output: "Final Answer:   Paris, France.  "},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepFinalAnswer,
				Answer: "Paris, France.",
			}},
		},
		{
			name:  "final answer captures its line only",
			input: input{output: "Final Answer: first line\nsecond line"},
			expected: expected{step: &reagent.Step{
				Kind:   reagent.StepFinalAnswer,
				Answer: "first line",
			}},
		},
		{
			name:     "keywords are case-sensitive",
			input:    input{output: "action: calculator\nfinal answer: 4"},
			expected: expected{err: reagent.ErrNoTerminalMarkerFound},
		},
		{
			name:     "no marker",
			input:    input{output: "I am not sure what to do."},
			expected: expected{err: reagent.ErrNoTerminalMarkerFound},
		},
		{
			name:     "empty output",
			input:    input{output: ""},
			expected: expected{err: reagent.ErrNoTerminalMarkerFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, err := NewText().Parse(tt.input.output)

			if tt.expected.err != nil {
				assert.True(t, errors.Is(err, tt.expected.err), "got %v", err)
				assert.Nil(t, step)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.step, step)
		})
	}
}

func TestText_WithKeywords(t *testing.T) {
	parser := NewText().WithKeywords("Tool:", "Tool Input:", "")

	step, err := parser.Parse("Tool: calculator\nTool Input: 1+2")
	require.NoError(t, err)
	assert.Equal(t, reagent.Action{Name: "calculator", Input: "1+2"}, step.Action)

	step, err = parser.Parse("Final Answer: done")
	require.NoError(t, err)
	assert.Equal(t, "done", step.Answer)
}

func TestObservation(t *testing.T) {
	assert.Equal(t, "Observation: 30\n", Observation("30"))
	assert.Equal(t, "Observation: \n", Observation(""))
	assert.Equal(t,
		"Observation: error: unknown tool\n",
		ErrorObservation(reagent.ErrUnknownTool),
	)
}
