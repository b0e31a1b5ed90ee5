package format

import (
	"fmt"
	"strings"

	"github.com/rickchristie/reagent"
)

// Default keywords.
const (
	ActionKeyword      = "Action:"
	ActionInputKeyword = "Action Input:"
	FinalAnswerKeyword = "Final Answer:"
	ObservationKeyword = "Observation:"
)

// Text parses the ReAct text layout. The zero value is not usable; use [NewText].
type Text struct {
	action      string
	actionInput string
	finalAnswer string
	observation string
}

// NewText creates a Text parser with the default keywords.
func NewText() *Text {
	return &Text{
		action:      ActionKeyword,
		actionInput: ActionInputKeyword,
		finalAnswer: FinalAnswerKeyword,
		observation: ObservationKeyword,
	}
}

// WithKeywords overrides the three parsed keywords. Empty arguments keep the current value.
func (f *Text) WithKeywords(action, actionInput, finalAnswer string) *Text {
	if action != "" {
		f.action = action
	}
	if actionInput != "" {
		f.actionInput = actionInput
	}
	if finalAnswer != "" {
		f.finalAnswer = finalAnswer
	}
	return f
}

var defaultText = NewText()

// Parse parses output with the default keywords.
func Parse(output string) (*reagent.Step, error) {
	return defaultText.Parse(output)
}

// Parse extracts an action or a final answer from output.
func (f *Text) Parse(output string) (*reagent.Step, error) {
	lines := splitLines(output)

	if step, ok := f.parseAction(lines); ok {
		return step, nil
	}

	for _, line := range lines {
		if answer, ok := after(line, f.finalAnswer); ok {
			return &reagent.Step{
				Kind:   reagent.StepFinalAnswer,
				Answer: strings.TrimSpace(answer),
			}, nil
		}
	}

	return nil, reagent.ErrNoTerminalMarkerFound
}

func (f *Text) parseAction(lines []string) (*reagent.Step, bool) {
	for i, line := range lines {
		rest, ok := after(line, f.action)
		if !ok {
			continue
		}

		// "Action: search Action Input: foo" on one line.
		var input string
		hasInput := false
		if name, in, found := strings.Cut(rest, f.actionInput); found {
			rest, input, hasInput = name, in, true
		}

		name := strings.TrimSpace(rest)
		if name == "" {
			continue
		}

		if !hasInput {
			for _, next := range lines[i+1:] {
				if in, ok := after(next, f.actionInput); ok {
					input, hasInput = in, true
					break
				}
			}
		}

		return &reagent.Step{
			Kind: reagent.StepAction,
			Action: reagent.Action{
				Name:  name,
				Input: unquote(strings.TrimSpace(input)),
			},
		}, true
	}
	return nil, false
}

// Observation formats a tool result as the line appended to the prompt.
func (f *Text) Observation(result string) string {
	return fmt.Sprintf("%s %s\n", f.observation, result)
}

// ErrorObservation formats a tool failure so the model can see it and recover.
func (f *Text) ErrorObservation(err error) string {
	return fmt.Sprintf("%s error: %v\n", f.observation, err)
}

// Observation formats a tool result with the default keyword.
func Observation(result string) string {
	return defaultText.Observation(result)
}

// ErrorObservation formats a tool failure with the default keyword.
func ErrorObservation(err error) string {
	return defaultText.ErrorObservation(err)
}

// after returns the text following the first occurrence of keyword in line.
func after(line, keyword string) (string, bool) {
	idx := strings.Index(line, keyword)
	if idx < 0 {
		return "", false
	}
	return line[idx+len(keyword):], true
}

// unquote removes one leading and one trailing double quote.
func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
