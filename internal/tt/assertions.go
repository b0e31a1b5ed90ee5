package tt

import (
	"strings"
	"testing"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
)

// Observation builds the observation line the agent appends after a tool result.
func Observation(result string) string {
	return "Observation: " + result + "\n"
}

// ErrorObservation builds the observation line the agent appends after a failure.
func ErrorObservation(message string) string {
	return "Observation: error: " + message + "\n"
}

// AssertPromptsGrow asserts that every prompt extends the previous one.
func AssertPromptsGrow(t *testing.T, prompts []string) {
	t.Helper()
	for i := 1; i < len(prompts); i++ {
		assert.True(t, strings.HasPrefix(prompts[i], prompts[i-1]),
			"prompt %d does not extend prompt %d", i, i-1)
		assert.Greater(t, len(prompts[i]), len(prompts[i-1]),
			"prompt %d did not grow", i)
	}
}

// AssertIterationStates asserts the loop states recorded in trace, in order.
func AssertIterationStates(t *testing.T, trace *reagent.Trace, expected ...reagent.LoopState) {
	t.Helper()
	if !assert.NotNil(t, trace) {
		return
	}
	got := make([]reagent.LoopState, len(trace.Iterations))
	for i, it := range trace.Iterations {
		got[i] = it.State
	}
	assert.Equal(t, expected, got)
}
