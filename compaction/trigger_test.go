package compaction

import (
	"testing"
	"unicode/utf8"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
)

func TestExchangeCountTrigger(t *testing.T) {
	trigger := NewExchangeCountTrigger(2)

	assert.False(t, trigger.ShouldCompact(nil))
	assert.False(t, trigger.ShouldCompact([]reagent.Exchange{ex(1), ex(2)}))
	assert.False(t, trigger.ShouldCompact([]reagent.Exchange{summary("s"), ex(1), ex(2)}))
	assert.True(t, trigger.ShouldCompact([]reagent.Exchange{ex(1), ex(2), ex(3)}))

	assert.Panics(t, func() { NewExchangeCountTrigger(0) })
}

func TestTokenBudgetTrigger(t *testing.T) {
	// One token per rune keeps the arithmetic obvious.
	counter := TokenCounterFunc(utf8.RuneCountInString)

	type input struct {
		budget    int
		exchanges []reagent.Exchange
	}

	tests := []struct {
		name     string
		input    input
		expected bool
	}{
		{
			name:     "empty transcript",
			input:    input{budget: 1},
			expected: false,
		},
		{
			// "Q:q1\nA:a1\n" is 10 runes.
			name:     "at budget",
			input:    input{budget: 10, exchanges: []reagent.Exchange{ex(1)}},
			expected: false,
		},
		{
			name:     "over budget",
			input:    input{budget: 9, exchanges: []reagent.Exchange{ex(1)}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trigger := NewTokenBudgetTrigger(tt.input.budget, counter)
			assert.Equal(t, tt.expected, trigger.ShouldCompact(tt.input.exchanges))
		})
	}

	assert.Panics(t, func() { NewTokenBudgetTrigger(0, counter) })
	assert.Panics(t, func() { NewTokenBudgetTrigger(10, nil) })
}

func TestAnyTrigger(t *testing.T) {
	count := NewExchangeCountTrigger(2)
	budget := NewTokenBudgetTrigger(15, TokenCounterFunc(utf8.RuneCountInString))
	trigger := AnyTrigger{count, budget}

	assert.False(t, trigger.ShouldCompact([]reagent.Exchange{ex(1)}))
	assert.True(t, trigger.ShouldCompact([]reagent.Exchange{ex(1), ex(2)}), "token budget fires")
	assert.False(t, AnyTrigger{}.ShouldCompact([]reagent.Exchange{ex(1), ex(2), ex(3)}))
}
