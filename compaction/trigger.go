package compaction

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rickchristie/reagent"
)

// ExchangeCountTrigger fires when the transcript holds more than a fixed number of regular
// (non-summary) exchanges.
type ExchangeCountTrigger struct {
	max int
}

// NewExchangeCountTrigger creates a trigger that fires past max exchanges.
// Panics if max < 1.
func NewExchangeCountTrigger(max int) *ExchangeCountTrigger {
	if max < 1 {
		panic("reagent: ExchangeCountTrigger max must be >= 1")
	}
	return &ExchangeCountTrigger{max: max}
}

// ShouldCompact implements reagent.CompactionTrigger.
func (t *ExchangeCountTrigger) ShouldCompact(exchanges []reagent.Exchange) bool {
	n := 0
	for _, e := range exchanges {
		if !e.Summary {
			n++
		}
	}
	return n > t.max
}

// TokenCounter counts the tokens of a text for a particular model's tokenizer.
type TokenCounter interface {
	CountTokens(text string) int
}

// TokenCounterFunc adapts a function to the TokenCounter interface.
type TokenCounterFunc func(text string) int

// CountTokens calls f.
func (f TokenCounterFunc) CountTokens(text string) int {
	return f(text)
}

// TiktokenCounter counts tokens with an OpenAI BPE encoding.
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter returns a counter for model, e.g. "gpt-3.5-turbo". Unknown models fall
// back to the cl100k_base encoding.
//
// The encoding tables are downloaded and cached on first use (see TIKTOKEN_CACHE_DIR), so this
// can fail without network access.
func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("load tiktoken encoding for %q: %w", model, err)
		}
	}
	return &TiktokenCounter{encoding: enc}, nil
}

// CountTokens implements TokenCounter.
func (c *TiktokenCounter) CountTokens(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}

// TokenBudgetTrigger fires when the rendered transcript exceeds a token budget. The transcript
// is rendered exactly as it is substituted into the merge prompt.
//
// Example:
//
//	counter, err := compaction.NewTiktokenCounter("gpt-3.5-turbo")
//	trigger := compaction.NewTokenBudgetTrigger(1500, counter)
type TokenBudgetTrigger struct {
	budget  int
	counter TokenCounter
}

// NewTokenBudgetTrigger creates a trigger that fires above budget tokens.
// Panics if budget < 1 or counter is nil.
func NewTokenBudgetTrigger(budget int, counter TokenCounter) *TokenBudgetTrigger {
	if budget < 1 {
		panic("reagent: TokenBudgetTrigger budget must be >= 1")
	}
	if counter == nil {
		panic("reagent: TokenBudgetTrigger counter must not be nil")
	}
	return &TokenBudgetTrigger{budget: budget, counter: counter}
}

// ShouldCompact implements reagent.CompactionTrigger.
func (t *TokenBudgetTrigger) ShouldCompact(exchanges []reagent.Exchange) bool {
	if len(exchanges) == 0 {
		return false
	}
	return t.counter.CountTokens(reagent.RenderTranscript(exchanges)) > t.budget
}

// AnyTrigger fires when at least one of its triggers fires.
type AnyTrigger []reagent.CompactionTrigger

// ShouldCompact implements reagent.CompactionTrigger.
func (t AnyTrigger) ShouldCompact(exchanges []reagent.Exchange) bool {
	for _, trigger := range t {
		if trigger.ShouldCompact(exchanges) {
			return true
		}
	}
	return false
}

// Compile-time checks.
var (
	_ reagent.CompactionTrigger = AnyTrigger(nil)
	_ reagent.CompactionTrigger = (*ExchangeCountTrigger)(nil)
	_ reagent.CompactionTrigger = (*TokenBudgetTrigger)(nil)
	_ TokenCounter              = (*TiktokenCounter)(nil)
)
