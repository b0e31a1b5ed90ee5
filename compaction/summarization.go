package compaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/rickchristie/reagent"
)

// SummarizationStrategy compacts the transcript by summarizing older exchanges into a single
// summary exchange. Recent exchanges are preserved untouched.
//
// This implements both "progressive summarization" and "summary buffer hybrid" patterns:
//   - KeepRecent = 0: pure progressive (summarize everything)
//   - KeepRecent > 0: hybrid (keep last N, summarize rest)
//
// An existing summary exchange is fed back to the model and extended, so the transcript holds
// at most one summary, always first:
//
//	Before: [summary, q1, q2, q3, q4]   keepRecent=2
//	After:  [summary(summary+q1+q2), q3, q4]
//
// # Example
//
//	strategy := compaction.NewSummarization(model).
//	    WithKeepRecent(5)
type SummarizationStrategy struct {
	model      reagent.Model
	keepRecent int
	prompt     string
}

// NewSummarization creates a SummarizationStrategy with the given model.
func NewSummarization(model reagent.Model) *SummarizationStrategy {
	return &SummarizationStrategy{
		model:      model,
		keepRecent: 0,
		prompt:     DefaultSummarizationPrompt,
	}
}

// WithKeepRecent sets the number of recent exchanges to preserve without summarization.
// Default is 0 (pure progressive summarization).
func (s *SummarizationStrategy) WithKeepRecent(n int) *SummarizationStrategy {
	if n < 0 {
		n = 0
	}
	s.keepRecent = n
	return s
}

// WithPrompt sets a custom summarization prompt.
// The prompt receives the existing summary (if any) and the exchanges to summarize via
// fmt.Sprintf with two %s placeholders.
func (s *SummarizationStrategy) WithPrompt(prompt string) *SummarizationStrategy {
	s.prompt = prompt
	return s
}

// DefaultSummarizationPrompt is the default prompt used by [SummarizationStrategy].
//
// The prompt takes two fmt.Sprintf placeholders:
//
//	%s: existing summary (or "None" on first run)
//	%s: exchanges to incorporate, rendered as Q:/A: lines
//
// The summary replaces the exchanges in the conversation history used to rephrase follow-up
// questions, so it must keep the names, numbers and facts a follow-up could refer to.
const DefaultSummarizationPrompt = `You are compressing the history of a ` +
	`question answering conversation. The summary replaces the exchanges ` +
	`below and is used to understand follow-up questions, so keep every ` +
	`name, number, date and fact that a follow-up question could refer to.

## Existing Summary

%s

## Exchanges To Incorporate

%s
## Rules
- Extend the existing summary instead of repeating it
- Keep the order in which topics were discussed
- Write plain sentences, no preamble or headings

Summary:`

// Compact implements reagent.CompactionStrategy.
func (s *SummarizationStrategy) Compact(
	ctx context.Context,
	exchanges []reagent.Exchange,
) ([]reagent.Exchange, error) {
	var (
		existing  string
		regular   []reagent.Exchange
		summaries int
	)
	for _, e := range exchanges {
		if e.Summary {
			summaries++
			if existing != "" {
				existing += "\n"
			}
			existing += e.Answer
			continue
		}
		regular = append(regular, e)
	}

	if len(regular) <= s.keepRecent {
		return exchanges, nil
	}
	toSummarize := regular[:len(regular)-s.keepRecent]
	toKeep := regular[len(regular)-s.keepRecent:]

	if existing == "" {
		existing = "None"
	}
	p := fmt.Sprintf(s.prompt, existing, reagent.RenderTranscript(toSummarize))

	summary, err := s.model.Complete(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("summarize %d exchanges: %w", len(toSummarize), err)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, fmt.Errorf("summarize %d exchanges: model returned an empty summary", len(toSummarize))
	}

	result := make([]reagent.Exchange, 0, len(toKeep)+1)
	result = append(result, reagent.Exchange{Answer: summary, Summary: true})
	result = append(result, toKeep...)
	return result, nil
}

// Compile-time check.
var _ reagent.CompactionStrategy = (*SummarizationStrategy)(nil)
