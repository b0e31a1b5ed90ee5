// Package session keeps the per-user conversation transcript and turns follow-up questions
// into self-contained ones before they reach the agent.
//
// Each Session owns its transcript; there is no process-wide history. A Session handles one
// question at a time and is not safe for concurrent use.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/prompt"
)

// Session is an append-only question/answer transcript plus the merge step that folds it into
// new questions.
type Session struct {
	id        string
	model     reagent.Model
	merge     *prompt.Template
	exchanges []reagent.Exchange
	trigger   reagent.CompactionTrigger
	strategy  reagent.CompactionStrategy
}

// Option configures a Session.
type Option func(*Session)

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithCompaction enables transcript compaction. After each appended exchange the trigger is
// consulted and, when it fires, the strategy rewrites the transcript.
func WithCompaction(trigger reagent.CompactionTrigger, strategy reagent.CompactionStrategy) Option {
	return func(s *Session) {
		s.trigger = trigger
		s.strategy = strategy
	}
}

// New creates an empty session. model is used for the merge step, merge must contain
// ${question} and ${history}; nil selects prompt.DefaultMerge().
//
// Without WithCompaction the transcript is unbounded and grows for the lifetime of the session.
func New(model reagent.Model, merge *prompt.Template, opts ...Option) *Session {
	if merge == nil {
		merge = prompt.DefaultMerge()
	}
	s := &Session{
		id:    uuid.NewString(),
		model: model,
		merge: merge,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Context returns ctx annotated with the session id, so hooks can correlate events.
func (s *Session) Context(ctx context.Context) context.Context {
	return reagent.WithSessionID(ctx, s.id)
}

// FoldIn returns a self-contained version of question.
//
// With an empty transcript the question is returned unchanged and the model is not called.
// Otherwise the merge template is rendered with ${question} then ${history} and the trimmed
// completion is returned; an empty completion falls back to the raw question.
func (s *Session) FoldIn(ctx context.Context, question string) (string, error) {
	if len(s.exchanges) == 0 {
		return question, nil
	}

	p := s.merge.Render(
		prompt.V(prompt.Question, question),
		prompt.V(prompt.History, s.History()),
	)
	merged, err := s.model.Complete(ctx, p)
	if err != nil {
		return "", fmt.Errorf("merge question with history: %w", err)
	}

	merged = strings.TrimSpace(merged)
	if merged == "" {
		return question, nil
	}
	return merged, nil
}

// Append records an answered question, then applies the compaction policy. If compaction fails
// the exchange is still recorded, the transcript is left uncompacted and the error is returned.
func (s *Session) Append(ctx context.Context, question, answer string) error {
	s.exchanges = append(s.exchanges, reagent.Exchange{Question: question, Answer: answer})

	if s.trigger == nil || s.strategy == nil || !s.trigger.ShouldCompact(s.exchanges) {
		return nil
	}

	compacted, err := s.strategy.Compact(ctx, s.Exchanges())
	if err != nil {
		return fmt.Errorf("compact transcript: %w", err)
	}
	s.exchanges = compacted
	return nil
}

// Ask runs one turn: fold the transcript into question, answer it with agent, and record the
// exchange under the merged question. Failed turns leave the transcript unchanged.
func (s *Session) Ask(ctx context.Context, agent reagent.Agent, question string) (string, error) {
	ctx = s.Context(ctx)

	merged, err := s.FoldIn(ctx, question)
	if err != nil {
		return "", err
	}

	answer, err := agent.Run(ctx, merged)
	if err != nil {
		return "", err
	}

	if err := s.Append(ctx, merged, answer); err != nil {
		return answer, err
	}
	return answer, nil
}

// History renders the transcript as "Q:<question>\nA:<answer>\n" blocks.
func (s *Session) History() string {
	return reagent.RenderTranscript(s.exchanges)
}

// Exchanges returns a copy of the transcript.
func (s *Session) Exchanges() []reagent.Exchange {
	out := make([]reagent.Exchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out
}

// Len returns the number of exchanges in the transcript.
func (s *Session) Len() int {
	return len(s.exchanges)
}

// Reset clears the transcript. The session id is kept.
func (s *Session) Reset() {
	s.exchanges = nil
}
