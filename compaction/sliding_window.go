package compaction

import (
	"context"

	"github.com/rickchristie/reagent"
)

// SlidingWindowStrategy keeps the last N exchanges of the transcript, discarding older ones.
// Summary exchanges produced by [SummarizationStrategy] are always preserved; they are
// "bonus slots" that do not count toward the window.
//
// Example:
//
//	// Keep last 10 exchanges (plus any summary)
//	strategy := compaction.NewSlidingWindow(10)
type SlidingWindowStrategy struct {
	windowSize int
}

// NewSlidingWindow creates a SlidingWindowStrategy that keeps the last windowSize exchanges.
// Panics if windowSize < 1.
func NewSlidingWindow(windowSize int) *SlidingWindowStrategy {
	if windowSize < 1 {
		panic("reagent: SlidingWindow windowSize must be >= 1")
	}
	return &SlidingWindowStrategy{windowSize: windowSize}
}

// Compact implements reagent.CompactionStrategy.
func (s *SlidingWindowStrategy) Compact(
	_ context.Context,
	exchanges []reagent.Exchange,
) ([]reagent.Exchange, error) {
	regular := 0
	for _, e := range exchanges {
		if !e.Summary {
			regular++
		}
	}
	if regular <= s.windowSize {
		return exchanges, nil
	}

	// Drop the oldest regular exchanges, preserving relative order.
	drop := regular - s.windowSize
	result := make([]reagent.Exchange, 0, len(exchanges)-drop)
	for _, e := range exchanges {
		if !e.Summary && drop > 0 {
			drop--
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// Compile-time check.
var _ reagent.CompactionStrategy = (*SlidingWindowStrategy)(nil)
