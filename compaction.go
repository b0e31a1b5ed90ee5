package reagent

import (
	"context"
	"strings"
)

// CompactionTrigger decides WHEN a session transcript should be compacted.
//
// The session checks the trigger after every appended exchange. If ShouldCompact returns true,
// the configured CompactionStrategy.Compact is called.
//
// # Available Implementations
//
//   - compaction.NewExchangeCountTrigger: fires past a number of exchanges
//   - compaction.NewTokenBudgetTrigger: fires past a token budget
type CompactionTrigger interface {
	ShouldCompact(exchanges []Exchange) bool
}

// CompactionStrategy decides HOW a transcript is compacted.
//
// # Error Handling
//
// If Compact returns an error the session keeps the uncompacted transcript and reports the
// error to the caller. The transcript is never silently truncated.
//
// # Available Implementations
//
//   - compaction.NewSlidingWindow: keeps last N exchanges
//   - compaction.NewSummarization: folds older exchanges into one summary exchange
type CompactionStrategy interface {
	Compact(ctx context.Context, exchanges []Exchange) ([]Exchange, error)
}

// RenderTranscript renders exchanges as the history text substituted into the merge template:
// one "Q:<question>\nA:<answer>\n" block per exchange, and "Summary:<text>\n" for a compaction
// summary.
func RenderTranscript(exchanges []Exchange) string {
	var sb strings.Builder
	for _, e := range exchanges {
		if e.Summary {
			sb.WriteString("Summary:")
			sb.WriteString(e.Answer)
			sb.WriteString("\n")
			continue
		}
		sb.WriteString("Q:")
		sb.WriteString(e.Question)
		sb.WriteString("\nA:")
		sb.WriteString(e.Answer)
		sb.WriteString("\n")
	}
	return sb.String()
}
