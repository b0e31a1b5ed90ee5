// Package compaction provides standard CompactionTrigger and CompactionStrategy
// implementations for bounding a session transcript.
//
// A transcript grows by one exchange per answered question and is folded into every merge
// prompt, so long sessions eventually overflow the model's context window. Compaction is off
// unless a session is configured with a trigger and a strategy:
//
//	sess := session.New(model, prompt.DefaultMerge(),
//	    session.WithCompaction(
//	        compaction.NewExchangeCountTrigger(20),
//	        compaction.NewSlidingWindow(10),
//	    ),
//	)
//
// # Triggers
//
//   - [ExchangeCountTrigger]: fires when the transcript holds more than N exchanges
//   - [TokenBudgetTrigger]: fires when the rendered transcript exceeds a token budget
//
// # Strategies
//
//   - [SlidingWindowStrategy]: keeps last N exchanges
//   - [SummarizationStrategy]: progressive summarization with configurable keep-recent window
package compaction
