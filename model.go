package reagent

import (
	"context"
)

// DefaultStopWord is the stop sequence sent with every completion request. Stopping at the
// observation marker keeps the model from inventing the output of its own tool calls.
const DefaultStopWord = "Observation:"

// Model is reagent's completion interface. It sends a prompt to a language model and returns the
// generated text. Implementations own no conversation state; everything the model should see is
// in the prompt.
//
// Implementations must return a [*CompletionError] (matching [ErrCompletion]) on transport or
// backend failure, and a context deadline must also match [ErrTimeout].
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ModelFunc adapts a function to the [Model] interface.
type ModelFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f ModelFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// GenerationParams are the fixed generation parameters sent with each completion request.
type GenerationParams struct {
	// Model is the backend model identifier.
	Model string

	// MaxTokens bounds the output length.
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float64

	// StopWords end generation when produced. Defaults to [DefaultStopWord].
	StopWords []string
}

// DefaultGenerationParams returns the parameters the agent was designed around.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Model:       "gpt-3.5-turbo",
		MaxTokens:   256,
		Temperature: 0.7,
		StopWords:   []string{DefaultStopWord},
	}
}
