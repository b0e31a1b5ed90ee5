package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/hooks"
	"github.com/tmc/langchaingo/llms"
)

var errEmptyChoices = errors.New("backend returned no choices")

// LCGCompleter wraps an llms.Model and implements reagent.Model.
// Each call sends the prompt as a single human message with fixed generation parameters, and
// fires BeforeModelCall/AfterModelCall events with the raw prompt and response.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	model := models.NewLCGCompleter(llm, reagent.DefaultGenerationParams()).
//	    WithHooks(registry)
//
//	response, err := model.Complete(ctx, prompt)
type LCGCompleter struct {
	model  llms.Model
	params reagent.GenerationParams
	hooks  *hooks.Registry
}

// NewLCGCompleter creates a new LCGCompleter wrapping the given llms.Model.
func NewLCGCompleter(model llms.Model, params reagent.GenerationParams) *LCGCompleter {
	return &LCGCompleter{
		model:  model,
		params: params,
	}
}

// WithHooks sets the registry that receives model call events.
// Returns the completer for chaining.
func (m *LCGCompleter) WithHooks(registry *hooks.Registry) *LCGCompleter {
	m.hooks = registry
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LCGCompleter) Unwrap() llms.Model {
	return m.model
}

// Params returns the generation parameters sent with every request.
func (m *LCGCompleter) Params() reagent.GenerationParams {
	return m.params
}

// Complete implements reagent.Model.
func (m *LCGCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.hooks.FireBeforeModelCall(ctx, reagent.BeforeModelCallEvent{
		Model:  m.params.Model,
		Prompt: prompt,
	})

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	startTime := time.Now()
	lcgResponse, err := m.model.GenerateContent(ctx, messages, m.callOptions()...)
	duration := time.Since(startTime)

	var response string
	var inputTokens, outputTokens int
	if err == nil {
		if lcgResponse == nil || len(lcgResponse.Choices) == 0 || lcgResponse.Choices[0] == nil {
			err = errEmptyChoices
		} else {
			choice := lcgResponse.Choices[0]
			response = choice.Content
			if choice.GenerationInfo != nil {
				inputTokens = extractInputTokens(choice.GenerationInfo)
				outputTokens = extractOutputTokens(choice.GenerationInfo)
			}
		}
	}
	if err != nil {
		err = m.wrapError(ctx, err)
	}

	m.hooks.FireAfterModelCall(ctx, reagent.AfterModelCallEvent{
		Model:        m.params.Model,
		Prompt:       prompt,
		Response:     response,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Duration:     duration,
		Error:        err,
	})

	if err != nil {
		return "", err
	}
	return response, nil
}

func (m *LCGCompleter) callOptions() []llms.CallOption {
	opts := []llms.CallOption{
		llms.WithTemperature(m.params.Temperature),
	}
	if m.params.Model != "" {
		opts = append(opts, llms.WithModel(m.params.Model))
	}
	if m.params.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(m.params.MaxTokens))
	}
	if len(m.params.StopWords) > 0 {
		opts = append(opts, llms.WithStopWords(m.params.StopWords))
	}
	return opts
}

// wrapError converts a backend failure into a *reagent.CompletionError. Deadline failures also
// match reagent.ErrTimeout.
func (m *LCGCompleter) wrapError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", reagent.ErrTimeout, err)
	}
	return &reagent.CompletionError{Model: m.params.Model, Err: err}
}

// extractInputTokens extracts input/prompt token count from GenerationInfo.
// Handles different key names used by different providers.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama / Google (compat)
	if v := getIntFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	return getIntFromMap(info, "input_tokens")
}

// extractOutputTokens extracts output/completion token count from GenerationInfo.
func extractOutputTokens(info map[string]any) int {
	if v := getIntFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	return getIntFromMap(info, "output_tokens")
}

// getIntFromMap extracts an int value from a map, handling various numeric types.
func getIntFromMap(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}

// Compile-time check that LCGCompleter implements reagent.Model.
var _ reagent.Model = (*LCGCompleter)(nil)
