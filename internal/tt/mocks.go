// Package tt provides test doubles and helpers shared by reagent's package tests.
package tt

import (
	"context"
	"sync"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/tmc/langchaingo/llms"
)

// -----------------------------------------------------------------------------
// MockModel - implements reagent.Model
// -----------------------------------------------------------------------------

// DefaultMockResponse is returned once the queued responses are exhausted.
const DefaultMockResponse = "Thought: I now know the final answer\nFinal Answer: done"

// MockModel is a configurable mock that implements reagent.Model.
// Responses and errors are consumed in call order.
type MockModel struct {
	mu        sync.Mutex
	responses []string
	errors    []error
	delay     time.Duration
	callCount int

	// CapturedPrompts stores the prompt passed to each Complete call.
	CapturedPrompts []string
}

// NewMockModel creates a new MockModel.
func NewMockModel() *MockModel {
	return &MockModel{}
}

// AddResponse queues a successful completion.
func (m *MockModel) AddResponse(content string) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, content)
	m.errors = append(m.errors, nil)
	return m
}

// AddResponses queues several successful completions.
func (m *MockModel) AddResponses(contents ...string) *MockModel {
	for _, c := range contents {
		m.AddResponse(c)
	}
	return m
}

// AddError queues an error for the next call.
func (m *MockModel) AddError(err error) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, "")
	m.errors = append(m.errors, err)
	return m
}

// WithDelay makes every call block for d or until the context ends.
func (m *MockModel) WithDelay(d time.Duration) *MockModel {
	m.delay = d
	return m
}

// CallCount returns the number of times Complete has been called.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Prompts returns a copy of the captured prompts.
func (m *MockModel) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.CapturedPrompts))
	copy(out, m.CapturedPrompts)
	return out
}

// Complete implements reagent.Model.
func (m *MockModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	idx := m.callCount
	m.callCount++
	m.CapturedPrompts = append(m.CapturedPrompts, prompt)
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", &reagent.CompletionError{Model: "mock", Err: ctx.Err()}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if idx < len(m.errors) && m.errors[idx] != nil {
		return "", m.errors[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return DefaultMockResponse, nil
}

// Compile-time check that MockModel implements reagent.Model.
var _ reagent.Model = (*MockModel)(nil)

// -----------------------------------------------------------------------------
// MockLLM - implements llms.Model
// -----------------------------------------------------------------------------

// MockLLM is a configurable langchaingo model. Each queued response is returned as a single
// choice; queued errors take precedence at their index.
type MockLLM struct {
	mu        sync.Mutex
	responses []*llms.ContentResponse
	errors    []error
	delay     time.Duration
	callCount int

	// CapturedMessages stores the messages passed to each GenerateContent call.
	CapturedMessages [][]llms.MessageContent

	// CapturedOptions stores the resolved call options of each GenerateContent call.
	CapturedOptions []llms.CallOptions
}

// NewMockLLM creates a new MockLLM.
func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

// AddResponse queues a single-choice response with the given content and token counts.
func (m *MockLLM) AddResponse(content string, inputTokens, outputTokens int) *MockLLM {
	return m.AddRawResponse(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			Content:    content,
			StopReason: "stop",
			GenerationInfo: map[string]any{
				"PromptTokens":     inputTokens,
				"CompletionTokens": outputTokens,
				"TotalTokens":      inputTokens + outputTokens,
			},
		}},
	})
}

// AddRawResponse queues a raw ContentResponse.
// Use this when you need full control over the response structure (e.g., empty Choices).
func (m *MockLLM) AddRawResponse(resp *llms.ContentResponse) *MockLLM {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
	m.errors = append(m.errors, nil)
	return m
}

// AddError queues an error for the next call.
func (m *MockLLM) AddError(err error) *MockLLM {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, nil)
	m.errors = append(m.errors, err)
	return m
}

// WithDelay makes every call block for d or until the context ends.
func (m *MockLLM) WithDelay(d time.Duration) *MockLLM {
	m.delay = d
	return m
}

// CallCount returns the number of times GenerateContent has been called.
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// GenerateContent implements llms.Model.
func (m *MockLLM) GenerateContent(
	ctx context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, opt := range options {
		opt(&opts)
	}

	m.mu.Lock()
	idx := m.callCount
	m.callCount++
	m.CapturedMessages = append(m.CapturedMessages, messages)
	m.CapturedOptions = append(m.CapturedOptions, opts)
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if idx < len(m.errors) && m.errors[idx] != nil {
		return nil, m.errors[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: DefaultMockResponse}},
	}, nil
}

// Call implements llms.Model.
func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// Compile-time check that MockLLM implements llms.Model.
var _ llms.Model = (*MockLLM)(nil)

// -----------------------------------------------------------------------------
// MockTool - implements reagent.Tool
// -----------------------------------------------------------------------------

// MockTool is a configurable tool that records its inputs.
type MockTool struct {
	name        string
	description string
	fn          func(ctx context.Context, input string) (string, error)

	mu     sync.Mutex
	inputs []string
}

// NewMockTool creates a tool that returns output for every call.
func NewMockTool(name, output string) *MockTool {
	return &MockTool{
		name:        name,
		description: "mock tool " + name,
		fn: func(context.Context, string) (string, error) {
			return output, nil
		},
	}
}

// WithDescription sets the tool description.
func (t *MockTool) WithDescription(description string) *MockTool {
	t.description = description
	return t
}

// WithFunc replaces the tool behavior.
func (t *MockTool) WithFunc(fn func(ctx context.Context, input string) (string, error)) *MockTool {
	t.fn = fn
	return t
}

// WithError makes every call fail with err.
func (t *MockTool) WithError(err error) *MockTool {
	t.fn = func(context.Context, string) (string, error) {
		return "", err
	}
	return t
}

// Inputs returns a copy of the inputs the tool was called with.
func (t *MockTool) Inputs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.inputs))
	copy(out, t.inputs)
	return out
}

// Name implements reagent.Tool.
func (t *MockTool) Name() string { return t.name }

// Description implements reagent.Tool.
func (t *MockTool) Description() string { return t.description }

// Call implements reagent.Tool.
func (t *MockTool) Call(ctx context.Context, input string) (string, error) {
	t.mu.Lock()
	t.inputs = append(t.inputs, input)
	t.mu.Unlock()
	return t.fn(ctx, input)
}

// Compile-time check that MockTool implements reagent.Tool.
var _ reagent.Tool = (*MockTool)(nil)
