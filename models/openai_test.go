package models

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatCompletionResponse = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-3.5-turbo",
  "choices": [{
    "index": 0,
    "message": {"role": "assistant", "content": "Thought: I know this\nFinal Answer: Paris"},
    "finish_reason": "stop"
  }],
  "usage": {"prompt_tokens": 42, "completion_tokens": 9, "total_tokens": 51}
}`

func TestNewOpenAI_MissingToken(t *testing.T) {
	_, err := NewOpenAI(OpenAIConfig{Params: reagent.DefaultGenerationParams()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, reagent.ErrConfiguration))

	var cfgErr *reagent.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "OPENAI_API_KEY", cfgErr.Key)
}

func TestNewGitHubModels_MissingToken(t *testing.T) {
	_, err := NewGitHubModels(OpenAIConfig{})
	var cfgErr *reagent.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "GITHUB_TOKEN", cfgErr.Key)
}

func TestNewOpenAI_WireProtocol(t *testing.T) {
	var (
		gotAuth string
		gotPath string
		gotBody map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionResponse))
	}))
	defer srv.Close()

	model, err := NewOpenAI(OpenAIConfig{
		Token:   "sk-test",
		BaseURL: srv.URL,
		Params:  reagent.DefaultGenerationParams(),
	})
	require.NoError(t, err)

	response, err := model.Complete(context.Background(), "Question: capital of France?\nThought:")
	require.NoError(t, err)
	assert.Equal(t, "Thought: I know this\nFinal Answer: Paris", response)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.True(t, strings.HasSuffix(gotPath, "/chat/completions"), gotPath)
	assert.Equal(t, "gpt-3.5-turbo", gotBody["model"])
	assert.Equal(t, 0.7, gotBody["temperature"])
	assert.Equal(t, []any{"Observation:"}, gotBody["stop"])

	maxTokens := gotBody["max_tokens"]
	if maxTokens == nil {
		maxTokens = gotBody["max_completion_tokens"]
	}
	assert.Equal(t, float64(256), maxTokens)

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
}

func TestNewOpenAI_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	model, err := NewOpenAI(OpenAIConfig{
		Token:   "sk-bad",
		BaseURL: srv.URL,
		Params:  reagent.DefaultGenerationParams(),
	})
	require.NoError(t, err)

	_, err = model.Complete(context.Background(), "hi")
	assert.True(t, errors.Is(err, reagent.ErrCompletion), "got %v", err)
}

func TestNewGitHubModels_SendsAPIVersionHeader(t *testing.T) {
	var gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("X-GitHub-Api-Version")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionResponse))
	}))
	defer srv.Close()

	model, err := NewGitHubModels(OpenAIConfig{Token: "ghp_test", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, DefaultGitHubModel, model.Params().Model)

	_, err = model.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "2022-11-28", gotVersion)
}
