package models

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/hooks"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// GitHubModelsBaseURL is the base URL for the GitHub Models API.
	// The OpenAI-compatible chat completions endpoint is at {baseURL}/chat/completions.
	GitHubModelsBaseURL = "https://models.github.ai/inference"

	// DefaultGitHubModel is used when no model is configured for GitHub Models.
	DefaultGitHubModel = "openai/gpt-4o-mini"
)

// OpenAIConfig configures an OpenAI-compatible completion backend.
type OpenAIConfig struct {
	// Token is the bearer token. Required.
	Token string

	// BaseURL overrides the API base URL (proxies, compatible providers, tests).
	BaseURL string

	// Params are the generation parameters sent with every request.
	Params reagent.GenerationParams

	// HTTPClient overrides the HTTP client.
	HTTPClient *http.Client

	// Hooks receives model call events. May be nil.
	Hooks *hooks.Registry
}

// NewOpenAI creates a completer backed by the OpenAI chat completions API.
// A missing token is a *reagent.ConfigurationError for OPENAI_API_KEY.
//
// Additional openai.Option values are applied last, so they can override the defaults.
func NewOpenAI(cfg OpenAIConfig, opts ...openai.Option) (*LCGCompleter, error) {
	if cfg.Token == "" {
		return nil, &reagent.ConfigurationError{
			Key: "OPENAI_API_KEY",
			Err: errors.New("api key is required"),
		}
	}
	return newOpenAICompatible(cfg, "OpenAI", opts)
}

// githubHeaderTransport wraps an http.RoundTripper and injects GitHub-specific headers into
// every request.
type githubHeaderTransport struct {
	base http.RoundTripper
}

func (t *githubHeaderTransport) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	return t.base.RoundTrip(req)
}

// NewGitHubModels creates a completer backed by the GitHub Models API.
//
// The token must be a GitHub fine-grained Personal Access Token with the models:read
// permission. Model names use the publisher/model format, for example "openai/gpt-4.1".
func NewGitHubModels(cfg OpenAIConfig, opts ...openai.Option) (*LCGCompleter, error) {
	if cfg.Token == "" {
		return nil, &reagent.ConfigurationError{
			Key: "GITHUB_TOKEN",
			Err: errors.New("create a fine-grained PAT with models:read " +
				"at https://github.com/settings/personal-access-tokens/new"),
		}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = GitHubModelsBaseURL
	}
	if cfg.Params.Model == "" {
		cfg.Params.Model = DefaultGitHubModel
	}

	base := http.DefaultTransport
	if cfg.HTTPClient != nil && cfg.HTTPClient.Transport != nil {
		base = cfg.HTTPClient.Transport
	}
	cfg.HTTPClient = nil

	opts = append([]openai.Option{
		openai.WithHTTPClient(&githubHeaderTransport{base: base}),
	}, opts...)
	return newOpenAICompatible(cfg, "GitHub Models", opts)
}

func newOpenAICompatible(cfg OpenAIConfig, provider string, opts []openai.Option) (*LCGCompleter, error) {
	baseOpts := []openai.Option{
		openai.WithToken(cfg.Token),
	}
	if cfg.Params.Model != "" {
		baseOpts = append(baseOpts, openai.WithModel(cfg.Params.Model))
	}
	if cfg.BaseURL != "" {
		baseOpts = append(baseOpts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		baseOpts = append(baseOpts, openai.WithHTTPClient(cfg.HTTPClient))
	}

	llm, err := openai.New(append(baseOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", provider, err)
	}
	return NewLCGCompleter(llm, cfg.Params).WithHooks(cfg.Hooks), nil
}
