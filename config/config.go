// Package config loads reagent's runtime configuration.
//
// Sources are applied in order, later sources winning:
//
//  1. Defaults ([Default])
//  2. Optional YAML file, validated against a JSON schema before decoding
//  3. Optional .env file (never overrides the real environment)
//  4. Environment credentials: OPENAI_API_KEY, SERPAPI_API_KEY, GITHUB_TOKEN
//  5. Command line overrides
//
// Credentials are never read from the YAML file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/loggers"
	"github.com/rickchristie/reagent/prompt"
)

// Providers.
const (
	ProviderOpenAI = "openai"
	ProviderGitHub = "github"
)

// History compaction strategies.
const (
	StrategyWindow    = "window"
	StrategySummarize = "summarize"
)

// Environment variables holding credentials.
const (
	EnvOpenAIKey   = "OPENAI_API_KEY"
	EnvSerpAPIKey  = "SERPAPI_API_KEY"
	EnvGitHubToken = "GITHUB_TOKEN"
)

// Config is the complete runtime configuration.
type Config struct {
	Model     ModelConfig     `yaml:"model"`
	Agent     AgentConfig     `yaml:"agent"`
	Retry     RetryConfig     `yaml:"retry"`
	Templates TemplatesConfig `yaml:"templates"`
	History   HistoryConfig   `yaml:"history"`
	Search    SearchConfig    `yaml:"search"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Credentials come from the environment only.
	OpenAIKey   string `yaml:"-"`
	SerpAPIKey  string `yaml:"-"`
	GitHubToken string `yaml:"-"`
}

// ModelConfig configures the completion backend.
type ModelConfig struct {
	Provider    string        `yaml:"provider"`
	Name        string        `yaml:"name"`
	BaseURL     string        `yaml:"base_url"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	Stop        []string      `yaml:"stop"`
	Timeout     time.Duration `yaml:"timeout"`
}

// AgentConfig configures the agent loop.
type AgentConfig struct {
	MaxIterations     int           `yaml:"max_iterations"`
	StrictTermination bool          `yaml:"strict_termination"`
	ToolTimeout       time.Duration `yaml:"tool_timeout"`
}

// RetryConfig configures completion retries.
type RetryConfig struct {
	MaxRetries int           `yaml:"max_retries"`
	BaseDelay  time.Duration `yaml:"base_delay"`
	MaxDelay   time.Duration `yaml:"max_delay"`
}

// TemplatesConfig holds optional template file paths. Empty paths select the embedded defaults.
type TemplatesConfig struct {
	Main  string `yaml:"main"`
	Merge string `yaml:"merge"`
}

// HistoryConfig configures transcript compaction. Compaction is off when both MaxExchanges and
// TokenBudget are 0.
type HistoryConfig struct {
	MaxExchanges int    `yaml:"max_exchanges"`
	TokenBudget  int    `yaml:"token_budget"`
	Strategy     string `yaml:"strategy"`
	Keep         int    `yaml:"keep"`
}

// SearchConfig configures the search tool.
type SearchConfig struct {
	Endpoint  string  `yaml:"endpoint"`
	CacheSize int     `yaml:"cache_size"`
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

// LoggingConfig configures the zerolog logger and the console sink.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	Console bool   `yaml:"console"`
	Pretty  bool   `yaml:"pretty"`
	Verbose bool   `yaml:"verbose"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	params := reagent.DefaultGenerationParams()
	limits := reagent.DefaultLimits()
	return &Config{
		Model: ModelConfig{
			Provider:    ProviderOpenAI,
			Name:        params.Model,
			MaxTokens:   params.MaxTokens,
			Temperature: params.Temperature,
			Stop:        params.StopWords,
			Timeout:     limits.ModelTimeout,
		},
		Agent: AgentConfig{
			MaxIterations: limits.MaxIterations,
			ToolTimeout:   limits.ToolTimeout,
		},
		Retry: RetryConfig{
			MaxRetries: 2,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   5 * time.Second,
		},
		History: HistoryConfig{
			Strategy: StrategyWindow,
			Keep:     10,
		},
		Search: SearchConfig{
			CacheSize: 128,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  loggers.DefaultFile,
		},
	}
}

// GenerationParams returns the fixed parameters sent with every completion.
func (c *Config) GenerationParams() reagent.GenerationParams {
	return reagent.GenerationParams{
		Model:       c.Model.Name,
		MaxTokens:   c.Model.MaxTokens,
		Temperature: c.Model.Temperature,
		StopWords:   c.Model.Stop,
	}
}

// Limits returns the agent loop limits.
func (c *Config) Limits() reagent.Limits {
	return reagent.Limits{
		MaxIterations: c.Agent.MaxIterations,
		ModelTimeout:  c.Model.Timeout,
		ToolTimeout:   c.Agent.ToolTimeout,
	}
}

// Token returns the credential for the configured provider.
func (c *Config) Token() string {
	if c.Model.Provider == ProviderGitHub {
		return c.GitHubToken
	}
	return c.OpenAIKey
}

// Validate checks the merged configuration. All failures are *reagent.ConfigurationError.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return missing(EnvOpenAIKey)
		}
	case ProviderGitHub:
		if c.GitHubToken == "" {
			return missing(EnvGitHubToken)
		}
	default:
		return &reagent.ConfigurationError{
			Key: "model.provider",
			Err: fmt.Errorf("unknown provider %q", c.Model.Provider),
		}
	}
	if c.SerpAPIKey == "" {
		return missing(EnvSerpAPIKey)
	}
	if c.Agent.MaxIterations < 1 {
		return &reagent.ConfigurationError{
			Key: "agent.max_iterations",
			Err: fmt.Errorf("must be >= 1, got %d", c.Agent.MaxIterations),
		}
	}
	switch c.History.Strategy {
	case StrategyWindow, StrategySummarize:
	default:
		return &reagent.ConfigurationError{
			Key: "history.strategy",
			Err: fmt.Errorf("unknown strategy %q", c.History.Strategy),
		}
	}
	return nil
}

// LoadTemplates returns the main and merge templates, reading files when paths are set.
func (c *Config) LoadTemplates() (main, merge *prompt.Template, err error) {
	main = prompt.DefaultMain()
	if c.Templates.Main != "" {
		main, err = prompt.Load("main", c.Templates.Main, prompt.Question, prompt.Tools)
		if err != nil {
			return nil, nil, err
		}
	}

	merge = prompt.DefaultMerge()
	if c.Templates.Merge != "" {
		merge, err = prompt.Load("merge", c.Templates.Merge, prompt.Question, prompt.History)
		if err != nil {
			return nil, nil, err
		}
	}
	return main, merge, nil
}

func missing(key string) error {
	return &reagent.ConfigurationError{Key: key, Err: errors.New("not set")}
}
