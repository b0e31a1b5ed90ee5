package config

import (
	"github.com/rickchristie/reagent/schema"
)

const durationPattern = `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`

func duration(description string) *schema.Property {
	return schema.String(description).Pattern(durationPattern)
}

// fileSchema describes the YAML configuration file.
var fileSchema = schema.MustCompile(schema.StrictObject(map[string]*schema.Property{
	"model": schema.Nested("Completion backend", schema.StrictObject(map[string]*schema.Property{
		"provider":    schema.String("Backend provider").Enum(ProviderOpenAI, ProviderGitHub),
		"name":        schema.String("Model identifier").MinLength(1),
		"base_url":    schema.String("API base URL"),
		"max_tokens":  schema.Integer("Maximum output tokens").Min(1),
		"temperature": schema.Number("Sampling temperature").Min(0).Max(2),
		"stop":        schema.Array("Stop sequences", map[string]any{"type": "string"}),
		"timeout":     duration("Per-completion timeout"),
	})),
	"agent": schema.Nested("Agent loop", schema.StrictObject(map[string]*schema.Property{
		"max_iterations":     schema.Integer("Maximum completions per question").Min(1),
		"strict_termination": schema.Boolean("Fail on responses without Action or Final Answer"),
		"tool_timeout":       duration("Per-tool-call timeout"),
	})),
	"retry": schema.Nested("Completion retries", schema.StrictObject(map[string]*schema.Property{
		"max_retries": schema.Integer("Retries after the first attempt").Min(0).Max(10),
		"base_delay":  duration("Initial backoff"),
		"max_delay":   duration("Maximum backoff"),
	})),
	"templates": schema.Nested("Prompt template files", schema.StrictObject(map[string]*schema.Property{
		"main":  schema.String("Main ReAct template path"),
		"merge": schema.String("History merge template path"),
	})),
	"history": schema.Nested("Transcript compaction", schema.StrictObject(map[string]*schema.Property{
		"max_exchanges": schema.Integer("Compact past this many exchanges, 0 disables").Min(0),
		"token_budget":  schema.Integer("Compact past this many tokens, 0 disables").Min(0),
		"strategy":      schema.String("Compaction strategy").Enum(StrategyWindow, StrategySummarize),
		"keep":          schema.Integer("Exchanges kept verbatim").Min(0),
	})),
	"search": schema.Nested("Search tool", schema.StrictObject(map[string]*schema.Property{
		"endpoint":   schema.String("SerpAPI endpoint"),
		"cache_size": schema.Integer("Cached answers, 0 disables").Min(0),
		"rate_limit": schema.Number("Requests per second, 0 disables").Min(0),
		"burst":      schema.Integer("Rate limit burst").Min(0),
	})),
	"logging": schema.Nested("Logging", schema.StrictObject(map[string]*schema.Property{
		"level":   schema.String("Log level").Enum("trace", "debug", "info", "warn", "error", "disabled"),
		"file":    schema.String("Log file path, empty disables"),
		"console": schema.Boolean("Also log to stderr"),
		"pretty":  schema.Boolean("Human readable console logs"),
		"verbose": schema.Boolean("Dump tool calls to the terminal"),
	})),
}))
