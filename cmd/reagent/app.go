package main

import (
	"io"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/agents/react"
	"github.com/rickchristie/reagent/compaction"
	"github.com/rickchristie/reagent/config"
	"github.com/rickchristie/reagent/hooks"
	"github.com/rickchristie/reagent/loggers"
	"github.com/rickchristie/reagent/models"
	"github.com/rickchristie/reagent/session"
	"github.com/rickchristie/reagent/toolchain"
	"github.com/rickchristie/reagent/tools"
	"github.com/rs/zerolog"
)

// app is the fully wired agent and its conversation.
type app struct {
	agent   *react.Agent
	session *session.Session
}

// newApp wires the completion backend, tools, agent and session from cfg. Model output and
// verbose dumps go to out.
func newApp(cfg *config.Config, logger zerolog.Logger, out io.Writer, sessionID string) (*app, error) {
	mainTmpl, mergeTmpl, err := cfg.LoadTemplates()
	if err != nil {
		return nil, err
	}

	registry := hooks.NewRegistry().
		Register(loggers.NewZerologHook(logger)).
		Register(loggers.NewConsoleHook(out).WithVerbose(cfg.Logging.Verbose))

	model, err := newModel(cfg, registry)
	if err != nil {
		return nil, err
	}

	searchOpts := []tools.SearchOption{tools.WithSearchCache(cfg.Search.CacheSize)}
	if cfg.Search.Endpoint != "" {
		searchOpts = append(searchOpts, tools.WithSearchEndpoint(cfg.Search.Endpoint))
	}
	if cfg.Search.RateLimit > 0 {
		searchOpts = append(searchOpts, tools.WithSearchRateLimit(cfg.Search.RateLimit, cfg.Search.Burst))
	}

	toolChain, err := toolchain.NewRegistry(
		tools.NewSearch(cfg.SerpAPIKey, searchOpts...),
		tools.NewCalculator(),
	)
	if err != nil {
		return nil, err
	}

	agent := react.NewAgent(model, toolChain).
		WithTemplate(mainTmpl).
		WithLimits(cfg.Limits()).
		WithStrictTermination(cfg.Agent.StrictTermination).
		WithHooks(registry)

	var sessOpts []session.Option
	if sessionID != "" {
		sessOpts = append(sessOpts, session.WithID(sessionID))
	}
	if trigger := newTrigger(cfg, logger); trigger != nil {
		sessOpts = append(sessOpts, session.WithCompaction(trigger, newStrategy(cfg, model)))
	}

	return &app{
		agent:   agent,
		session: session.New(model, mergeTmpl, sessOpts...),
	}, nil
}

// newModel creates the configured backend wrapped in the retry policy.
func newModel(cfg *config.Config, registry *hooks.Registry) (reagent.Model, error) {
	modelCfg := models.OpenAIConfig{
		Token:   cfg.Token(),
		BaseURL: cfg.Model.BaseURL,
		Params:  cfg.GenerationParams(),
		Hooks:   registry,
	}

	var (
		completer *models.LCGCompleter
		err       error
	)
	switch cfg.Model.Provider {
	case config.ProviderGitHub:
		completer, err = models.NewGitHubModels(modelCfg)
	default:
		completer, err = models.NewOpenAI(modelCfg)
	}
	if err != nil {
		return nil, err
	}

	return models.NewRetrying(completer, models.RetryConfig{
		MaxRetries: cfg.Retry.MaxRetries,
		BaseDelay:  cfg.Retry.BaseDelay,
		MaxDelay:   cfg.Retry.MaxDelay,
	}), nil
}

// newTrigger returns nil when compaction is off.
func newTrigger(cfg *config.Config, logger zerolog.Logger) reagent.CompactionTrigger {
	var triggers compaction.AnyTrigger
	if cfg.History.MaxExchanges > 0 {
		triggers = append(triggers, compaction.NewExchangeCountTrigger(cfg.History.MaxExchanges))
	}
	if cfg.History.TokenBudget > 0 {
		var counter compaction.TokenCounter
		tiktoken, err := compaction.NewTiktokenCounter(cfg.Model.Name)
		if err != nil {
			logger.Warn().Err(err).Msg("token counting falls back to 4 bytes per token")
			counter = compaction.TokenCounterFunc(approxTokens)
		} else {
			counter = tiktoken
		}
		triggers = append(triggers, compaction.NewTokenBudgetTrigger(cfg.History.TokenBudget, counter))
	}

	switch len(triggers) {
	case 0:
		return nil
	case 1:
		return triggers[0]
	default:
		return triggers
	}
}

func approxTokens(text string) int {
	return (len(text) + 3) / 4
}

func newStrategy(cfg *config.Config, model reagent.Model) reagent.CompactionStrategy {
	if cfg.History.Strategy == config.StrategySummarize {
		return compaction.NewSummarization(model).WithKeepRecent(cfg.History.Keep)
	}
	keep := cfg.History.Keep
	if keep < 1 {
		keep = 1
	}
	return compaction.NewSlidingWindow(keep)
}
