package main

import (
	"fmt"

	"github.com/chzyer/readline"
	"github.com/rickchristie/reagent/config"
	"github.com/rickchristie/reagent/internal/cli"
	"github.com/rickchristie/reagent/loggers"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	config.Options
	Message   string
	SessionID string
}

func newRootCommand() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "reagent",
		Short: "Answer questions with a ReAct agent that can search and calculate",
		Long: `Answer questions with a ReAct agent that can search the web and evaluate math.

Follow-up questions are rewritten against the conversation so far before the
agent sees them.

Credentials are read from the environment or a .env file:
  OPENAI_API_KEY   completion backend (provider "openai")
  GITHUB_TOKEN     completion backend (provider "github")
  SERPAPI_API_KEY  search tool

Examples:
  reagent                               # Interactive REPL
  reagent -m "What is 15% of 200?"      # One-shot question
  reagent --config reagent.yaml -v      # Custom config, dump tool calls`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "YAML config file")
	flags.StringVar(&opts.EnvFile, "env-file", "", "dotenv file with credentials (default: ./.env if present)")
	flags.StringVar(&opts.Model, "model", "", "model name override")
	flags.IntVar(&opts.MaxIterations, "max-iterations", 0, "maximum completions per question")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error, disabled")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "dump tool calls and run results")
	flags.StringVarP(&opts.Message, "message", "m", "", "answer one question and exit")
	flags.StringVarP(&opts.SessionID, "session", "s", "", "session id for log correlation (default: random)")

	return cmd
}

func run(cmd *cobra.Command, opts rootOptions) error {
	cfg, err := config.Load(opts.Options)
	if err != nil {
		return err
	}

	logger, err := loggers.New(loggers.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		Pretty:  cfg.Logging.Pretty,
		Secrets: []string{cfg.OpenAIKey, cfg.GitHubToken, cfg.SerpAPIKey},
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	app, err := newApp(cfg, logger.Zerolog(), cmd.OutOrStdout(), opts.SessionID)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if opts.Message != "" {
		answer, err := app.session.Ask(ctx, app.agent, opts.Message)
		if answer != "" {
			fmt.Fprintln(cmd.OutOrStdout(), answer)
		}
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cli.Prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	return cli.NewREPL(rl, rl.Stdout(), cmd.ErrOrStderr(), app.session, app.agent).
		WithLogger(logger.Zerolog()).
		Run(ctx)
}
