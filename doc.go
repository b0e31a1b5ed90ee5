// Package reagent is a small ReAct-style question answering agent.
//
// A run alternates between asking a language model to continue a prompt and executing the
// tool the model asked for, appending every tool result to the prompt as an "Observation:"
// line, until the model writes "Final Answer:".
//
// # Packages
//
//   - reagent: core interfaces ([Model], [Tool], [Agent]), errors, hook events, limits
//   - agents/react: the agent loop state machine
//   - format: parser for "Action:", "Action Input:" and "Final Answer:" lines
//   - toolchain: immutable tool registry
//   - tools: calculator and web search tools
//   - models: completion client over LangChainGo, retry wrapper
//   - session: per-user transcript and question merging
//   - compaction: transcript compaction triggers and strategies
//   - prompt: literal ${placeholder} templates
//   - hooks: hook registry
//   - loggers: console and zerolog hooks
//   - config: YAML, .env and environment configuration
//   - schema: JSON Schema builder used to validate the config file
//
// # Quick Start
//
//	llm, _ := models.NewOpenAI(models.OpenAIConfig{Token: key, Params: reagent.DefaultGenerationParams()})
//	registry, _ := toolchain.NewRegistry(tools.NewCalculator())
//	agent := react.NewAgent(llm, registry)
//	answer, err := agent.Run(ctx, "What is 15% of 200?")
package reagent
