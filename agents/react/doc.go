// Package react implements the ReAct (Reasoning and Acting) agent loop.
//
// # Overview
//
// A run keeps one growing text prompt. Each iteration sends the whole prompt to the model,
// appends the raw response, and parses it:
//
//	Reasoning --(Action: ...)-------> ActionRequested --(Observation: ...)--> Reasoning
//	Reasoning --(Final Answer: ...)--> Done
//	Reasoning --(neither)------------> Stuck
//
// The prompt only ever grows. Every tool result is appended as "Observation: <result>\n"
// exactly once, before the next completion request.
//
// # Agent Loop Behavior
//
// ## 1. Actions Take Priority Over Termination
//
// When a response contains both an "Action:" line and a "Final Answer:" line, the action is
// executed and the answer discarded. The model can answer on the next iteration after it has
// seen the observation.
//
// ## 2. Tool Failures Are Observations
//
// Unknown tools, tool errors and tool timeouts never end the run. They are appended as
// "Observation: error: <message>\n" so the model can correct itself.
//
// ## 3. Stuck Responses
//
// By default a response without either marker is answered with an error observation and the
// loop continues. WithStrictTermination(true) fails the run with
// [reagent.ErrNoTerminalMarkerFound] instead.
//
// ## 4. Limits
//
// The run fails with [reagent.ErrMaxIterationsExceeded] after Limits.MaxIterations
// completions. Each completion is bounded by Limits.ModelTimeout and each tool call by
// Limits.ToolTimeout; both surface as [reagent.ErrTimeout]. A model timeout ends the run, a
// tool timeout becomes an error observation.
//
// # Configuration
//
// The agent can be configured with:
//   - WithTemplate: main prompt template (default: prompt.DefaultMain)
//   - WithParser: response parser (default: format.NewText)
//   - WithLimits: iteration and timeout bounds (default: reagent.DefaultLimits)
//   - WithStrictTermination: fail instead of nudging on stuck responses
//   - WithHooks: hook registry for iteration, tool and run events
//   - WithTimeProvider: clock used for traces
package react
