// Package format parses model responses and formats observations for the agent loop.
//
// # Overview
//
// The model is prompted to answer in the classic ReAct text layout:
//
//	Thought: I need to compute this.
//	Action: calculator
//	Action Input: "200*0.15"
//
// or, when done:
//
//	Thought: I now know the final answer.
//	Final Answer: 30
//
// The format handles both directions:
//
//  1. [Parse] - Extracts an action or a final answer from the model's output
//  2. [Observation], [ErrorObservation] - Format tool results fed back to the model
//
// # Matching Rules
//
// Parsing is a line scanner, not a regular expression:
//
//   - Keywords are case-sensitive: "Action:", "Action Input:", "Final Answer:".
//   - A keyword may appear anywhere on a line. Backends that echo the prompt are handled because
//     the first match wins.
//   - The first "Action:" line with a non-empty name wins. Its input is the first "Action Input:"
//     found on the same line or any later line; one pair of surrounding double quotes is removed.
//     A missing input line yields an empty input.
//   - An action takes priority over a final answer in the same response.
//   - "Final Answer:" captures the rest of its line, trimmed.
//   - A response with neither yields [reagent.ErrNoTerminalMarkerFound].
package format
