// Package tools provides the built-in tools exposed to the agent: a web search backed by
// SerpAPI and an arithmetic calculator.
//
// Both tools take a single free-text input, as written by the model after "Action Input:",
// and return plain text that is fed back to the model as an observation.
package tools
