// Package toolchain provides the tool registry used by the agent loop.
//
// # Overview
//
// The registry is built once at startup from a fixed list of tools and never changes
// afterwards, so one registry can be shared by every session without locking:
//
//	registry, err := toolchain.NewRegistry(
//	    tools.NewSearch(serpKey),
//	    tools.NewCalculator(),
//	)
//
// # Dispatch
//
// Execute looks tools up by exact, case-sensitive match on the trimmed name the model wrote
// after "Action:". Unknown names fail with [reagent.ErrUnknownTool]; tool failures are wrapped
// in [reagent.ToolExecutionError] so callers can still match the tool's own sentinel, e.g.
// [reagent.ErrInvalidExpression]:
//
//	_, err := registry.Execute(ctx, "calculator", "not math")
//	errors.Is(err, reagent.ErrToolExecution)     // true
//	errors.Is(err, reagent.ErrInvalidExpression) // true
//
// # Prompt Rendering
//
// Prompt renders one "name: description" line per tool, in registration order, for the
// ${tools} placeholder of the main template.
package toolchain
