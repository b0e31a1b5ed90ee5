package react

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/format"
	"github.com/rickchristie/reagent/hooks"
	"github.com/rickchristie/reagent/prompt"
)

// Parser turns one model response into a step and renders the observation lines appended
// after it.
type Parser interface {
	Parse(output string) (*reagent.Step, error)
	Observation(result string) string
	ErrorObservation(err error) string
}

// Agent implements the ReAct agent loop.
//
// An Agent holds no per-run state. Run and Execute may be called concurrently as long as the
// model and tool chain allow it.
type Agent struct {
	model        reagent.Model
	toolChain    reagent.ToolChain
	template     *prompt.Template
	parser       Parser
	limits       reagent.Limits
	strict       bool
	hooks        *hooks.Registry
	timeProvider reagent.TimeProvider
}

// NewAgent creates a new Agent with the given model and tool chain.
// Defaults:
//   - Template: prompt.DefaultMain()
//   - Parser: format.NewText()
//   - Limits: reagent.DefaultLimits()
//   - Strict termination: off
//   - TimeProvider: reagent.NewDefaultTimeProvider()
func NewAgent(model reagent.Model, toolChain reagent.ToolChain) *Agent {
	return &Agent{
		model:        model,
		toolChain:    toolChain,
		template:     prompt.DefaultMain(),
		parser:       format.NewText(),
		limits:       reagent.DefaultLimits(),
		timeProvider: reagent.NewDefaultTimeProvider(),
	}
}

// WithTemplate sets the main prompt template. It must contain ${question} and ${tools}.
func (r *Agent) WithTemplate(t *prompt.Template) *Agent {
	r.template = t
	return r
}

// WithParser sets the response parser.
func (r *Agent) WithParser(p Parser) *Agent {
	r.parser = p
	return r
}

// WithLimits sets the iteration and timeout bounds. A MaxIterations below 1 keeps the
// default.
func (r *Agent) WithLimits(limits reagent.Limits) *Agent {
	if limits.MaxIterations < 1 {
		limits.MaxIterations = reagent.DefaultLimits().MaxIterations
	}
	r.limits = limits
	return r
}

// WithStrictTermination makes a response without an action or a final answer fail the run.
func (r *Agent) WithStrictTermination(strict bool) *Agent {
	r.strict = strict
	return r
}

// WithHooks sets the registry that receives run, iteration and tool events.
func (r *Agent) WithHooks(registry *hooks.Registry) *Agent {
	r.hooks = registry
	return r
}

// WithTimeProvider sets the time provider.
// Use this to inject a mock time provider for testing.
func (r *Agent) WithTimeProvider(tp reagent.TimeProvider) *Agent {
	r.timeProvider = tp
	return r
}

// Limits returns the configured limits.
func (r *Agent) Limits() reagent.Limits {
	return r.limits
}

// Run answers question and returns the final answer.
func (r *Agent) Run(ctx context.Context, question string) (string, error) {
	result := r.Execute(ctx, question)
	return result.Answer, result.Error
}

// Execute answers question and returns the answer together with the run trace.
func (r *Agent) Execute(ctx context.Context, question string) *reagent.Result {
	trace := &reagent.Trace{StartTime: r.timeProvider.Now()}
	r.hooks.FireBeforeExecution(ctx, reagent.BeforeExecutionEvent{Question: question})

	answer, reason, err := r.loop(ctx, question, trace)

	trace.EndTime = r.timeProvider.Now()
	trace.TotalDuration = trace.EndTime.Sub(trace.StartTime)
	trace.TerminationReason = reason
	trace.FinalIteration = len(trace.Iterations)

	r.hooks.FireAfterExecution(ctx, reagent.AfterExecutionEvent{
		Answer:            answer,
		TerminationReason: reason,
		Iterations:        trace.FinalIteration,
		Duration:          trace.TotalDuration,
		Error:             err,
	})

	return &reagent.Result{Answer: answer, Trace: trace, Error: err}
}

func (r *Agent) loop(
	ctx context.Context,
	question string,
	trace *reagent.Trace,
) (string, reagent.TerminationReason, error) {
	p := r.template.Render(
		prompt.V(prompt.Question, question),
		prompt.V(prompt.Tools, r.toolChain.Prompt()),
	)

	var lastStuck error
	for iteration := 1; iteration <= r.limits.MaxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return "", reagent.TerminationContextCanceled, err
		}

		start := r.timeProvider.Now()
		iter := reagent.IterationTrace{
			Iteration:    iteration,
			State:        reagent.StateReasoning,
			PromptLength: len(p),
		}

		response, err := r.complete(ctx, p)
		if err != nil {
			iter.Error = err
			iter.Duration = r.timeProvider.Now().Sub(start)
			trace.Iterations = append(trace.Iterations, iter)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", reagent.TerminationContextCanceled, ctxErr
			}
			return "", reagent.TerminationError, err
		}
		iter.Response = response
		p += response

		step, parseErr := r.parser.Parse(response)
		switch {
		case parseErr != nil:
			iter.State = reagent.StateStuck
			iter.Error = parseErr
			lastStuck = parseErr
			if r.strict {
				r.finishIteration(ctx, trace, iter, start)
				return "", reagent.TerminationStuck, parseErr
			}
			iter.Observation = r.parser.ErrorObservation(parseErr)

		case step.Kind == reagent.StepFinalAnswer:
			iter.State = reagent.StateDone
			r.finishIteration(ctx, trace, iter, start)
			return step.Answer, reagent.TerminationSuccess, nil

		default:
			lastStuck = nil
			action := step.Action
			iter.State = reagent.StateActionRequested
			iter.Action = &action

			output, toolErr := r.callTool(ctx, action)
			if ctxErr := ctx.Err(); ctxErr != nil {
				iter.Error = toolErr
				r.finishIteration(ctx, trace, iter, start)
				return "", reagent.TerminationContextCanceled, ctxErr
			}
			if toolErr != nil {
				iter.Error = toolErr
				iter.Observation = r.parser.ErrorObservation(toolErr)
			} else {
				iter.Observation = r.parser.Observation(output)
			}
		}

		p += iter.Observation
		r.finishIteration(ctx, trace, iter, start)
	}

	err := fmt.Errorf("%w: limit %d", reagent.ErrMaxIterationsExceeded, r.limits.MaxIterations)
	if lastStuck != nil {
		err = fmt.Errorf("%w: limit %d: %w",
			reagent.ErrMaxIterationsExceeded, r.limits.MaxIterations, lastStuck)
	}
	return "", reagent.TerminationMaxIterations, err
}

func (r *Agent) finishIteration(
	ctx context.Context,
	trace *reagent.Trace,
	iter reagent.IterationTrace,
	start time.Time,
) {
	iter.Duration = r.timeProvider.Now().Sub(start)
	trace.Iterations = append(trace.Iterations, iter)
	r.hooks.FireAfterIteration(ctx, reagent.AfterIterationEvent{
		Iteration:   iter.Iteration,
		State:       iter.State,
		Response:    iter.Response,
		Observation: iter.Observation,
		Duration:    iter.Duration,
	})
}

// complete calls the model bounded by ModelTimeout.
func (r *Agent) complete(ctx context.Context, p string) (string, error) {
	response, err := withTimeout(ctx, r.limits.ModelTimeout, func(ctx context.Context) (string, error) {
		return r.model.Complete(ctx, p)
	})
	if errors.Is(err, errCallTimedOut) {
		return "", &reagent.CompletionError{
			Err: fmt.Errorf("%w: no response within %v", reagent.ErrTimeout, r.limits.ModelTimeout),
		}
	}
	return response, err
}

// callTool executes action bounded by ToolTimeout and fires the tool call hooks.
func (r *Agent) callTool(ctx context.Context, action reagent.Action) (string, error) {
	r.hooks.FireBeforeToolCall(ctx, reagent.BeforeToolCallEvent{
		ToolName: action.Name,
		Input:    action.Input,
	})

	start := r.timeProvider.Now()
	output, err := withTimeout(ctx, r.limits.ToolTimeout, func(ctx context.Context) (string, error) {
		return r.toolChain.Execute(ctx, action.Name, action.Input)
	})
	if errors.Is(err, errCallTimedOut) {
		err = &reagent.ToolExecutionError{
			Tool: action.Name,
			Err:  fmt.Errorf("%w: no result within %v", reagent.ErrTimeout, r.limits.ToolTimeout),
		}
	}

	r.hooks.FireAfterToolCall(ctx, reagent.AfterToolCallEvent{
		ToolName: action.Name,
		Input:    action.Input,
		Output:   output,
		Duration: r.timeProvider.Now().Sub(start),
		Error:    err,
	})
	return output, err
}

var errCallTimedOut = errors.New("call timed out")

type callResult struct {
	out string
	err error
}

// withTimeout runs fn with a deadline of d and returns errCallTimedOut once the deadline passes,
// even if fn ignores its context. The parent context ending is reported as its own error.
// A zero d runs fn without a deadline.
func withTimeout(
	ctx context.Context,
	d time.Duration,
	fn func(ctx context.Context) (string, error),
) (string, error) {
	if d <= 0 {
		return fn(ctx)
	}

	callCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan callResult, 1)
	go func() {
		out, err := fn(callCtx)
		done <- callResult{out: out, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", errCallTimedOut
		}
		return res.out, res.err
	case <-callCtx.Done():
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "", errCallTimedOut
	}
}

// Compile-time check that Agent implements reagent.Agent.
var _ reagent.Agent = (*Agent)(nil)
