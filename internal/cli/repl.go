// Package cli implements reagent's interactive read-eval-print loop.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/session"
	"github.com/rs/zerolog"
)

// Prompt is shown before each question.
const Prompt = "How can I help? "

// LineReader reads one line of input. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

// REPL reads questions, answers them through a session and prints the answers.
type REPL struct {
	in      LineReader
	out     io.Writer
	errOut  io.Writer
	session *session.Session
	agent   reagent.Agent
	logger  zerolog.Logger
}

// NewREPL creates a REPL. Answers go to out, per-turn errors to errOut.
func NewREPL(
	in LineReader,
	out, errOut io.Writer,
	sess *session.Session,
	agent reagent.Agent,
) *REPL {
	return &REPL{
		in:      in,
		out:     out,
		errOut:  errOut,
		session: sess,
		agent:   agent,
		logger:  zerolog.Nop(),
	}
}

// WithLogger sets the logger for turn failures.
func (r *REPL) WithLogger(logger zerolog.Logger) *REPL {
	r.logger = logger
	return r
}

// Run loops until EOF, an interrupt at the prompt, "exit"/"quit", or ctx ending.
// A failed turn is reported and the loop continues.
func (r *REPL) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := r.in.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		question := strings.TrimSpace(line)
		switch question {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		r.turn(ctx, question)
	}
}

func (r *REPL) turn(ctx context.Context, question string) {
	answer, err := r.session.Ask(ctx, r.agent, question)
	if answer != "" {
		fmt.Fprintln(r.out, answer)
	}
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		fmt.Fprintln(r.errOut, "Cancelled.")
		return
	}

	r.logger.Error().Err(err).Str("session_id", r.session.ID()).Msg("turn failed")
	fmt.Fprintf(r.errOut, "Error: %v\n", err)
}
