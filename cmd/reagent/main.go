// Command reagent is an interactive question-answering agent that reasons in the ReAct style
// and can search the web and do arithmetic.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rickchristie/reagent"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, reagent.ErrConfiguration) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
