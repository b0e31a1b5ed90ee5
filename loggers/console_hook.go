package loggers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rickchristie/reagent"
	"gopkg.in/yaml.v3"
)

// ConsoleHook prints the raw prompt and raw response of every model call to a terminal.
// In verbose mode it also dumps tool calls and run results as YAML.
//
// Colors follow the writer: a non-terminal writer receives plain text.
type ConsoleHook struct {
	mu       sync.Mutex
	out      io.Writer
	verbose  bool
	prompt   lipgloss.Style
	response lipgloss.Style
	header   lipgloss.Style
	failure  lipgloss.Style
}

// NewConsoleHook creates a ConsoleHook writing to w.
func NewConsoleHook(w io.Writer) *ConsoleHook {
	r := lipgloss.NewRenderer(w)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &ConsoleHook{
		out:      w,
		prompt:   base.Foreground(lipgloss.Color("1")),
		response: base.Foreground(lipgloss.Color("2")),
		header:   base.Foreground(lipgloss.Color("3")).Bold(true),
		failure:  base.Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// WithVerbose enables YAML dumps of tool calls and run results.
func (h *ConsoleHook) WithVerbose(verbose bool) *ConsoleHook {
	h.verbose = verbose
	return h
}

// paint renders each line separately so multi-line text is not padded to a block.
func (h *ConsoleHook) paint(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (h *ConsoleHook) write(style lipgloss.Style, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintln(h.out, h.paint(style, text))
}

func (h *ConsoleHook) dump(name string, v any) {
	data, err := yaml.Marshal(v)
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintln(h.out, h.paint(h.header, ">>> "+name))
	if err != nil {
		fmt.Fprintf(h.out, "(failed to marshal: %v)\n", err)
		return
	}
	fmt.Fprint(h.out, string(data))
}

// OnBeforeModelCall prints the raw prompt.
func (h *ConsoleHook) OnBeforeModelCall(ctx context.Context, event reagent.BeforeModelCallEvent) {
	h.write(h.prompt, event.Prompt)
}

// OnAfterModelCall prints the raw response or the call error.
func (h *ConsoleHook) OnAfterModelCall(ctx context.Context, event reagent.AfterModelCallEvent) {
	if event.Error != nil {
		h.write(h.failure, fmt.Sprintf("model error: %v", event.Error))
		return
	}
	h.write(h.response, event.Response)
}

// OnBeforeToolCall dumps the tool call in verbose mode.
func (h *ConsoleHook) OnBeforeToolCall(ctx context.Context, event reagent.BeforeToolCallEvent) {
	if !h.verbose {
		return
	}
	h.dump("BeforeToolCall: "+event.ToolName, map[string]any{
		"tool":  event.ToolName,
		"input": event.Input,
	})
}

// OnAfterToolCall dumps the tool result in verbose mode.
func (h *ConsoleHook) OnAfterToolCall(ctx context.Context, event reagent.AfterToolCallEvent) {
	if !h.verbose {
		return
	}
	data := map[string]any{
		"tool":     event.ToolName,
		"duration": event.Duration.String(),
	}
	if event.Error != nil {
		data["error"] = event.Error.Error()
	} else {
		data["output"] = event.Output
	}
	h.dump("AfterToolCall: "+event.ToolName, data)
}

// OnAfterExecution dumps the run result in verbose mode.
func (h *ConsoleHook) OnAfterExecution(ctx context.Context, event reagent.AfterExecutionEvent) {
	if !h.verbose {
		return
	}
	data := map[string]any{
		"termination_reason": string(event.TerminationReason),
		"iterations":         event.Iterations,
		"duration":           event.Duration.String(),
	}
	if event.Error != nil {
		data["error"] = event.Error.Error()
	}
	h.dump("AfterExecution", data)
}

var (
	_ reagent.AfterExecutionHook  = (*ConsoleHook)(nil)
	_ reagent.BeforeModelCallHook = (*ConsoleHook)(nil)
	_ reagent.AfterModelCallHook  = (*ConsoleHook)(nil)
	_ reagent.BeforeToolCallHook  = (*ConsoleHook)(nil)
	_ reagent.AfterToolCallHook   = (*ConsoleHook)(nil)
)
