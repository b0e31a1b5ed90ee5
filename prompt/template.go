// Package prompt provides the two prompt templates used by the agent: the main ReAct prompt
// (placeholders ${question} and ${tools}) and the history merge prompt (${question} and
// ${history}).
//
// Substitution is literal string replacement of the first occurrence of each placeholder, in
// the order the variables are given. It is not a template language: values are never
// re-scanned for directives, but a value inserted by an earlier variable can contain a later
// placeholder, exactly as with sequential string replacement.
package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/rickchristie/reagent"
)

// Placeholder names.
const (
	Question = "question"
	Tools    = "tools"
	History  = "history"
)

//go:embed main.txt
var defaultMain string

//go:embed merge.txt
var defaultMerge string

// Template is an immutable text with ${name} placeholders.
type Template struct {
	name string
	text string
}

// Var is one placeholder substitution.
type Var struct {
	Name  string
	Value string
}

// V is shorthand for Var{Name: name, Value: value}.
func V(name, value string) Var {
	return Var{Name: name, Value: value}
}

// New creates a Template from text.
func New(name, text string) *Template {
	return &Template{name: name, text: text}
}

// DefaultMain returns the embedded main ReAct template.
func DefaultMain() *Template {
	return New("main", defaultMain)
}

// DefaultMerge returns the embedded history merge template.
func DefaultMerge() *Template {
	return New("merge", defaultMerge)
}

// Load reads a template from path and checks that every required placeholder is present.
// Failures are configuration errors.
func Load(name, path string, required ...string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &reagent.ConfigurationError{Key: "templates." + name, Err: err}
	}
	t := New(name, string(data))
	if err := t.Require(required...); err != nil {
		return nil, err
	}
	return t, nil
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.name
}

// Text returns the raw template text.
func (t *Template) Text() string {
	return t.text
}

// Require returns a configuration error naming the first missing placeholder.
func (t *Template) Require(names ...string) error {
	for _, name := range names {
		if !strings.Contains(t.text, placeholder(name)) {
			return &reagent.ConfigurationError{
				Key: "templates." + t.name,
				Err: fmt.Errorf("missing placeholder %s", placeholder(name)),
			}
		}
	}
	return nil
}

// Render replaces the first occurrence of each variable's placeholder, in order.
func (t *Template) Render(vars ...Var) string {
	out := t.text
	for _, v := range vars {
		out = strings.Replace(out, placeholder(v.Name), v.Value, 1)
	}
	return out
}

func placeholder(name string) string {
	return "${" + name + "}"
}
