package loggers

import (
	"io"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

// defaultPatterns match the credential shapes reagent handles.
var defaultPatterns = []*regexp.Regexp{
	// OpenAI keys
	regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`),

	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{30,}`),
	regexp.MustCompile(`github_pat_[a-zA-Z0-9_]{30,}`),

	// Bearer tokens
	regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]+`),

	// Query string keys
	regexp.MustCompile(`api_key=[^&\s"]+`),
}

// Redactor removes credentials from log output.
type Redactor struct {
	patterns []*regexp.Regexp
	secrets  []string
}

// NewRedactor creates a redactor with the default patterns plus the given literal secrets.
// Empty secrets are ignored.
func NewRedactor(secrets ...string) *Redactor {
	r := &Redactor{patterns: defaultPatterns}
	for _, s := range secrets {
		if s != "" {
			r.secrets = append(r.secrets, s)
		}
	}
	return r
}

// Redact replaces every secret and pattern match in s.
func (r *Redactor) Redact(s string) string {
	for _, secret := range r.secrets {
		s = strings.ReplaceAll(s, secret, redacted)
	}
	for _, pattern := range r.patterns {
		s = pattern.ReplaceAllString(s, redacted)
	}
	return s
}

// Wrap returns a writer that redacts before writing to w.
func (r *Redactor) Wrap(w io.Writer) io.Writer {
	return &redactingWriter{writer: w, redactor: r}
}

type redactingWriter struct {
	writer   io.Writer
	redactor *Redactor
}

// Write reports len(p) on success. The redacted length differs.
func (w *redactingWriter) Write(p []byte) (int, error) {
	if _, err := w.writer.Write([]byte(w.redactor.Redact(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
