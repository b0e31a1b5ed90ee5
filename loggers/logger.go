package loggers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFile is the log file used by the CLI.
const DefaultFile = ".logs/reagent.log"

// Config holds logger configuration.
type Config struct {
	Level   string // trace, debug, info, warn, error, disabled
	File    string // log file path, empty disables file output
	Console bool   // also write to Stderr
	Pretty  bool   // human readable console output

	// Secrets are literal values, such as API keys, that must never reach a log sink.
	Secrets []string

	// Stderr overrides os.Stderr for console output.
	Stderr io.Writer
}

// Logger is a zerolog.Logger bound to its output file.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New creates a logger writing to the configured sinks. Every sink goes through a [Redactor].
// Without any sink the logger discards everything.
func New(cfg Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer

	if cfg.Console {
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		var console io.Writer = stderr
		if cfg.Pretty {
			console = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
		}
		writers = append(writers, console)
	}

	var file *os.File
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, file)
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = io.MultiWriter(writers...)
	}
	writer = NewRedactor(cfg.Secrets...).Wrap(writer)

	return &Logger{
		Logger: zerolog.New(writer).Level(level).With().Timestamp().Logger(),
		file:   file,
	}, nil
}

// Zerolog returns the underlying zerolog.Logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.Logger
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
