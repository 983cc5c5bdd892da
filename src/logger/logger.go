// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for logging operations.
// It provides methods for formatted output and output redirection.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger on standard error with timestamps disabled.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stderr, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// StructuredLogger implements Logger on top of a [zap.Logger] with a JSON
// encoder. Printf and Println log at info level.
//
// StructuredLogger is safe for concurrent use by multiple goroutines.
type StructuredLogger struct {
	mu    sync.RWMutex
	level zap.AtomicLevel
	zl    *zap.Logger
}

// NewStructuredLogger creates a JSON logger writing to w at the named zap
// level ("debug", "info", "warn", "error"). An empty level means info. A nil
// writer discards output.
func NewStructuredLogger(w io.Writer, level string) (*StructuredLogger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	s := &StructuredLogger{level: zap.NewAtomicLevelAt(lvl)}
	s.zl = s.build(w)
	return s, nil
}

func (s *StructuredLogger) build(w io.Writer) *zap.Logger {
	if w == nil {
		w = io.Discard
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.Lock(zapcore.AddSync(w)), s.level)
	return zap.New(core)
}

// Zap returns the underlying zap logger for callers that want typed fields.
func (s *StructuredLogger) Zap() *zap.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zl
}

// Printf formats and logs a message at info level.
func (s *StructuredLogger) Printf(format string, v ...any) {
	s.Zap().Info(fmt.Sprintf(format, v...))
}

// Println logs its operands, separated by spaces, at info level.
func (s *StructuredLogger) Println(v ...any) {
	s.Zap().Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// SetLevel changes the minimum level logged.
func (s *StructuredLogger) SetLevel(l zapcore.Level) { s.level.SetLevel(l) }

// SetOutput sets the output destination for the structured logger.
func (s *StructuredLogger) SetOutput(w io.Writer) {
	zl := s.build(w)
	s.mu.Lock()
	s.zl = zl
	s.mu.Unlock()
}

// Sync flushes buffered log entries.
func (s *StructuredLogger) Sync() error { return s.Zap().Sync() }

// New returns the logger selected by format, "text" or "json".
// level only applies to "json"; the text logger prints every message.
func New(format, level string, w io.Writer) (Logger, error) {
	switch format {
	case "", "text":
		l := NewCLILogger()
		if w != nil {
			l.SetOutput(w)
		}
		return l, nil
	case "json":
		if w == nil {
			w = os.Stderr
		}
		return NewStructuredLogger(w, level)
	default:
		return nil, fmt.Errorf("logger: unknown format %q", format)
	}
}
