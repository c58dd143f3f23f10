package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
)

var defaultLogger *slog.Logger

// Options selects where log records go. With neither set nothing is logged,
// since stdout carries the selection and stderr belongs to the selector UI.
type Options struct {
	// Verbose sends debug-level records to stderr.
	Verbose bool

	// File, when non-empty, receives records as JSON lines.
	File string
}

// openLogFile opens path for appending, creating its directory if needed.
func openLogFile(path string) (*os.File, error) {
	// 0750: user rwx, group rx, others ---
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("could not create log directory %s: %w", filepath.Dir(path), err)
	}
	// 0640: user rw, group r, others ---
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("could not open log file %s: %w", path, err)
	}
	return file, nil
}

// newHandler builds the handler for opts. The file handle, if any, is left
// for the OS to close on exit.
func newHandler(opts Options, stderr *os.File) (slog.Handler, error) {
	var writers []io.Writer
	if opts.File != "" {
		file, err := openLogFile(opts.File)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}
	if opts.Verbose {
		writers = append(writers, stderr)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch len(writers) {
	case 0:
		return slog.DiscardHandler, nil
	case 1:
		if opts.Verbose && isatty.IsTerminal(stderr.Fd()) {
			return slog.NewTextHandler(stderr, handlerOpts), nil
		}
		return slog.NewJSONHandler(writers[0], handlerOpts), nil
	default:
		return slog.NewJSONHandler(io.MultiWriter(writers...), handlerOpts), nil
	}
}

// InitLogger configures the package logger. It should be called once, before
// any other logging call. On error the logger falls back to discarding records.
func InitLogger(opts Options) error {
	handler, err := newHandler(opts, os.Stderr)
	if err != nil {
		defaultLogger = slog.New(slog.DiscardHandler)
		return err
	}
	defaultLogger = slog.New(handler)
	return nil
}

// SetLogger replaces the package logger, mainly for tests.
func SetLogger(l *slog.Logger) {
	defaultLogger = l
}

// checkLogger ensures the logger is initialized before use, preventing nil panics.
func checkLogger() {
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.DiscardHandler)
	}
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	checkLogger()
	defaultLogger.Info(msg, args...)
}

// Infof logs a formatted informational message.
func Infof(format string, v ...any) {
	checkLogger()
	defaultLogger.Info(fmt.Sprintf(format, v...))
}

// Error logs an error message.
func Error(msg string, args ...any) {
	checkLogger()
	defaultLogger.Error(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	checkLogger()
	defaultLogger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	checkLogger()
	defaultLogger.Warn(msg, args...)
}
