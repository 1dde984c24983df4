package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	log      *slog.Logger
	pkg      string
	file     string
	function string
}

// Init installs the process-wide slog handler. Format is "json" or "text".
func Init(format, level string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func New(pkg string) Logger {
	return Logger{pkg: pkg}
}

func (l Logger) File(file string) Logger {
	l.file = file
	return l
}

func (l Logger) Function(function string) Logger {
	l.function = function
	return l
}

func (l Logger) logger() *slog.Logger {
	base := l.log
	if base == nil {
		base = slog.Default()
	}

	attrs := []any{"package", l.pkg}
	if l.file != "" {
		attrs = append(attrs, "file", l.file)
	}
	if l.function != "" {
		attrs = append(attrs, "function", l.function)
	}

	return base.With(attrs...)
}

func (l Logger) prefix() string {
	if l.function == "" {
		return l.pkg
	}
	return l.pkg + "." + l.function
}

func (l Logger) Debug(msg string, args ...any) {
	l.logger().Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.logger().Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.logger().Warn(msg, args...)
}

// Err logs msg with the cause and returns the cause wrapped with msg.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.logger().Error(msg, append(args, "error", err)...)
	return fmt.Errorf("%s: %s: %w", l.prefix(), msg, err)
}

// Error logs msg and returns it as a new error.
func (l Logger) Error(msg string, args ...any) error {
	l.logger().Error(msg, args...)
	return fmt.Errorf("%s: %w", l.prefix(), errors.New(msg))
}

func (l Logger) ErrMsg(msg string) error {
	return l.Error(msg)
}

// Er logs without returning an error.
func (l Logger) Er(msg string, err error, args ...any) {
	l.logger().Error(msg, append(args, "error", err)...)
}

func (l Logger) ErMsg(msg string, args ...any) {
	l.logger().Error(msg, args...)
}
