package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Config struct {
	Level  Level  `toml:"level"  yaml:"level"  validate:"omitempty,oneof=debug info warn error"`
	Format Format `toml:"format" yaml:"format" validate:"omitempty,oneof=text json"`
	Output string `toml:"output" yaml:"output"`
}

type Logger struct {
	*slog.Logger
}

// New builds a logger writing to the configured output: stdout, stderr,
// discard or a file path opened in append mode.
func New(config Config) *Logger {
	return NewWithWriter(openOutput(config.Output), config)
}

// NewWithWriter builds a logger on an explicit writer, ignoring config.Output.
func NewWithWriter(writer io.Writer, config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level: config.Level.slogLevel(),
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	case FormatText:
		fallthrough
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// With returns a child logger carrying the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Component tags every record with the emitting component.
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}

func (lvl Level) slogLevel() slog.Level {
	switch lvl {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelInfo:
		fallthrough
	default:
		return slog.LevelInfo
	}
}

func openOutput(output string) io.Writer {
	switch output {
	case "", "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	case "discard":
		return io.Discard
	default:
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fail to open custom logger file. Using 'stdout' error: %s\n", err.Error())
			return os.Stdout
		}
		return file
	}
}
