package cli

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// LogFormat values accepted by the log_format setting.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
	LogFormatText   = "text"
)

type loggerConfig struct {
	level  slog.Level
	format string
	writer io.Writer
}

// LoggerOption configures a logger created with NewLogger.
type LoggerOption func(*loggerConfig)

// WithDebug sets the log level to Debug when true, Info otherwise.
func WithDebug(debug bool) LoggerOption {
	return func(c *loggerConfig) {
		if debug {
			c.level = slog.LevelDebug
		} else {
			c.level = slog.LevelInfo
		}
	}
}

// WithFormat selects the pretty (charmbracelet/log), json or text handler.
func WithFormat(format string) LoggerOption {
	return func(c *loggerConfig) {
		c.format = format
	}
}

// WithWriter overrides the output writer. Defaults to os.Stderr.
func WithWriter(w io.Writer) LoggerOption {
	return func(c *loggerConfig) {
		c.writer = w
	}
}

// NewLogger returns the slog handler the command line logs through.
func NewLogger(opts ...LoggerOption) *slog.Logger {
	c := loggerConfig{
		level:  slog.LevelInfo,
		format: LogFormatPretty,
		writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(&c)
	}

	var h slog.Handler
	switch c.format {
	case LogFormatJSON:
		h = slog.NewJSONHandler(c.writer, &slog.HandlerOptions{Level: c.level})
	case LogFormatText:
		h = slog.NewTextHandler(c.writer, &slog.HandlerOptions{Level: c.level})
	default:
		h = charmlog.NewWithOptions(c.writer, charmlog.Options{
			Level:  charmlog.Level(c.level),
			Prefix: "pine",
		})
	}
	return slog.New(h)
}
