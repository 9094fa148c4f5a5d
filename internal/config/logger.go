package config

import (
	"io"
	"log/slog"
	"os"
)

// ServiceName tags every log record emitted by the process.
const ServiceName = "emotion-api"

func (c *Config) NewLogger() *slog.Logger {
	return c.NewLoggerTo(os.Stdout)
}

// NewLoggerTo builds the same logger as NewLogger writing to w.
func (c *Config) NewLoggerTo(w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		AddSource: c.IsDevelopment(),
	}

	if c.IsProduction() {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(w, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("service", ServiceName))
}
