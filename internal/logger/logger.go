package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/polkiloo/restaurant/internal/config"
)

// New creates a JSON slog.Logger writing to stdout at the given level.
func New(level slog.Leveler) *slog.Logger {
	return newWithWriter(os.Stdout, level)
}

func newWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	if level == nil {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", "restaurant"))
}

func fromConfig(cfg *config.Config) *slog.Logger {
	return New(cfg.LogLevel)
}
