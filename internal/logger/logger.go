package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/aputours/backend/internal/config"
)

// NewLogger creates a JSON slog.Logger at the configured level. Source
// locations are only recorded at debug level.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, opts))
	log.Info("logger initialized", "level", level)

	return log
}
