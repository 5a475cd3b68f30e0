// Package logging configures the process-wide slog logger. Output goes to
// stderr as text; components attach their own context with logger.With.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup builds the logger at the given level, installs it as the slog
// default, and returns it. The level comes from CARTTALLY_LOG_LEVEL and
// accepts "debug", "info", "warn", or "error" in any case; anything else,
// including an empty string, means info.
func Setup(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
