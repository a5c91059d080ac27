package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// EnvLevel names the environment variable holding the log level
const EnvLevel = "DETECT_COLUMNS_LOG"

func levelFromString(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(s) {
	case "debug", "dbg":
		return slog.LevelDebug, true
	case "info", "inf":
		return slog.LevelInfo, true
	case "warn", "wrn":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// DefaultPath returns the log file location in the XDG state directory
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "detect-columns", "detect-columns.log")
}

// InitLogger makes a text handler writing to path the default slog logger.
// Unknown levels fall back to info.
func InitLogger(path, level string) (*os.File, error) {
	loglevel, _ := levelFromString(level)

	logDir := filepath.Dir(path)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	// slog defaults to logging in the order of time, level, msg, and other attributes.
	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: loglevel})

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logFile, nil
}
