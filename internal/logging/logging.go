package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kutbudev/alarmclock/pkg/config"
	"gorm.io/gorm/logger"
)

// New builds the process logger on stderr.
func New(cfg config.LogConfig) *slog.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter builds a text or JSON slog logger writing to w.
func NewWithWriter(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name onto slog; unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GormLogger returns gorm's default logger at the verbosity matching level.
// SQL statements are only traced at debug.
func GormLogger(level string) logger.Interface {
	switch ParseLevel(level) {
	case slog.LevelDebug:
		return logger.Default.LogMode(logger.Info)
	case slog.LevelInfo, slog.LevelWarn:
		return logger.Default.LogMode(logger.Warn)
	default:
		return logger.Default.LogMode(logger.Error)
	}
}
