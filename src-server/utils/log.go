package utils

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LevelSuccess sits between INFO and WARN and marks a completed load,
// reload, sync or dispatch.
const LevelSuccess = slog.Level(2)

// Success logs at LevelSuccess on the default logger.
func Success(msg string, args ...any) {
	slog.Default().Log(context.Background(), LevelSuccess, msg, args...)
}

// ParseLevel maps LOG_LEVEL values to slog levels, default to debug.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return slog.LevelInfo
	case "success":
		return LevelSuccess
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

const (
	ansiReset       = "\033[0m"
	ansiBrightRed   = "\033[91m"
	ansiBrightGreen = "\033[92m"
	ansiBrightYell  = "\033[93m"
	ansiBrightBlue  = "\033[94m"
)

func levelLabel(level slog.Level, noColor bool) string {
	label, color := "DBG", ""
	switch {
	case level >= slog.LevelError:
		label, color = "ERR", ansiBrightRed
	case level >= slog.LevelWarn:
		label, color = "WRN", ansiBrightYell
	case level >= LevelSuccess:
		label, color = "SUC", ansiBrightGreen
	case level >= slog.LevelInfo:
		label, color = "INF", ansiBrightBlue
	}
	if noColor || color == "" {
		return label
	}
	return color + label + ansiReset
}

// NewLogHandler returns the tint console handler with the five levels the
// bot reports: DBG, INF, SUC, WRN, ERR.
func NewLogHandler(w io.Writer, level slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC1123Z,
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) != 0 {
				return a
			}
			if lvl, ok := a.Value.Any().(slog.Level); ok {
				return slog.String(slog.LevelKey, levelLabel(lvl, noColor))
			}
			return a
		},
	})
}
