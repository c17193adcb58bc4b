package config

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	// FormatJCS is JSON in RFC 8785 canonical form.
	FormatJCS = "jcs"
)

func NormalizeFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "" {
		format = FormatTable
	}
	switch format {
	case FormatTable, FormatJSON, FormatJCS:
		return format, nil
	case "text":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("invalid report format %q (expected %s|%s|%s)", raw, FormatTable, FormatJSON, FormatJCS)
	}
}

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}
