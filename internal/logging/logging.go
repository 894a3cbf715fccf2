// Package logging provides the debug logger for session tracing. Operator
// facing outcome lines are printed directly by the command and do not go
// through here.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Field keys whose values must never reach the log output.
var sensitiveKeys = []string{
	"password",
	"pass",
	"api_key",
	"apikey",
	"secret",
	"token",
}

// redactAttr replaces credential-bearing attribute values before they are
// written out.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	keyLower := strings.ToLower(a.Key)
	for _, sk := range sensitiveKeys {
		if strings.Contains(keyLower, sk) {
			a.Value = slog.StringValue("***REDACTED***")
			break
		}
	}
	return a
}

// ParseLevel maps a level name from the environment to a slog level.
// Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
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

// New returns a text logger writing to w at the given level, with sensitive
// fields redacted.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	})
	return slog.New(handler)
}
