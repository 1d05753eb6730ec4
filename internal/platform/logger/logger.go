// Package logger builds the process slog.Logger.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a structured logger writing to w. format is "json" or "text";
// level is debug, info, warn or error (default info). Attributes whose key
// mentions "email" are masked.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(level),
		ReplaceAttr: redactEmails,
	}
	var h slog.Handler
	if strings.EqualFold(format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func redactEmails(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString || !strings.Contains(strings.ToLower(a.Key), "email") {
		return a
	}
	return slog.String(a.Key, MaskEmail(a.Value.String()))
}

// MaskEmail keeps the first character of the local part and the domain:
// "sales@expo.example" becomes "s***@expo.example".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}
