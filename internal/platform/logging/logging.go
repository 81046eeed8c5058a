// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logging builds the process logger: JSON lines on the given writer,
// tagged with the application name, with credential-like attributes redacted.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/taibuivan/taakbeheer/internal/platform/constants"
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "***REDACTED***"

// sensitiveKeyPatterns match attribute keys whose string values are never written.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"authorization",
	"bearer",
	"credential",
	"dsn",
}

// New returns a JSON logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// ParseLevel maps LOG_LEVEL values (debug, info, warn, error) to a level.
func ParseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", value)
	}
	return level, nil
}

func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	return redact(attr)
}

// redact blanks sensitive string values and walks nested groups.
func redact(attr slog.Attr) slog.Attr {
	switch attr.Value.Kind() {
	case slog.KindString:
		if attr.Value.String() != "" && IsSensitiveKey(attr.Key) {
			return slog.String(attr.Key, Redacted)
		}
	case slog.KindGroup:
		attrs := attr.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, nested := range attrs {
			redacted[i] = redact(nested)
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(redacted...)}
	}
	return attr
}

// IsSensitiveKey reports whether key names a credential.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
