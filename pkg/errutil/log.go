// Package errutil bridges oops-annotated errors and slog.
package errutil

import (
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs err at error level. oops errors contribute their code and
// context attributes; anything else is logged by its string.
func LogError(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, Attrs(err)...)
}

// LogWarn is LogError at warn level, for failures the caller recovered from.
func LogWarn(logger *slog.Logger, msg string, err error) {
	logger.Warn(msg, Attrs(err)...)
}

// Attrs flattens err into slog key/value pairs.
func Attrs(err error) []any {
	attrs := []any{"error", err.Error()}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return attrs
	}
	if code := oopsErr.Code(); code != nil {
		attrs = append(attrs, "code", code)
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		attrs = append(attrs, "context", ctx)
	}
	return attrs
}
