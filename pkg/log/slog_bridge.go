package log

import (
	"context"
	"log/slog"
)

// bridgeHandler is a slog.Handler that routes records through the logger's
// formatter/output pipeline. It lets slog-based callers share configuration
// with Logger users.
type bridgeHandler struct {
	logger *BaseLogger
	attrs  []slog.Attr
}

// NewSlogLogger wraps a Logger in a *slog.Logger. The argument must have been
// produced by NewLogger.
func NewSlogLogger(l Logger) *slog.Logger {
	base, ok := l.(*BaseLogger)
	if !ok {
		base = NewLogger().(*BaseLogger)
	}
	return slog.New(&bridgeHandler{logger: base})
}

func (h *bridgeHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.level <= fromSlogLevel(level)
}

func (h *bridgeHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]Field, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		fields = append(fields, Field{Key: a.Key, Value: a.Value.Any()})
	}
	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, Field{Key: a.Key, Value: a.Value.Any()})
		return true
	})
	h.logger.log(fromSlogLevel(r.Level), r.Message, fields)
	return nil
}

func (h *bridgeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	if len(attrs) > 0 {
		nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	}
	return &nh
}

func (h *bridgeHandler) WithGroup(string) slog.Handler { return h }

func fromSlogLevel(level slog.Level) Level {
	switch {
	case level <= slog.LevelDebug:
		return DebugLevel
	case level == slog.LevelInfo:
		return InfoLevel
	case level == slog.LevelWarn:
		return WarnLevel
	default:
		return ErrorLevel
	}
}
