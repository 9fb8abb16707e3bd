package logger

import (
	"context"
	"log/slog"
)

type ctxValue struct {
	name string
	key  any
}

// contextHandler adds the values registered with WithContextValue to every
// record handled with a context that carries them.
type contextHandler struct {
	next   slog.Handler
	values []ctxValue
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, cv := range h.values {
		if v := ctx.Value(cv.key); v != nil {
			rec.AddAttrs(slog.Any(cv.name, v))
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), values: h.values}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), values: h.values}
}
