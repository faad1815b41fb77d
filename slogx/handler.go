// Package slogx integrates ambient state with log/slog.
//
// Handler wraps any slog.Handler and stamps each record with the current
// value of the registered ambient kinds, taken from the context the log
// call was made with. Logging code never mentions the ambient values;
// they appear on the records because the context carries them.
//
//	var Tenant = ambient.NewKind[string]("tenant")
//
//	logger := slog.New(slogx.NewHandler(
//	    slog.NewJSONHandler(os.Stdout, nil),
//	    Tenant,
//	))
//
//	ctx, sc := Tenant.Enter(ctx, "acme")
//	defer sc.Close()
//	logger.InfoContext(ctx, "charge accepted") // record carries tenant=acme
package slogx

import (
	"context"
	"log/slog"
)

// Source contributes a context-derived attribute to log records.
// ambient.Kind implements Source via its ContextAttr method.
type Source interface {
	ContextAttr(ctx context.Context) (slog.Attr, bool)
}

// Handler decorates an inner slog.Handler with ambient attributes.
type Handler struct {
	inner   slog.Handler
	sources []Source
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler wraps inner. Each record handled is stamped with one
// attribute per source that has a value on the record's context.
func NewHandler(inner slog.Handler, sources ...Source) *Handler {
	return &Handler{inner: inner, sources: sources}
}

// Enabled delegates to the inner handler.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle stamps the record with ambient attributes and passes it on.
func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	var attrs []slog.Attr
	for _, s := range h.sources {
		if attr, ok := s.ContextAttr(ctx); ok {
			attrs = append(attrs, attr)
		}
	}
	if len(attrs) > 0 {
		rec = rec.Clone()
		rec.AddAttrs(attrs...)
	}
	return h.inner.Handle(ctx, rec)
}

// WithAttrs returns a Handler whose inner handler carries the attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs), sources: h.sources}
}

// WithGroup returns a Handler whose inner handler opens the group.
// Ambient attributes added after this point land inside the group, which
// matches how slog scopes every subsequent attribute.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name), sources: h.sources}
}
