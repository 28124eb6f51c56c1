package logging

import (
	"context"
	"log/slog"
	"os"
)

type HandlerConfig struct {
	Environment  Environment
	ServiceInfo  ServiceInfo
	Module       Module
	GCPProjectID string
	Level        slog.Level
}

// NewLogger builds the service-wide structured logger. Dev environments get
// human-readable text output; everything else logs JSON with the service
// identity attached to every record.
func NewLogger(cfg HandlerConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var inner slog.Handler
	if cfg.Environment == EnvDev {
		inner = slog.NewTextHandler(os.Stdout, opts)
	} else {
		inner = slog.NewJSONHandler(os.Stdout, opts)
	}

	handler := &contextHandler{
		inner:        inner,
		gcpProjectID: cfg.GCPProjectID,
	}

	logger := slog.New(handler).With(
		slog.String("service", cfg.ServiceInfo.Name),
		slog.String("version", cfg.ServiceInfo.Version),
		slog.String("module", cfg.Module.String()),
	)
	if cfg.ServiceInfo.Revision != "" {
		logger = logger.With(slog.String("revision", cfg.ServiceInfo.Revision))
	}

	return logger
}

// contextHandler enriches records with trace correlation attributes pulled
// from the request context.
type contextHandler struct {
	inner        slog.Handler
	gcpProjectID string
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs := gcpTraceAttrs(ctx, h.gcpProjectID); len(attrs) > 0 {
		record.AddAttrs(attrs...)
	}
	return h.inner.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{inner: h.inner.WithAttrs(attrs), gcpProjectID: h.gcpProjectID}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{inner: h.inner.WithGroup(name), gcpProjectID: h.gcpProjectID}
}
