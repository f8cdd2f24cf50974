package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"takehome-engine/internal/metrics"
	"takehome-engine/internal/model"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

// RequestID returns the ID assigned to the request by WithRequestID.
func RequestID(ctx *fasthttp.RequestCtx) string {
	if id, ok := ctx.UserValue(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID reuses the caller's X-Request-ID or assigns a new one and
// echoes it on the response.
func WithRequestID(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		id := string(ctx.Request.Header.Peek(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		ctx.SetUserValue(requestIDKey, id)
		ctx.Response.Header.Set(requestIDHeader, id)
		next(ctx)
	}
}

// AccessLog writes one log line per request and records it in m.
func AccessLog(m *metrics.Collector, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		elapsed := time.Since(start)

		status := ctx.Response.StatusCode()
		m.Record(status, elapsed)
		slog.Info("request",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", status,
			"durationMs", float64(elapsed.Microseconds())/1000,
			"requestId", RequestID(ctx),
		)
	}
}

// Recover answers 500 when a handler panics outside the calculation routes.
func Recover(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("handler panicked", "requestId", RequestID(ctx), "panic", rec)
				ctx.Response.ResetBody()
				writeJSON(ctx, fasthttp.StatusInternalServerError, model.Envelope{Error: "internal server error"})
			}
		}()
		next(ctx)
	}
}

// Chain wraps the router with request ID, access logging and panic
// recovery, outermost first.
func (h *Handler) Chain() fasthttp.RequestHandler {
	return WithRequestID(AccessLog(h.metrics, Recover(h.Handle)))
}

// ReadError answers requests the server could not read. A body over the
// size limit is an input failure and gets the failure envelope with HTTP
// 200 like any other rejected calculation; malformed HTTP keeps a 4xx.
func (h *Handler) ReadError(ctx *fasthttp.RequestCtx, err error) {
	var small *fasthttp.ErrSmallBuffer
	switch {
	case errors.Is(err, fasthttp.ErrBodyTooLarge):
		h.metrics.CalculationRejected()
		slog.Warn("request body too large", "path", string(ctx.Path()), "err", err)
		writeJSON(ctx, fasthttp.StatusOK, model.Envelope{Error: "request body too large"})
	case errors.As(err, &small):
		writeJSON(ctx, fasthttp.StatusRequestHeaderFieldsTooLarge, model.Envelope{Error: "request headers too large"})
	default:
		slog.Debug("unreadable request", "err", err)
		writeJSON(ctx, fasthttp.StatusBadRequest, model.Envelope{Error: "malformed request"})
	}
}
