package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/valyala/fasthttp"

	"takehome-engine/internal/config"
)

const shutdownTimeout = 5 * time.Second

// New builds the fasthttp server for handler using cfg's limits. onError
// answers requests that fail before reaching handler, such as a body over
// cfg.MaxBodyBytes; nil keeps fasthttp's plain-text replies.
func New(cfg config.Config, handler fasthttp.RequestHandler, onError func(*fasthttp.RequestCtx, error)) *fasthttp.Server {
	return &fasthttp.Server{
		Handler:            handler,
		ErrorHandler:       onError,
		Name:               "takehome-engine",
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
		IdleTimeout:        60 * time.Second,
		MaxRequestBodySize: cfg.MaxBodyBytes,
		CloseOnShutdown:    true,
	}
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down gracefully.
func Serve(ctx context.Context, srv *fasthttp.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}

// ListenAndServe listens on addr and calls Serve.
func ListenAndServe(ctx context.Context, srv *fasthttp.Server, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	slog.Info("listening", "addr", ln.Addr().String())
	return Serve(ctx, srv, ln)
}
