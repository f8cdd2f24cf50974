package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"takehome-engine/internal/config"
	"takehome-engine/internal/engine"
	"takehome-engine/internal/handler"
	"takehome-engine/internal/metrics"
	"takehome-engine/internal/server"
	"takehome-engine/internal/taxyear"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	table, err := loadTable(cfg)
	if err != nil {
		slog.Error("tax year table", "err", err)
		os.Exit(1)
	}

	h := handler.New(engine.New(table), metrics.New())
	srv := server.New(cfg, h.Chain(), h.ReadError)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("take-home engine starting", "port", cfg.Port, "taxYear", table.Name)
	if err := server.ListenAndServe(ctx, srv, cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func loadTable(cfg config.Config) (*taxyear.Constants, error) {
	if cfg.TaxTableFile != "" {
		return taxyear.LoadFile(cfg.TaxTableFile)
	}
	return taxyear.Default()
}
