package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gyaneshwarpardhi/interactive/internal/api"
	"github.com/gyaneshwarpardhi/interactive/internal/config"
	"github.com/gyaneshwarpardhi/interactive/internal/gate"
	"github.com/gyaneshwarpardhi/interactive/internal/graph"
	"github.com/gyaneshwarpardhi/interactive/internal/runner"
	"github.com/gyaneshwarpardhi/interactive/internal/session"
)

func main() {
	addr := flag.String("addr", ":8188", "HTTP listen address")
	cfgPath := flag.String("config", "configs/workflow.yaml", "Path to workflow YAML config")
	debug := flag.Bool("debug", false, "Log selection changes at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	// ── Build initial graph ──────────────────────────────────────────────────
	g, err := graph.Build(&cfg.Workflow)
	if err != nil {
		slog.Error("failed to build workflow graph", "err", err)
		os.Exit(1)
	}

	// ── Gate engine and runner ───────────────────────────────────────────────
	eng := gate.New(gate.ThemeFromConfig(cfg.Theme), gate.WithLogger(logger.With("component", "gate")))
	run := runner.New(runner.DefaultRegistry(), logger.With("component", "runner"))

	// ── Session ──────────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := session.New(ctx, g, eng, run, cfg.Session, logger.With("component", "session"))

	handler := api.New(sess, loader)

	// ── Hot-reload watcher ───────────────────────────────────────────────────
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	sess.Shutdown()
	cancel()
	slog.Info("goodbye")
}
