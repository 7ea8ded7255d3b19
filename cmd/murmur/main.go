// Command murmur is a push-to-talk dictation daemon: hold the global
// hotkey, speak, release, and the recognized (and rewritten) text lands
// in the focused field and/or clipboard.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"murmur/internal/bootstrap"
	"murmur/internal/config"
	"murmur/internal/hotkey"
	"murmur/internal/observability"
	"murmur/internal/pipeline"
)

func main() {
	// The hotkey runtime needs the main OS thread on macOS.
	hotkey.RunOnMainThread(run)
}

func run() {
	cfg, err := config.Load()
	if err != nil {
		fallback := observability.NewLogger("info", false)
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogPretty)

	app, err := bootstrap.Build(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to assemble pipeline")
	}

	if cfg.MetricsAddr != "" {
		go observability.ServeMetrics(cfg.MetricsAddr, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.Hotkey.Start(
		func() { app.Orchestrator.HandleKeyDown(ctx) },
		func() { go app.Orchestrator.HandleKeyUp(ctx) },
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to bind push-to-talk key")
	}

	logger.Info().
		Str("languages", cfg.Languages).
		Str("output", cfg.OutputMethod).
		Msg("murmur ready")

	<-ctx.Done()

	logger.Info().Msg("shutting down")
	_ = app.Hotkey.Stop()
	if err := app.Orchestrator.Abort(); err != nil && err != pipeline.ErrNoActiveUtterance {
		logger.Warn().Err(err).Msg("failed to discard in-flight utterance")
	}
}
