// Package bootstrap assembles the pipeline from configuration.
package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog"

	"murmur/internal/audio"
	"murmur/internal/config"
	"murmur/internal/hotkey"
	"murmur/internal/insert"
	"murmur/internal/language"
	"murmur/internal/notify"
	"murmur/internal/observability"
	"murmur/internal/pipeline"
	"murmur/internal/ports"
	"murmur/internal/providers/deepgram"
	"murmur/internal/providers/gemini"
	"murmur/internal/rules"
	"murmur/internal/secret"
	"murmur/internal/window"
)

// App holds the wired pipeline and its long-lived collaborators.
type App struct {
	Orchestrator *pipeline.Orchestrator
	Hotkey       ports.HotkeySource
	Secrets      ports.SecretStore
	Logger       zerolog.Logger
}

// Build constructs the whole pipeline from cfg. Every collaborator is
// created here and injected; nothing reaches for global state later.
func Build(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	langs, err := cfg.EnabledLanguages()
	if err != nil {
		return nil, err
	}
	method, err := cfg.Output()
	if err != nil {
		return nil, err
	}

	ruleEngine, err := rules.NewEngine(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	sink := observability.MultiSink{
		observability.LogSink{Logger: logger},
		observability.NewMetricsSink(),
	}
	if cfg.Notifications {
		sink = append(sink, notify.NewSink(logger))
	}

	secrets := secret.NewStore()

	engine := deepgram.NewEngine(deepgram.Config{
		APIKey:      cfg.DeepgramAPIKey,
		ListenURL:   cfg.DeepgramURL,
		Model:       cfg.DeepgramModel,
		SmartFormat: true,
	})

	rewriter := gemini.NewProvider(gemini.Config{
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	}, secrets)

	orch := pipeline.New(
		audio.NewFFmpegSource(""),
		engine,
		rewriter,
		ruleEngine,
		insert.NewSink(logger),
		window.NewLookup(),
		language.NewSet(sink, langs...),
		pipeline.NewShortcut(sink, cfg.ShortcutEnabled),
		sink,
		logger,
		pipeline.Config{
			Audio:           cfg.AudioConfig(),
			Stream:          cfg.StreamConfig(),
			ChunkSize:       cfg.ChunkSize,
			FinalizeTimeout: cfg.FinalizeTimeout,
			RewriteTimeout:  cfg.RewriteTimeout,
			OutputMethod:    method,
		},
	)

	return &App{
		Orchestrator: orch,
		Hotkey:       hotkey.NewListener(logger),
		Secrets:      secrets,
		Logger:       logger,
	}, nil
}
