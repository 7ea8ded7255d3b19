package bootstrap

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"murmur/internal/config"
	"murmur/internal/domain"
)

func defaultConfig() *config.Config {
	return &config.Config{
		Languages:       "ja,en",
		OutputMethod:    "both",
		ShortcutEnabled: true,
		FinalizeTimeout: 4 * time.Second,
		RewriteTimeout:  30 * time.Second,
		SampleRate:      16000,
		Channels:        1,
		ChunkSize:       4096,
	}
}

func TestBuildWiresPipeline(t *testing.T) {
	app, err := Build(defaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if app.Orchestrator == nil || app.Hotkey == nil || app.Secrets == nil {
		t.Fatalf("incomplete app: %+v", app)
	}

	langs := app.Orchestrator.Languages().Snapshot()
	if len(langs) != 2 || langs[0] != domain.LanguageJapanese || langs[1] != domain.LanguageEnglish {
		t.Fatalf("unexpected languages: %v", langs)
	}
	if !app.Orchestrator.Shortcut().Enabled() {
		t.Fatalf("shortcut should start enabled")
	}
	if got := app.Orchestrator.CaptureStatus(); got != domain.CaptureIdle {
		t.Fatalf("pipeline should start idle, got %s", got)
	}
}

func TestBuildRejectsBadLanguages(t *testing.T) {
	cfg := defaultConfig()
	cfg.Languages = "klingon"

	if _, err := Build(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected unknown language to fail the build")
	}
}

func TestBuildRejectsBadOutputMethod(t *testing.T) {
	cfg := defaultConfig()
	cfg.OutputMethod = "telepathy"

	if _, err := Build(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected unknown output method to fail the build")
	}
}
