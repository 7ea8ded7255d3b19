// Package config loads the process configuration from the environment,
// with an optional .env file for development.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

// Config holds all configuration for the dictation pipeline.
type Config struct {
	// Pipeline behavior
	Languages       string        `envconfig:"LANGUAGES" default:"ja,en"`       // Comma-separated, in enablement order
	OutputMethod    string        `envconfig:"OUTPUT_METHOD" default:"both"`    // activefield, clipboard, both
	ShortcutEnabled bool          `envconfig:"SHORTCUT_ENABLED" default:"true"` // Honor the push-to-talk hotkey at startup
	FinalizeTimeout time.Duration `envconfig:"FINALIZE_TIMEOUT" default:"4s"`   // Bound on waiting for recognition streams
	RewriteTimeout  time.Duration `envconfig:"REWRITE_TIMEOUT" default:"30s"`   // Bound on one rewrite provider call
	RulesFile       string        `envconfig:"RULES_FILE" default:""`           // Substitution rules applied to final text

	// Audio capture
	SampleRate  int    `envconfig:"SAMPLE_RATE" default:"16000"`
	Channels    int    `envconfig:"CHANNELS" default:"1"`
	InputFormat string `envconfig:"INPUT_FORMAT" default:""` // Platform capture backend; autodetected when empty
	InputDevice string `envconfig:"INPUT_DEVICE" default:"default"`
	ChunkSize   int    `envconfig:"CHUNK_SIZE" default:"4096"` // Audio bytes per recognition send

	// Deepgram recognition
	DeepgramAPIKey string `envconfig:"DEEPGRAM_API_KEY" default:""`
	DeepgramURL    string `envconfig:"DEEPGRAM_URL" default:"wss://api.deepgram.com/v1/listen"`
	DeepgramModel  string `envconfig:"DEEPGRAM_MODEL" default:"nova-2"` // nova-2, enhanced, base

	// Gemini rewrite. The API key lives in the OS keyring, not here.
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`

	// Observability
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`   // debug, info, warn, error
	LogPretty     bool   `envconfig:"LOG_PRETTY" default:"false"` // Pretty print logs (for development)
	MetricsAddr   string `envconfig:"METRICS_ADDR" default:""`    // e.g. :9090; empty disables the metrics server
	Notifications bool   `envconfig:"NOTIFICATIONS" default:"true"`
}

// Load reads configuration from the environment. A .env file is applied
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("murmur", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := cfg.EnabledLanguages(); err != nil {
		return nil, err
	}
	if _, err := cfg.Output(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnabledLanguages parses the configured language list, preserving its
// order.
func (c *Config) EnabledLanguages() ([]domain.Language, error) {
	var langs []domain.Language
	for _, part := range strings.Split(c.Languages, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lang, err := domain.ParseLanguage(part)
		if err != nil {
			return nil, err
		}
		langs = append(langs, lang)
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("at least one language must be configured")
	}
	return langs, nil
}

// Output parses the configured output method.
func (c *Config) Output() (domain.OutputMethod, error) {
	return domain.ParseOutputMethod(c.OutputMethod)
}

// AudioConfig returns the microphone capture settings.
func (c *Config) AudioConfig() ports.AudioConfig {
	return ports.AudioConfig{
		SampleRate:  c.SampleRate,
		Channels:    c.Channels,
		InputFormat: c.InputFormat,
		InputDevice: c.InputDevice,
	}
}

// StreamConfig returns the recognition stream settings.
func (c *Config) StreamConfig() ports.StreamConfig {
	return ports.StreamConfig{
		SampleRate:     c.SampleRate,
		Channels:       c.Channels,
		Encoding:       "linear16",
		InterimResults: true,
	}
}
