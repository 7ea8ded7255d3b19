// Package ports declares the collaborator contracts the pipeline core
// depends on. Every interface here is swapped for a fake in tests.
package ports

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"murmur/internal/domain"
)

// AudioConfig describes how the microphone should be captured.
type AudioConfig struct {
	SampleRate  int
	Channels    int
	InputFormat string
	InputDevice string
}

// AudioStream is a live microphone capture.
type AudioStream interface {
	io.ReadCloser
	Stop() error
}

// AudioSource creates microphone capture streams.
type AudioSource interface {
	Start(ctx context.Context, cfg AudioConfig) (AudioStream, error)
}

// StreamConfig describes provider-agnostic recognition stream settings.
type StreamConfig struct {
	SampleRate     int
	Channels       int
	Encoding       string
	InterimResults bool
}

// RecognitionStream is one open per-language recognition stream. It emits
// zero or more transcript events and exactly one terminal result through
// Wait after CloseSend signals end-of-audio. Close must unblock Wait.
type RecognitionStream interface {
	SendAudio(chunk []byte) error
	CloseSend() error
	Events() <-chan domain.TranscriptEvent
	Wait() error
	Close() error
}

// RecognitionEngine opens recognition streams, one per language.
// An unavailable engine yields no segment for that language; it is not a
// hard failure of the whole cycle.
type RecognitionEngine interface {
	Available(lang domain.Language) bool
	Open(ctx context.Context, lang domain.Language, cfg StreamConfig) (RecognitionStream, error)
}

// Rewrite provider sentinel errors (the contract of RewriteProvider).
var (
	ErrRewriteNotConfigured = errors.New("rewrite provider is not configured")
	ErrRewriteEmptyResponse = errors.New("rewrite provider returned an empty response")
)

// RewriteProvider performs the best-effort text enhancement call.
type RewriteProvider interface {
	Rewrite(ctx context.Context, text string) (string, error)
}

// TextSink delivers final text into the user's environment.
type TextSink interface {
	InsertAtCursor(ctx context.Context, text string, win *domain.WindowContext) error
	CopyToClipboard(ctx context.Context, text string) error
}

// WindowLookup resolves the currently focused window, if any.
type WindowLookup interface {
	ActiveWindow() (*domain.WindowContext, error)
}

// HotkeySource reports edge-triggered press/release of the designated
// global push-to-talk key.
type HotkeySource interface {
	Start(onKeyDown, onKeyUp func()) error
	Stop() error
}

// SecretStore holds the rewrite credential. Get returns an empty string
// without error when no credential is stored.
type SecretStore interface {
	Get() (string, error)
	Set(value string) error
	Delete() error
}

// RulesEngine applies deterministic substitutions to final text.
type RulesEngine interface {
	Apply(text string) (string, error)
}

// EventSink receives the domain events of every pipeline entity. The
// taxonomy mirrors the entity lifecycles so observers can assert on the
// event sequence, not just final state.
type EventSink interface {
	LanguageAdded(lang domain.Language)
	LanguageRemoved(lang domain.Language)

	ShortcutEnabled()
	ShortcutDisabled()

	CaptureStarted(sessionID uuid.UUID, startedAt time.Time)
	CaptureStopped(sessionID uuid.UUID, stoppedAt time.Time)
	CaptureCompleted(sessionID uuid.UUID)

	RecognitionStarted(sessionID uuid.UUID, languages []domain.Language)
	PartialTranscript(lang domain.Language, text string)
	RecognitionFinalized(sessionID uuid.UUID, resultID uuid.UUID, fullText string, segments []domain.Segment)
	RecognitionFailed(sessionID uuid.UUID, err error)

	RewriteStarted(rewriteID uuid.UUID, rawText string)
	RewriteCompleted(rewriteID uuid.UUID, rawText string, rewrittenText string)
	RewriteFailed(rewriteID uuid.UUID, err error)

	OutputCompleted(outputID uuid.UUID, text string, method domain.OutputMethod)
	OutputCopied(outputID uuid.UUID, text string)
	OutputFailed(outputID uuid.UUID, err error)

	// TransitionRejected is the observability hook for guarded state
	// machine calls whose precondition failed. Rejections stay silent
	// no-ops in pipeline terms.
	TransitionRejected(entity string, operation string, state string)
}

// NopSink discards every event. Embed it to observe a subset.
type NopSink struct{}

func (NopSink) LanguageAdded(domain.Language)                                     {}
func (NopSink) LanguageRemoved(domain.Language)                                   {}
func (NopSink) ShortcutEnabled()                                                  {}
func (NopSink) ShortcutDisabled()                                                 {}
func (NopSink) CaptureStarted(uuid.UUID, time.Time)                               {}
func (NopSink) CaptureStopped(uuid.UUID, time.Time)                               {}
func (NopSink) CaptureCompleted(uuid.UUID)                                        {}
func (NopSink) RecognitionStarted(uuid.UUID, []domain.Language)                   {}
func (NopSink) PartialTranscript(domain.Language, string)                         {}
func (NopSink) RecognitionFinalized(uuid.UUID, uuid.UUID, string, []domain.Segment) {
}
func (NopSink) RecognitionFailed(uuid.UUID, error)                 {}
func (NopSink) RewriteStarted(uuid.UUID, string)                   {}
func (NopSink) RewriteCompleted(uuid.UUID, string, string)         {}
func (NopSink) RewriteFailed(uuid.UUID, error)                     {}
func (NopSink) OutputCompleted(uuid.UUID, string, domain.OutputMethod) {
}
func (NopSink) OutputCopied(uuid.UUID, string)            {}
func (NopSink) OutputFailed(uuid.UUID, error)             {}
func (NopSink) TransitionRejected(string, string, string) {}
