// Package notify surfaces pipeline outcomes as desktop notifications.
package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

// Sink is an event sink decorator that raises desktop notifications for
// the outcomes the user cares about. Everything else passes through
// silently.
type Sink struct {
	ports.NopSink
	logger zerolog.Logger
}

func NewSink(logger zerolog.Logger) *Sink {
	return &Sink{logger: logger}
}

func (s *Sink) RecognitionFailed(_ uuid.UUID, err error) {
	s.show("Dictation failed", err.Error())
}

func (s *Sink) OutputCompleted(_ uuid.UUID, text string, _ domain.OutputMethod) {
	s.show("Dictation delivered", preview(text))
}

func (s *Sink) OutputFailed(_ uuid.UUID, err error) {
	s.show("Delivery failed", err.Error())
}

func (s *Sink) show(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		s.logger.Debug().Err(err).Msg("desktop notification failed")
	}
}

func preview(text string) string {
	const max = 80
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
