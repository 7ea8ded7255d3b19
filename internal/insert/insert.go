// Package insert delivers text into the user's environment: the
// clipboard, the focused input field, or both.
package insert

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

// typer injects text into the currently focused input field. One
// implementation per platform.
type typer interface {
	Type(ctx context.Context, text string) error
}

// Sink implements ports.TextSink.
type Sink struct {
	typer  typer
	logger zerolog.Logger
}

func NewSink(logger zerolog.Logger) *Sink {
	return &Sink{typer: newTyper(), logger: logger}
}

// InsertAtCursor types text into the focused field. The window context
// is advisory; insertion targets whatever holds focus right now.
func (s *Sink) InsertAtCursor(ctx context.Context, text string, win *domain.WindowContext) error {
	if text == "" {
		return nil
	}
	if win != nil {
		s.logger.Debug().
			Str("application", win.ApplicationName).
			Str("window", win.WindowTitle).
			Msg("inserting into focused field")
	}
	if err := s.typer.Type(ctx, text); err != nil {
		return fmt.Errorf("failed to type into focused field: %w", err)
	}
	return nil
}

// CopyToClipboard replaces the clipboard contents with text.
func (s *Sink) CopyToClipboard(_ context.Context, text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

var _ ports.TextSink = (*Sink)(nil)
