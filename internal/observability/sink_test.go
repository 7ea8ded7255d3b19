package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

func TestMultiSinkFansOutInOrder(t *testing.T) {
	t.Parallel()

	first := &countingSink{}
	second := &countingSink{}
	multi := MultiSink{first, second}

	id := uuid.New()
	multi.CaptureStarted(id, time.Now())
	multi.PartialTranscript(domain.LanguageJapanese, "こん")
	multi.RecognitionFailed(id, errors.New("boom"))
	multi.TransitionRejected("capture", "start", "recording")

	for name, sink := range map[string]*countingSink{"first": first, "second": second} {
		if sink.events != 4 {
			t.Fatalf("%s sink saw %d events, want 4", name, sink.events)
		}
	}
}

func TestMultiSinkSatisfiesEventSink(t *testing.T) {
	t.Parallel()

	var _ ports.EventSink = MultiSink{}
	var _ ports.EventSink = LogSink{}
	var _ ports.EventSink = NewMetricsSink()
}

type countingSink struct {
	ports.NopSink
	events int
}

func (c *countingSink) CaptureStarted(uuid.UUID, time.Time)           { c.events++ }
func (c *countingSink) PartialTranscript(domain.Language, string)     { c.events++ }
func (c *countingSink) RecognitionFailed(uuid.UUID, error)            { c.events++ }
func (c *countingSink) TransitionRejected(string, string, string)     { c.events++ }
