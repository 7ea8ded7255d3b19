package recognition

import (
	"testing"

	"murmur/internal/domain"
)

func TestTranscriptJoinsFinalsWithSpokenFallback(t *testing.T) {
	t.Parallel()

	tr := &transcript{}
	tr.Add(domain.TranscriptEvent{Kind: domain.TranscriptKindPartial, Text: "hello"})
	tr.Add(domain.TranscriptEvent{Kind: domain.TranscriptKindFinal, Text: "hello world"})
	tr.Add(domain.TranscriptEvent{Kind: domain.TranscriptKindPartial, Text: "hello world again"})

	if got := tr.Text(); got != "hello world hello world again" {
		t.Fatalf("unexpected transcript: %q", got)
	}
}

func TestTranscriptPartialOnly(t *testing.T) {
	t.Parallel()

	tr := &transcript{}
	tr.Add(domain.TranscriptEvent{Kind: domain.TranscriptKindPartial, Text: "こんにちは"})

	if got := tr.Text(); got != "こんにちは" {
		t.Fatalf("unexpected transcript: %q", got)
	}
}

func TestTranscriptIgnoresBlankEvents(t *testing.T) {
	t.Parallel()

	tr := &transcript{}
	tr.Add(domain.TranscriptEvent{Kind: domain.TranscriptKindFinal, Text: "   "})
	if got := tr.Text(); got != "" {
		t.Fatalf("expected empty transcript, got %q", got)
	}
}

func TestTranscriptFinalRepeatingLastSpoken(t *testing.T) {
	t.Parallel()

	tr := &transcript{}
	tr.Add(domain.TranscriptEvent{Kind: domain.TranscriptKindPartial, Text: "hello wor"})
	tr.Add(domain.TranscriptEvent{Kind: domain.TranscriptKindFinal, Text: "hello world"})

	if got := tr.Text(); got != "hello world" {
		t.Fatalf("unexpected transcript: %q", got)
	}
}
