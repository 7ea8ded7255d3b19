package deepgram

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

func TestNewEngineDefaults(t *testing.T) {
	t.Parallel()

	e := NewEngine(Config{})
	if e.cfg.ListenURL != "wss://api.deepgram.com/v1/listen" {
		t.Fatalf("unexpected listen url: %q", e.cfg.ListenURL)
	}
	if e.cfg.Model != "nova-2" {
		t.Fatalf("unexpected model: %q", e.cfg.Model)
	}
}

func TestEngineUnavailableWithoutAPIKey(t *testing.T) {
	t.Parallel()

	e := NewEngine(Config{APIKey: "  "})
	if e.Available(domain.LanguageJapanese) {
		t.Fatalf("engine must be unavailable without an API key")
	}
	if _, err := e.Open(context.Background(), domain.LanguageJapanese, ports.StreamConfig{}); err == nil {
		t.Fatalf("expected missing key error")
	}
}

func TestBuildListenURLDefaults(t *testing.T) {
	t.Parallel()

	url, err := buildListenURL(
		Config{ListenURL: "https://api.deepgram.com/v1/listen", Model: "nova-2"},
		domain.LanguageJapanese,
		ports.StreamConfig{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(url, "wss://api.deepgram.com/v1/listen") {
		t.Fatalf("unexpected ws url: %s", url)
	}
	if !strings.Contains(url, "language=ja") {
		t.Fatalf("expected short language code in url: %s", url)
	}
	if !strings.Contains(url, "encoding=linear16") {
		t.Fatalf("expected default encoding in url: %s", url)
	}
	if !strings.Contains(url, "sample_rate=16000") {
		t.Fatalf("expected default sample_rate in url: %s", url)
	}
	if !strings.Contains(url, "channels=1") {
		t.Fatalf("expected default channels in url: %s", url)
	}
}

func TestBuildListenURLWithSmartFormat(t *testing.T) {
	t.Parallel()

	url, err := buildListenURL(
		Config{ListenURL: "http://localhost:8080/v1/listen", Model: "m", SmartFormat: true},
		domain.LanguageEnglish,
		ports.StreamConfig{Encoding: "linear16", SampleRate: 8000, Channels: 2, InterimResults: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(url, "ws://localhost:8080/v1/listen") {
		t.Fatalf("unexpected ws url: %s", url)
	}
	if !strings.Contains(url, "language=en") {
		t.Fatalf("expected language in url: %s", url)
	}
	if !strings.Contains(url, "smart_format=true") {
		t.Fatalf("expected smart_format in url: %s", url)
	}
	if !strings.Contains(url, "interim_results=true") {
		t.Fatalf("expected interim_results in url: %s", url)
	}
}

func TestBuildListenURLInvalidBase(t *testing.T) {
	t.Parallel()

	_, err := buildListenURL(Config{ListenURL: ":// bad"}, domain.LanguageEnglish, ports.StreamConfig{})
	if err == nil {
		t.Fatalf("expected invalid listen url error")
	}
}

func TestExtractTranscript(t *testing.T) {
	t.Parallel()

	r1 := listenResponse{}
	r1.Channel.Alternatives = append(r1.Channel.Alternatives, struct {
		Transcript string "json:\"transcript\""
	}{Transcript: " channel "})
	if got := extractTranscript(r1); got != "channel" {
		t.Fatalf("unexpected transcript from channel: %q", got)
	}

	r2 := listenResponse{}
	r2.Results.Channels = append(r2.Results.Channels, struct {
		Alternatives []struct {
			Transcript string "json:\"transcript\""
		} "json:\"alternatives\""
	}{
		Alternatives: []struct {
			Transcript string "json:\"transcript\""
		}{{Transcript: "results"}},
	})
	if got := extractTranscript(r2); got != "results" {
		t.Fatalf("unexpected transcript from results: %q", got)
	}

	if got := extractTranscript(listenResponse{}); got != "" {
		t.Fatalf("expected empty transcript, got %q", got)
	}
}

func TestStreamSendAudioClosed(t *testing.T) {
	t.Parallel()

	s := &stream{sendClosed: true}
	if err := s.SendAudio([]byte("x")); err == nil {
		t.Fatalf("expected closed error")
	}
}

func TestStreamCloseSendIsIdempotent(t *testing.T) {
	t.Parallel()

	s := &stream{audio: make(chan []byte, 1)}
	if err := s.CloseSend(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.CloseSend(); err != nil {
		t.Fatalf("unexpected second error: %v", err)
	}
}

func TestStreamSetErrIgnoresCloseErrors(t *testing.T) {
	t.Parallel()

	s := &stream{}
	s.setErr(&websocket.CloseError{Code: websocket.CloseNormalClosure, Text: "closed"})
	if s.waitErr() != nil {
		t.Fatalf("expected close error to be ignored")
	}

	s.setErr(errors.New("boom"))
	if s.waitErr() == nil || s.waitErr().Error() != "boom" {
		t.Fatalf("expected non-close error to be captured")
	}
}

func TestStreamSetErrFirstWins(t *testing.T) {
	t.Parallel()

	s := &stream{}
	s.setErr(errors.New("first"))
	s.setErr(errors.New("second"))
	if s.waitErr() == nil || s.waitErr().Error() != "first" {
		t.Fatalf("expected first error to win")
	}
}
