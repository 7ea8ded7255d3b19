package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"murmur/internal/ports"
)

func TestRewriteSendsPromptAndReturnsCandidateText(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("unexpected api key header: %q", got)
		}

		var req generateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Errorf("unexpected request shape: %+v", req)
		}
		prompt := req.Contents[0].Parts[0].Text
		if !strings.HasSuffix(prompt, "えーと hello world") {
			t.Errorf("transcript not appended to prompt: %q", prompt)
		}

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":" Hello world. "}]}}]}`))
	}))
	defer server.Close()

	p := NewProvider(Config{BaseURL: server.URL}, staticSecret{key: "test-key"})
	got, err := p.Rewrite(context.Background(), "えーと hello world")
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if got != "Hello world." {
		t.Fatalf("unexpected rewritten text: %q", got)
	}
}

func TestRewriteNotConfiguredWithoutCredential(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{}, staticSecret{})
	_, err := p.Rewrite(context.Background(), "text")
	if !errors.Is(err, ports.ErrRewriteNotConfigured) {
		t.Fatalf("expected ErrRewriteNotConfigured, got %v", err)
	}
}

func TestRewriteEmptyResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`))
	}))
	defer server.Close()

	p := NewProvider(Config{BaseURL: server.URL}, staticSecret{key: "k"})
	_, err := p.Rewrite(context.Background(), "text")
	if !errors.Is(err, ports.ErrRewriteEmptyResponse) {
		t.Fatalf("expected ErrRewriteEmptyResponse, got %v", err)
	}
}

func TestRewriteSurfacesHTTPErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewProvider(Config{BaseURL: server.URL}, staticSecret{key: "k"})
	_, err := p.Rewrite(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestRewriteSecretStoreFailure(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{}, staticSecret{err: errors.New("keyring locked")})
	_, err := p.Rewrite(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "keyring locked") {
		t.Fatalf("expected secret store error, got %v", err)
	}
}

type staticSecret struct {
	key string
	err error
}

func (s staticSecret) Get() (string, error) { return s.key, s.err }
func (s staticSecret) Set(string) error     { return nil }
func (s staticSecret) Delete() error        { return nil }
