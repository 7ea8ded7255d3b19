// Package gemini implements the rewrite provider against the Gemini
// generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"murmur/internal/ports"
)

// rewritePrompt instructs the model to clean up dictated text without
// changing its meaning. The transcript is appended verbatim.
const rewritePrompt = `以下の音声認識結果を自然な文章に修正してください。

ルール:
- フィラーワード（えーと、あのー、um、uh、あー、えー）を除去してください
- 文法的に正しい文章に修正してください
- 句読点を適切に挿入してください
- 元の意味は必ず保持してください
- 余計な説明や注釈は付けず、修正後のテキストのみを返してください
- 日本語と英語が混在している場合は、それぞれの言語の文法ルールに従ってください

音声認識結果:
`

// Config controls the Gemini REST client.
type Config struct {
	Model   string
	BaseURL string
}

// Provider implements ports.RewriteProvider. The API key is read from
// the secret store on every call, so a key saved mid-session takes
// effect without a restart.
type Provider struct {
	cfg     Config
	secrets ports.SecretStore
	client  *http.Client
}

func NewProvider(cfg Config, secrets ports.SecretStore) *Provider {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	return &Provider{
		cfg:     cfg,
		secrets: secrets,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Rewrite sends text through the model and returns the cleaned-up
// version. Fails with ErrRewriteNotConfigured when no credential is
// stored and ErrRewriteEmptyResponse when the model returns nothing
// usable.
func (p *Provider) Rewrite(ctx context.Context, text string) (string, error) {
	apiKey, err := p.secrets.Get()
	if err != nil {
		return "", fmt.Errorf("failed to read rewrite credential: %w", err)
	}
	if strings.TrimSpace(apiKey) == "" {
		return "", ports.ErrRewriteNotConfigured
	}

	payload := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: rewritePrompt + text}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode rewrite request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(p.cfg.BaseURL, "/"), p.cfg.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build rewrite request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("rewrite request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read rewrite response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rewrite request returned status %d: %s", resp.StatusCode, summarize(raw))
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode rewrite response: %w", err)
	}

	rewritten := strings.TrimSpace(decoded.text())
	if rewritten == "" {
		return "", ports.ErrRewriteEmptyResponse
	}
	return rewritten, nil
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r generateContentResponse) text() string {
	var sb strings.Builder
	for _, candidate := range r.Candidates {
		for _, p := range candidate.Content.Parts {
			sb.WriteString(p.Text)
		}
		break
	}
	return sb.String()
}

func summarize(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		return text[:200]
	}
	return text
}
