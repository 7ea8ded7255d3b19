package recognition

import (
	"strings"
	"sync"

	"murmur/internal/domain"
)

// transcript accumulates the cumulative text of one language's stream
// from its partial and final events. Back-ends differ in whether the
// last final repeats earlier text, so Text reconciles the joined finals
// with the last spoken update instead of trusting either alone.
type transcript struct {
	mu         sync.Mutex
	finals     []string
	lastSpoken string
}

func (t *transcript) Add(event domain.TranscriptEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	text := strings.TrimSpace(event.Text)
	if text == "" {
		return
	}
	t.lastSpoken = text
	if event.Kind == domain.TranscriptKindFinal {
		t.finals = append(t.finals, text)
	}
}

func (t *transcript) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	joined := strings.TrimSpace(strings.Join(t.finals, " "))
	if joined == "" {
		return t.lastSpoken
	}
	if t.lastSpoken == "" {
		return joined
	}
	if strings.HasSuffix(joined, t.lastSpoken) {
		return joined
	}
	if len(t.lastSpoken) > len(joined) {
		return strings.TrimSpace(joined + " " + t.lastSpoken)
	}
	return joined
}
