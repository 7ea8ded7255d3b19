// Package rewrite models the best-effort text enhancement step. A
// rewrite that fails for any reason falls back to the raw transcript;
// the pipeline never loses the user's words to a flaky provider.
package rewrite

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

// DefaultTimeout bounds one provider call.
const DefaultTimeout = 30 * time.Second

// Rewrite tracks one enhancement attempt over a fixed raw text.
type Rewrite struct {
	id   uuid.UUID
	sink ports.EventSink

	mu        sync.Mutex
	status    domain.RewriteStatus
	rawText   string
	rewritten string
	err       error
}

// New creates a pending rewrite over rawText.
func New(sink ports.EventSink, rawText string) *Rewrite {
	if sink == nil {
		sink = ports.NopSink{}
	}
	return &Rewrite{
		id:      uuid.New(),
		sink:    sink,
		status:  domain.RewritePending,
		rawText: rawText,
	}
}

// ID returns the stable identity of this attempt.
func (r *Rewrite) ID() uuid.UUID { return r.id }

// Start moves the rewrite to processing. Anywhere else it is a no-op.
func (r *Rewrite) Start() bool {
	r.mu.Lock()
	if r.status != domain.RewritePending {
		state := r.status
		r.mu.Unlock()
		r.sink.TransitionRejected("rewrite", "start", string(state))
		return false
	}
	r.status = domain.RewriteProcessing
	r.mu.Unlock()

	r.sink.RewriteStarted(r.id, r.rawText)
	return true
}

// Complete records the enhanced text. Only valid while processing.
func (r *Rewrite) Complete(text string) bool {
	r.mu.Lock()
	if r.status != domain.RewriteProcessing {
		state := r.status
		r.mu.Unlock()
		r.sink.TransitionRejected("rewrite", "complete", string(state))
		return false
	}
	r.status = domain.RewriteCompleted
	r.rewritten = text
	r.mu.Unlock()

	r.sink.RewriteCompleted(r.id, r.rawText, text)
	return true
}

// Fail records the provider error. Only valid while processing.
func (r *Rewrite) Fail(err error) bool {
	r.mu.Lock()
	if r.status != domain.RewriteProcessing {
		state := r.status
		r.mu.Unlock()
		r.sink.TransitionRejected("rewrite", "fail", string(state))
		return false
	}
	r.status = domain.RewriteFailed
	r.err = err
	r.mu.Unlock()

	r.sink.RewriteFailed(r.id, err)
	return true
}

// Status returns the current lifecycle state.
func (r *Rewrite) Status() domain.RewriteStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// RawText returns the original transcript this attempt started from.
func (r *Rewrite) RawText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rawText
}

// Err returns the failure cause, if the rewrite failed.
func (r *Rewrite) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// FinalText returns the enhanced text when the rewrite completed, and
// the raw text in every other state. This is the fallback guarantee.
func (r *Rewrite) FinalText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == domain.RewriteCompleted {
		return r.rewritten
	}
	return r.rawText
}

// Run drives one attempt end to end against provider and returns the
// text the pipeline should output. A nil or unconfigured provider, a
// provider error, a blank response, or a timeout all resolve to the
// raw text.
func Run(ctx context.Context, r *Rewrite, provider ports.RewriteProvider, timeout time.Duration) string {
	if !r.Start() {
		return r.FinalText()
	}
	if provider == nil {
		r.Fail(ports.ErrRewriteNotConfigured)
		return r.FinalText()
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := provider.Rewrite(ctx, r.RawText())
	if err != nil {
		r.Fail(err)
		return r.FinalText()
	}
	if strings.TrimSpace(text) == "" {
		r.Fail(ports.ErrRewriteEmptyResponse)
		return r.FinalText()
	}

	r.Complete(text)
	return r.FinalText()
}
