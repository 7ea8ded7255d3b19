// Package capture models one push-to-talk press/release cycle.
package capture

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

const entity = "capture"

// Session is the state machine for one push-to-talk cycle. It advances
// Idle → Recording → Processing → Idle and is reused across utterances.
// Guarded transitions whose precondition fails are silent no-ops: the
// sink's rejected-transition hook fires, but no error is raised. This
// keeps duplicate hotkey edges harmless.
type Session struct {
	id   uuid.UUID
	sink ports.EventSink

	mu        sync.Mutex
	status    domain.CaptureStatus
	startedAt time.Time
	stoppedAt time.Time
}

// NewSession creates an idle capture session.
func NewSession(sink ports.EventSink) *Session {
	if sink == nil {
		sink = ports.NopSink{}
	}
	return &Session{id: uuid.New(), sink: sink, status: domain.CaptureIdle}
}

// ID returns the stable session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Status returns the current capture status.
func (s *Session) Status() domain.CaptureStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// StartedAt returns when the current or last cycle began recording.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// StoppedAt returns when the current or last cycle stopped recording.
func (s *Session) StoppedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stoppedAt
}

// Start begins recording. Precondition: Idle. Returns whether the
// transition took effect.
func (s *Session) Start() bool {
	s.mu.Lock()
	if s.status != domain.CaptureIdle {
		state := s.status
		s.mu.Unlock()
		s.sink.TransitionRejected(entity, "start", string(state))
		return false
	}
	now := time.Now()
	s.startedAt = now
	s.stoppedAt = time.Time{}
	s.status = domain.CaptureRecording
	s.mu.Unlock()

	s.sink.CaptureStarted(s.id, now)
	return true
}

// Stop ends recording and enters Processing. Precondition: Recording.
func (s *Session) Stop() bool {
	s.mu.Lock()
	if s.status != domain.CaptureRecording {
		state := s.status
		s.mu.Unlock()
		s.sink.TransitionRejected(entity, "stop", string(state))
		return false
	}
	now := time.Now()
	s.stoppedAt = now
	s.status = domain.CaptureProcessing
	s.mu.Unlock()

	s.sink.CaptureStopped(s.id, now)
	return true
}

// Complete finishes the cycle and returns to Idle. Precondition:
// Processing.
func (s *Session) Complete() bool {
	s.mu.Lock()
	if s.status != domain.CaptureProcessing {
		state := s.status
		s.mu.Unlock()
		s.sink.TransitionRejected(entity, "complete", string(state))
		return false
	}
	s.status = domain.CaptureIdle
	s.mu.Unlock()

	s.sink.CaptureCompleted(s.id)
	return true
}
