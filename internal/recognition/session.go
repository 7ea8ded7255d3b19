// Package recognition drives concurrent per-language recognition streams
// and merges them into one ordered result per capture cycle.
package recognition

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

// ErrEmptyResult signals that no stream produced any text for the cycle.
var ErrEmptyResult = errors.New("recognition produced no text")

const entity = "recognition"

// Session is the state machine for one recognition cycle. It is 1:1 with
// the capture cycle that spawned it and advances
// Idle → Recognizing → Finalizing → Completed, or to Failed from
// Recognizing/Finalizing. Guarded transitions that fail their
// precondition are silent no-ops reported through the rejection hook.
type Session struct {
	id   uuid.UUID
	sink ports.EventSink

	mu        sync.Mutex
	status    domain.RecognitionStatus
	languages []domain.Language
	result    *Result
}

// NewSession creates an idle recognition session.
func NewSession(sink ports.EventSink) *Session {
	if sink == nil {
		sink = ports.NopSink{}
	}
	return &Session{id: uuid.New(), sink: sink, status: domain.RecognitionIdle}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Status returns the current recognition status.
func (s *Session) Status() domain.RecognitionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Languages returns the language snapshot taken at cycle start.
func (s *Session) Languages() []domain.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Language, len(s.languages))
	copy(out, s.languages)
	return out
}

// Result returns the finalized result, or nil before completion.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Start snapshots the enabled languages and begins recognizing.
// Precondition: Idle.
func (s *Session) Start(languages []domain.Language) bool {
	s.mu.Lock()
	if s.status != domain.RecognitionIdle {
		state := s.status
		s.mu.Unlock()
		s.sink.TransitionRejected(entity, "start", string(state))
		return false
	}
	s.languages = make([]domain.Language, len(languages))
	copy(s.languages, languages)
	s.status = domain.RecognitionRecognizing
	snapshot := make([]domain.Language, len(s.languages))
	copy(snapshot, s.languages)
	s.mu.Unlock()

	s.sink.RecognitionStarted(s.id, snapshot)
	return true
}

// Stop signals end-of-audio and enters Finalizing. The streams may still
// need time to emit their final transcripts; no result exists yet.
// Precondition: Recognizing.
func (s *Session) Stop() bool {
	s.mu.Lock()
	if s.status != domain.RecognitionRecognizing {
		state := s.status
		s.mu.Unlock()
		s.sink.TransitionRejected(entity, "stop", string(state))
		return false
	}
	s.status = domain.RecognitionFinalizing
	s.mu.Unlock()
	return true
}

// Complete stores the merged result and finishes the cycle.
// Precondition: Finalizing.
func (s *Session) Complete(result *Result) bool {
	s.mu.Lock()
	if s.status != domain.RecognitionFinalizing {
		state := s.status
		s.mu.Unlock()
		s.sink.TransitionRejected(entity, "complete", string(state))
		return false
	}
	s.result = result
	s.status = domain.RecognitionCompleted
	s.mu.Unlock()

	result.Finalize()
	s.sink.RecognitionFinalized(s.id, result.ID(), result.FullText(), result.Segments())
	return true
}

// Fail records a failed cycle. Precondition: Recognizing or Finalizing.
func (s *Session) Fail(err error) bool {
	s.mu.Lock()
	if s.status != domain.RecognitionRecognizing && s.status != domain.RecognitionFinalizing {
		state := s.status
		s.mu.Unlock()
		s.sink.TransitionRejected(entity, "fail", string(state))
		return false
	}
	s.status = domain.RecognitionFailed
	s.mu.Unlock()

	s.sink.RecognitionFailed(s.id, err)
	return true
}

// Reset returns the session to Idle and clears the result for reuse.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = domain.RecognitionIdle
	s.languages = nil
	s.result = nil
}
