package capture

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

func TestSessionFullCycle(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	s := NewSession(sink)

	if got := s.Status(); got != domain.CaptureIdle {
		t.Fatalf("unexpected initial status: %s", got)
	}

	if !s.Start() {
		t.Fatalf("start should succeed from idle")
	}
	if got := s.Status(); got != domain.CaptureRecording {
		t.Fatalf("unexpected status after start: %s", got)
	}
	if s.StartedAt().IsZero() {
		t.Fatalf("expected startedAt to be set")
	}
	if !s.StoppedAt().IsZero() {
		t.Fatalf("expected stoppedAt to be cleared on start")
	}

	if !s.Stop() {
		t.Fatalf("stop should succeed from recording")
	}
	if got := s.Status(); got != domain.CaptureProcessing {
		t.Fatalf("unexpected status after stop: %s", got)
	}
	if s.StoppedAt().IsZero() {
		t.Fatalf("expected stoppedAt to be set")
	}

	if !s.Complete() {
		t.Fatalf("complete should succeed from processing")
	}
	if got := s.Status(); got != domain.CaptureIdle {
		t.Fatalf("unexpected status after complete: %s", got)
	}

	if got := sink.sequence(); len(got) != 3 ||
		got[0] != "captureStarted" || got[1] != "captureStopped" || got[2] != "captureCompleted" {
		t.Fatalf("unexpected event sequence: %v", got)
	}
}

func TestSessionOutOfOrderCallsAreNoOps(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	s := NewSession(sink)

	if s.Stop() {
		t.Fatalf("stop while idle must be a no-op")
	}
	if s.Complete() {
		t.Fatalf("complete while idle must be a no-op")
	}
	if got := s.Status(); got != domain.CaptureIdle {
		t.Fatalf("status should stay idle, got %s", got)
	}

	if !s.Start() {
		t.Fatalf("start failed")
	}
	if s.Start() {
		t.Fatalf("double start must be a no-op")
	}
	if s.Complete() {
		t.Fatalf("complete while recording must be a no-op")
	}
	if got := s.Status(); got != domain.CaptureRecording {
		t.Fatalf("status should stay recording, got %s", got)
	}

	rejected := sink.rejections()
	if len(rejected) != 4 {
		t.Fatalf("expected 4 rejected transitions, got %d: %v", len(rejected), rejected)
	}
	if rejected[0] != "capture/stop@idle" || rejected[2] != "capture/start@recording" {
		t.Fatalf("unexpected rejections: %v", rejected)
	}
}

func TestSessionIsReusableAcrossCycles(t *testing.T) {
	t.Parallel()

	s := NewSession(nil)
	firstID := s.ID()

	for i := 0; i < 3; i++ {
		if !s.Start() || !s.Stop() || !s.Complete() {
			t.Fatalf("cycle %d did not run cleanly", i)
		}
	}
	if s.ID() != firstID {
		t.Fatalf("session id must be stable across cycles")
	}
	if got := s.Status(); got != domain.CaptureIdle {
		t.Fatalf("expected idle after cycles, got %s", got)
	}
}

type recordingSink struct {
	ports.NopSink

	mu       sync.Mutex
	events   []string
	rejected []string
}

func (r *recordingSink) CaptureStarted(_ uuid.UUID, _ time.Time) { r.record("captureStarted") }
func (r *recordingSink) CaptureStopped(_ uuid.UUID, _ time.Time) { r.record("captureStopped") }
func (r *recordingSink) CaptureCompleted(_ uuid.UUID)            { r.record("captureCompleted") }

func (r *recordingSink) TransitionRejected(entity, operation, state string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected = append(r.rejected, entity+"/"+operation+"@"+state)
}

func (r *recordingSink) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

func (r *recordingSink) sequence() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingSink) rejections() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.rejected))
	copy(out, r.rejected)
	return out
}
