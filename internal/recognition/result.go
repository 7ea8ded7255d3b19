package recognition

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"murmur/internal/domain"
)

// Result is the ordered collection of per-language segments produced by
// one recognition cycle. Segments are immutable once added; full text is
// built by segment order, regardless of insertion order.
type Result struct {
	id        uuid.UUID
	createdAt time.Time

	mu        sync.Mutex
	segments  []domain.Segment
	finalized bool
}

// NewResult creates an empty result for the current cycle.
func NewResult() *Result {
	return &Result{id: uuid.New(), createdAt: time.Now()}
}

// ID returns the result identifier.
func (r *Result) ID() uuid.UUID { return r.id }

// CreatedAt returns when the result was created.
func (r *Result) CreatedAt() time.Time { return r.createdAt }

// AddSegment appends a recognized segment. Adding after finalization is
// ignored; the segment list is fixed once the cycle completes.
func (r *Result) AddSegment(seg domain.Segment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finalized {
		return
	}
	r.segments = append(r.segments, seg)
}

// Segments returns a copy of all segments in insertion order.
func (r *Result) Segments() []domain.Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Segment, len(r.segments))
	copy(out, r.segments)
	return out
}

// SegmentsByLanguage returns the segments recognized in one language.
func (r *Result) SegmentsByLanguage(lang domain.Language) []domain.Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Segment
	for _, seg := range r.segments {
		if seg.Language == lang {
			out = append(out, seg)
		}
	}
	return out
}

// FullText concatenates all segment texts sorted by ascending order.
func (r *Result) FullText() string {
	segs := r.Segments()
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Order < segs[j].Order })

	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Empty reports whether the result holds no segments.
func (r *Result) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.segments) == 0
}

// Finalize marks the result complete. Only the first call takes effect;
// it returns whether this call performed the finalization.
func (r *Result) Finalize() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finalized {
		return false
	}
	r.finalized = true
	return true
}
