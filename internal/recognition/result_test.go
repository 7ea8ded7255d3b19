package recognition

import (
	"testing"

	"murmur/internal/domain"
)

func TestResultFullTextSortsByOrderNotInsertion(t *testing.T) {
	t.Parallel()

	forward := NewResult()
	forward.AddSegment(domain.Segment{Text: "Hello ", Language: domain.LanguageEnglish, Order: 0})
	forward.AddSegment(domain.Segment{Text: "世界", Language: domain.LanguageJapanese, Order: 1})

	reversed := NewResult()
	reversed.AddSegment(domain.Segment{Text: "世界", Language: domain.LanguageJapanese, Order: 1})
	reversed.AddSegment(domain.Segment{Text: "Hello ", Language: domain.LanguageEnglish, Order: 0})

	if got := forward.FullText(); got != "Hello 世界" {
		t.Fatalf("unexpected full text: %q", got)
	}
	if forward.FullText() != reversed.FullText() {
		t.Fatalf("full text must be invariant under insertion order: %q vs %q",
			forward.FullText(), reversed.FullText())
	}
}

func TestResultSegmentsByLanguage(t *testing.T) {
	t.Parallel()

	r := NewResult()
	r.AddSegment(domain.Segment{Text: "こんにちは", Language: domain.LanguageJapanese, Order: 0})
	r.AddSegment(domain.Segment{Text: "hello", Language: domain.LanguageEnglish, Order: 1})

	ja := r.SegmentsByLanguage(domain.LanguageJapanese)
	if len(ja) != 1 || ja[0].Text != "こんにちは" {
		t.Fatalf("unexpected japanese segments: %v", ja)
	}
	if got := r.SegmentsByLanguage(domain.Language("fr-FR")); len(got) != 0 {
		t.Fatalf("expected no segments, got %v", got)
	}
}

func TestResultFinalizeIsExactlyOnce(t *testing.T) {
	t.Parallel()

	r := NewResult()
	r.AddSegment(domain.Segment{Text: "a", Language: domain.LanguageEnglish, Order: 0})

	if !r.Finalize() {
		t.Fatalf("first finalize should take effect")
	}
	if r.Finalize() {
		t.Fatalf("second finalize must be a no-op")
	}

	r.AddSegment(domain.Segment{Text: "b", Language: domain.LanguageEnglish, Order: 1})
	if got := r.FullText(); got != "a" {
		t.Fatalf("segments must be fixed after finalize, got %q", got)
	}
}

func TestResultEmpty(t *testing.T) {
	t.Parallel()

	r := NewResult()
	if !r.Empty() {
		t.Fatalf("new result should be empty")
	}
	r.AddSegment(domain.Segment{Text: "x", Language: domain.LanguageEnglish, Order: 0})
	if r.Empty() {
		t.Fatalf("result with a segment is not empty")
	}
}
