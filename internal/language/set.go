// Package language manages the set of enabled recognition languages.
package language

import (
	"sync"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

// Set is the ordered set of enabled recognition languages. The order of
// enablement is the order recognition segments are assigned, so it is
// preserved across mutations. At least one language stays enabled at all
// times.
type Set struct {
	mu    sync.Mutex
	langs []domain.Language
	sink  ports.EventSink
}

// NewSet builds a set from the given languages in enablement order,
// dropping duplicates. With no languages it falls back to the default
// Japanese + English pair.
func NewSet(sink ports.EventSink, langs ...domain.Language) *Set {
	if sink == nil {
		sink = ports.NopSink{}
	}
	s := &Set{sink: sink}
	for _, lang := range langs {
		if !s.containsLocked(lang) {
			s.langs = append(s.langs, lang)
		}
	}
	if len(s.langs) == 0 {
		s.langs = []domain.Language{domain.LanguageJapanese, domain.LanguageEnglish}
	}
	return s
}

// Add enables a language. Returns false if it is already enabled.
func (s *Set) Add(lang domain.Language) bool {
	s.mu.Lock()
	if s.containsLocked(lang) {
		s.mu.Unlock()
		return false
	}
	s.langs = append(s.langs, lang)
	s.mu.Unlock()

	s.sink.LanguageAdded(lang)
	return true
}

// Remove disables a language. Returns false if it is not enabled or if
// removing it would empty the set.
func (s *Set) Remove(lang domain.Language) bool {
	s.mu.Lock()
	if !s.containsLocked(lang) || len(s.langs) <= 1 {
		s.mu.Unlock()
		return false
	}
	next := make([]domain.Language, 0, len(s.langs)-1)
	for _, l := range s.langs {
		if l != lang {
			next = append(next, l)
		}
	}
	s.langs = next
	s.mu.Unlock()

	s.sink.LanguageRemoved(lang)
	return true
}

// Contains reports whether a language is enabled.
func (s *Set) Contains(lang domain.Language) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(lang)
}

// Multi reports whether two or more languages are enabled.
func (s *Set) Multi() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.langs) >= 2
}

// Len returns the number of enabled languages.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.langs)
}

// Snapshot returns a copy of the enabled languages in enablement order.
// Recognition cycles snapshot once at start; later mutations apply to
// the next cycle only.
func (s *Set) Snapshot() []domain.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Language, len(s.langs))
	copy(out, s.langs)
	return out
}

func (s *Set) containsLocked(lang domain.Language) bool {
	for _, l := range s.langs {
		if l == lang {
			return true
		}
	}
	return false
}
