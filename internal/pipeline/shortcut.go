package pipeline

import (
	"sync"

	"murmur/internal/ports"
)

// Shortcut gates the push-to-talk hotkey. While disabled, key edges are
// ignored and no capture starts.
type Shortcut struct {
	sink ports.EventSink

	mu      sync.Mutex
	enabled bool
}

// NewShortcut creates a shortcut gate in the given initial state.
func NewShortcut(sink ports.EventSink, enabled bool) *Shortcut {
	if sink == nil {
		sink = ports.NopSink{}
	}
	return &Shortcut{sink: sink, enabled: enabled}
}

// Enabled reports whether key edges are currently honored.
func (s *Shortcut) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Enable turns the hotkey on. Enabling an enabled shortcut is a no-op.
func (s *Shortcut) Enable() {
	s.mu.Lock()
	changed := !s.enabled
	s.enabled = true
	s.mu.Unlock()
	if changed {
		s.sink.ShortcutEnabled()
	}
}

// Disable turns the hotkey off. Disabling a disabled shortcut is a no-op.
func (s *Shortcut) Disable() {
	s.mu.Lock()
	changed := s.enabled
	s.enabled = false
	s.mu.Unlock()
	if changed {
		s.sink.ShortcutDisabled()
	}
}

// Toggle flips the gate and returns the new state.
func (s *Shortcut) Toggle() bool {
	s.mu.Lock()
	s.enabled = !s.enabled
	enabled := s.enabled
	s.mu.Unlock()
	if enabled {
		s.sink.ShortcutEnabled()
	} else {
		s.sink.ShortcutDisabled()
	}
	return enabled
}
