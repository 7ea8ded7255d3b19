// Package window resolves the currently focused window. The lookup is
// best effort; delivery never depends on it succeeding.
package window

import (
	"murmur/internal/domain"
	"murmur/internal/ports"
)

// Lookup implements ports.WindowLookup for the host platform.
type Lookup struct{}

func NewLookup() *Lookup {
	return &Lookup{}
}

// ActiveWindow returns the focused window, or an error when the
// platform lookup fails. Callers treat either as optional context.
func (l *Lookup) ActiveWindow() (*domain.WindowContext, error) {
	return activeWindow()
}

var _ ports.WindowLookup = (*Lookup)(nil)
