package secret

import (
	"testing"

	"github.com/zalando/go-keyring"
)

func TestStoreRoundTrip(t *testing.T) {
	keyring.MockInit()
	s := NewStore()

	if got, err := s.Get(); err != nil || got != "" {
		t.Fatalf("missing credential should be empty without error, got %q %v", got, err)
	}

	if err := s.Set("api-key-123"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got, err := s.Get(); err != nil || got != "api-key-123" {
		t.Fatalf("unexpected credential: %q %v", got, err)
	}

	if err := s.Delete(); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got, err := s.Get(); err != nil || got != "" {
		t.Fatalf("credential should be gone, got %q %v", got, err)
	}

	// Deleting again stays quiet.
	if err := s.Delete(); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
}
