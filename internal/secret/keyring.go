// Package secret stores the rewrite credential in the OS keyring.
package secret

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"murmur/internal/ports"
)

const (
	service = "murmur"
	account = "gemini-api-key"
)

// Store implements ports.SecretStore over the OS keyring.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Get returns the stored credential. A missing credential is not an
// error; it returns an empty string.
func (s *Store) Get() (string, error) {
	value, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read credential: %w", err)
	}
	return value, nil
}

// Set stores the credential, replacing any existing value.
func (s *Store) Set(value string) error {
	if err := keyring.Set(service, account, value); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// Delete removes the credential. Deleting a missing credential is a
// no-op.
func (s *Store) Delete() error {
	if err := keyring.Delete(service, account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

var _ ports.SecretStore = (*Store)(nil)
