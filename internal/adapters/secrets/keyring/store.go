package keyring

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/chargectl/internal/domain"
	"github.com/bnema/chargectl/internal/ports"
	gokeyring "github.com/zalando/go-keyring"
)

const DefaultService = "chargectl"

// Store keeps slots in the OS credential manager (Secret Service, macOS
// Keychain, Windows Credential Manager) under a single service name.
type Store struct {
	service string
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(service string) *Store {
	if service == "" {
		service = DefaultService
	}
	return &Store{service: service}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := gokeyring.Set(s.service, key, value); err != nil {
		return fmt.Errorf("keyring put %q: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	value, err := gokeyring.Get(s.service, key)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", fmt.Errorf("keyring get %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("keyring get %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := gokeyring.Delete(s.service, key); err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("keyring delete %q: %w", key, err)
	}
	return nil
}
