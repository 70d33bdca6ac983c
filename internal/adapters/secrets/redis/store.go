package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/chargectl/internal/domain"
	"github.com/bnema/chargectl/internal/ports"
	goredis "github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "chargectl"

var ErrUnavailable = errors.New("redis unavailable")

// Store keeps slots as plain string keys named prefix:key. Keys carry no
// expiry; the backend decides when a token stops being valid.
type Store struct {
	client *goredis.Client
	prefix string
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(client *goredis.Client, prefix string) *Store {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// NewStoreFromURL connects lazily; the first command reports an unreachable
// server.
func NewStoreFromURL(rawURL string, prefix string) (*Store, error) {
	opts, err := goredis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewStore(goredis.NewClient(opts), prefix), nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis put %q: %w: %w", key, ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", fmt.Errorf("redis get %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("redis get %q: %w: %w", key, ErrUnavailable, err)
	}
	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete %q: %w: %w", key, ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(key string) string {
	return s.prefix + ":" + strings.TrimSpace(key)
}
