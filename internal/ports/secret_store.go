package ports

import "context"

// SecretStore is a durable key/value slot. Get reports a missing key with an
// error wrapping domain.ErrSecretNotFound; Delete of a missing key succeeds.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
