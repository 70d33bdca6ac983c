package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/chargectl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutUsesPassInsertUnderPrefix(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		prefix: "chargectl",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", "chargectl/token"}, args)
			assert.Equal(t, "tok-123\n", input)
			return "", "", nil
		},
	}

	require.NoError(t, store.Put(context.Background(), "token", "tok-123"))
	assert.True(t, called)
}

func TestStoreGetTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		prefix: "chargectl",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "chargectl/token"}, args)
			assert.Empty(t, input)
			return "tok-123\r\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", value)
}

func TestStoreGetMapsMissingEntryToSecretNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		prefix: "chargectl",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: chargectl/token is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "token")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		prefix: "chargectl",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed: No secret key", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), "token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "chargectl/token")
	assert.ErrorContains(t, err, "decryption failed")
}

func TestStoreDeleteIgnoresMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		prefix: "chargectl",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", "chargectl/token"}, args)
			return "", "Error: chargectl/token is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), "token"))
}

func TestNewStoreDefaultsPrefix(t *testing.T) {
	t.Parallel()

	store := NewStore("  ")
	assert.Equal(t, "chargectl/token", store.entry("token"))
}
