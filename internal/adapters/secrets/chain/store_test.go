package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/chargectl/internal/domain"
	portmocks "github.com/bnema/chargectl/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "token").Return("from-keyring", nil).Once()

	value, err := store.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "token").Return("", errors.New("dbus unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, "token").Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReportsNotFoundWhenBothBackendsMiss(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "token").Return("", fmt.Errorf("keyring: %w", domain.ErrSecretNotFound)).Once()
	fallback.EXPECT().Get(mock.Anything, "token").Return("", fmt.Errorf("file: %w", domain.ErrSecretNotFound)).Once()

	_, err := store.Get(context.Background(), "token")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "token").Return("", errors.New("keyring failed")).Once()
	fallback.EXPECT().Get(mock.Anything, "token").Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), "token")
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "keyring failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, "token", "tok").Return(errors.New("keyring failed")).Once()
	fallback.EXPECT().Put(mock.Anything, "token", "tok").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), "token", "tok"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, "token", "tok").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), "token", "tok"))
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "token").Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, "token").Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), "token"))
}

func TestStoreDeleteStillClearsFallbackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "token").Return(errors.New("keyring locked")).Once()
	fallback.EXPECT().Delete(mock.Anything, "token").Return(nil).Once()

	err := store.Delete(context.Background(), "token")
	require.Error(t, err)
	assert.ErrorContains(t, err, "keyring locked")
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "token").Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), "token")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockSecretStore(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockSecretStore(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}
