package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/chargectl/internal/domain"
	"github.com/bnema/chargectl/internal/ports"
	"github.com/rs/zerolog"
)

var (
	errEmptyProfile    = errors.New("profile response is empty")
	errSessionReplaced = errors.New("session was replaced while the token was being persisted")
)

// SessionService owns the access token, the signed-in user's profile and the
// durable slot the token is persisted in. Construct it, call RestoreToken,
// then hand it to the Guard.
type SessionService struct {
	api     ports.AuthAPI
	store   ports.SecretStore
	slotKey string
	clock   ports.Clock
	logger  zerolog.Logger

	// writeMu orders durable writes. mu only guards in-memory state and is
	// never held across storage or network I/O.
	writeMu sync.Mutex

	mu         sync.RWMutex
	session    domain.Session
	generation uint64
}

func NewSessionService(api ports.AuthAPI, store ports.SecretStore, slotKey string, clock ports.Clock, logger zerolog.Logger) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{
		api:     api,
		store:   store,
		slotKey: slotKey,
		clock:   clock,
		logger:  logger.With().Str("component", "session").Logger(),
	}
}

// Login exchanges credentials for a token, persists it and loads the
// profile. A profile failure rolls the login back and returns
// ErrProfileFetchFailed.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	grant, err := s.api.PasswordGrant(ctx, domain.Credentials{Username: username, Password: password})
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("login rejected")
		return fmt.Errorf("%w: %w", domain.ErrLoginRejected, err)
	}

	if err := s.adoptToken(ctx, grant.AccessToken); err != nil {
		return err
	}

	if err := s.FetchUser(ctx); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("signed in")
	return nil
}

// adoptToken persists token, then makes it current unless a sign-out or
// another sign-in happened while the write was in flight.
func (s *SessionService) adoptToken(ctx context.Context, token string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	generation := s.currentGeneration()

	if err := s.store.Put(ctx, s.slotKey, token); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		s.logger.Debug().Msg("token persisted after the session was replaced")
		return errSessionReplaced
	}
	s.session = domain.Session{Token: token}
	s.generation++
	return nil
}

// FetchUser refreshes the profile for the current token. Without a token it
// does nothing. Any failure signs the session out.
func (s *SessionService) FetchUser(ctx context.Context) error {
	token := s.currentToken()
	if token == "" {
		return nil
	}

	profile, err := s.api.FetchProfile(ctx, token)
	if err == nil && profile == nil {
		err = errEmptyProfile
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("profile fetch failed, signing out")
		if logoutErr := s.logoutIfCurrent(ctx, token); logoutErr != nil {
			return fmt.Errorf("%w: %w", domain.ErrProfileFetchFailed, errors.Join(err, logoutErr))
		}
		return fmt.Errorf("%w: %w", domain.ErrProfileFetchFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Token != token {
		s.logger.Debug().Msg("discarding profile for a replaced token")
		return nil
	}
	s.session.User = profile
	s.session.UserFetchedAt = s.clock.Now()
	return nil
}

// Logout clears the in-memory session, then erases the durable slot once any
// in-flight write has settled. Memory is always cleared; the error only
// reports a failed erase.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	generation := s.clearLocked()
	s.mu.Unlock()

	return s.eraseSlot(ctx, generation)
}

func (s *SessionService) logoutIfCurrent(ctx context.Context, token string) error {
	s.mu.Lock()
	if s.session.Token != token {
		s.mu.Unlock()
		return nil
	}
	generation := s.clearLocked()
	s.mu.Unlock()

	return s.eraseSlot(ctx, generation)
}

func (s *SessionService) clearLocked() uint64 {
	s.session = domain.Session{}
	s.generation++
	return s.generation
}

// eraseSlot deletes the persisted token unless the session changed again
// after the clear. Whoever changed it has already rewritten the slot.
func (s *SessionService) eraseSlot(ctx context.Context, generation uint64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.currentGeneration() != generation {
		s.logger.Debug().Msg("slot already rewritten, skipping erase")
		return nil
	}

	err := s.store.Delete(context.WithoutCancel(ctx), s.slotKey)
	if err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		s.logger.Error().Err(err).Msg("erase session token")
		return fmt.Errorf("erase session token: %w", err)
	}

	s.logger.Debug().Msg("session cleared")
	return nil
}

// RestoreToken seeds the session from the durable slot and loads the profile.
// An absent or blank slot leaves the session empty.
func (s *SessionService) RestoreToken(ctx context.Context) error {
	restored, err := s.readSlot(ctx)
	if err != nil || !restored {
		return err
	}

	if err := s.FetchUser(ctx); err != nil {
		return err
	}

	s.logger.Debug().Msg("session restored")
	return nil
}

func (s *SessionService) readSlot(ctx context.Context) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stored, err := s.store.Get(ctx, s.slotKey)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			s.logger.Debug().Msg("no stored session")
			return false, nil
		}
		return false, fmt.Errorf("read session token: %w", err)
	}

	token := strings.TrimSpace(stored)
	if token == "" {
		s.logger.Debug().Msg("stored session token is blank")
		return false, nil
	}

	s.mu.Lock()
	s.session = domain.Session{Token: token}
	s.generation++
	s.mu.Unlock()
	return true, nil
}

func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated()
}

func (s *SessionService) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAdmin()
}

// Session returns a deep copy callers may keep and modify.
func (s *SessionService) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.session
	snapshot.User = s.session.User.Clone()
	return snapshot
}

func (s *SessionService) currentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *SessionService) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
