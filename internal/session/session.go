// Package session holds the bearer token used for every ledger service call.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Munazil1/centswise/internal/security"
)

// TokenStore persists the token between process restarts. Load returns an
// empty string when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type Session struct {
	mu    sync.RWMutex
	token string
	store TokenStore
	now   func() time.Time
}

func New(store TokenStore) *Session {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	return &Session{store: store, now: time.Now}
}

// Restore reads a previously saved token into memory.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *Session) Set(ctx context.Context, token string) error {
	if err := s.store.Save(ctx, token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Clear forgets the token in memory even if the store fails.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports a non-empty token that has not expired. Only JWTs
// carry an expiry; any other token counts until the service rejects it.
func (s *Session) Authenticated() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	_, err := security.InspectToken(token, s.now())
	return !errors.Is(err, security.ErrExpiredToken)
}

func (s *Session) Claims() (*security.Claims, error) {
	return security.InspectToken(s.Token(), s.now())
}
