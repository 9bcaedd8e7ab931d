package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/ledger"
	"github.com/Munazil1/centswise/internal/logger"
	"github.com/Munazil1/centswise/internal/remote"
	"github.com/Munazil1/centswise/internal/session"
)

// AuthRemote is the part of the ledger service that deals with accounts.
type AuthRemote interface {
	Login(ctx context.Context, username, password string) (remote.LoginResult, error)
	CurrentUser(ctx context.Context) (domain.User, error)
	ChangePassword(ctx context.Context, current, next string) (string, error)
}

// StoreFactory builds the ledger store for a new session.
type StoreFactory func() *ledger.Store

type authService struct {
	remote   AuthRemote
	session  *session.Session
	newStore StoreFactory

	mu    sync.Mutex
	store *ledger.Store
}

// NewAuthService ties the lifetime of a ledger store to the login session: a
// store is created on login or resume and closed on logout.
func NewAuthService(r AuthRemote, sess *session.Session, newStore StoreFactory) AuthService {
	return &authService{
		remote:   r,
		session:  sess,
		newStore: newStore,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (domain.User, error) {
	logger.EnterMethod("authService.Login", "username", username)
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, invalid("username", "is required")
	}
	if password == "" {
		return domain.User{}, invalid("password", "is required")
	}

	res, err := s.remote.Login(ctx, username, password)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "username", username)
		return domain.User{}, fmt.Errorf("login: %w", err)
	}
	if err := s.session.Set(ctx, res.AccessToken); err != nil {
		logger.ExitMethodWithError("authService.Login", err, "username", username)
		return domain.User{}, err
	}
	s.startStore(ctx)

	logger.ExitMethod("authService.Login", "username", username, "userID", res.User.ID)
	return res.User, nil
}

// Logout lets outstanding remote writes finish, closes the store and forgets
// the token.
func (s *authService) Logout(ctx context.Context) error {
	s.mu.Lock()
	st := s.store
	s.store = nil
	s.mu.Unlock()

	if st != nil {
		if err := st.Drain(ctx); err != nil {
			logger.Warn("Logout before remote writes finished", "error", err)
		}
		_ = st.Close()
	}
	if err := s.session.Clear(ctx); err != nil {
		return err
	}
	logger.Info("Session ended")
	return nil
}

// Resume restores a persisted token and, when it is still valid, starts a
// store for it. It reports whether a session is active afterwards.
func (s *authService) Resume(ctx context.Context) (bool, error) {
	if err := s.session.Restore(ctx); err != nil {
		return false, err
	}
	if !s.session.Authenticated() {
		return false, nil
	}
	s.startStore(ctx)
	logger.Info("Session resumed")
	return true, nil
}

func (s *authService) CurrentUser(ctx context.Context) (domain.User, error) {
	if !s.session.Authenticated() {
		return domain.User{}, ErrNotAuthenticated
	}
	u, err := s.remote.CurrentUser(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("current user: %w", err)
	}
	return u, nil
}

func (s *authService) ChangePassword(ctx context.Context, current, next string) (string, error) {
	if !s.session.Authenticated() {
		return "", ErrNotAuthenticated
	}
	if current == "" {
		return "", invalid("currentPassword", "is required")
	}
	if next == "" {
		return "", invalid("newPassword", "is required")
	}
	msg, err := s.remote.ChangePassword(ctx, current, next)
	if err != nil {
		return "", fmt.Errorf("change password: %w", err)
	}
	return msg, nil
}

func (s *authService) Authenticated() bool {
	s.mu.Lock()
	active := s.store != nil
	s.mu.Unlock()
	return active && s.session.Authenticated()
}

func (s *authService) Ledger() (*ledger.Store, error) {
	s.mu.Lock()
	st := s.store
	s.mu.Unlock()
	if st == nil || !s.session.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return st, nil
}

// Close shuts the store down without ending the session, so the token
// survives a restart.
func (s *authService) Close() error {
	s.mu.Lock()
	st := s.store
	s.store = nil
	s.mu.Unlock()
	if st == nil {
		return nil
	}
	return st.Close()
}

// startStore activates a fresh store and swaps it in, closing any previous
// one.
func (s *authService) startStore(ctx context.Context) {
	st := s.newStore()
	st.Activate(ctx)

	s.mu.Lock()
	prev := s.store
	s.store = st
	s.mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
}
