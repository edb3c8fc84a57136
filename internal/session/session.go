// Package session owns the "who is logged in" state for the whole client:
// token persistence, login/register/logout, and the startup bootstrap.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
)

// Session is the single source of truth for the current user. All methods
// are safe for concurrent use.
type Session struct {
	client *api.Client
	tokens domain.TokenStore
	logger *slog.Logger

	mu            sync.RWMutex
	user          *domain.User
	bootstrapping bool
}

// New creates a Session. The client and the session share the same token
// store; the client's refresh path and this package are its only writers.
func New(client *api.Client, tokens domain.TokenStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{client: client, tokens: tokens, logger: logger}
}

// Bootstrap restores the session on startup. When a persisted access token
// exists it fetches the current user; any failure clears the tokens and
// leaves the client logged out without surfacing an error.
func (s *Session) Bootstrap(ctx context.Context) {
	access, _ := s.tokens.Tokens()
	if access == "" {
		return
	}

	s.mu.Lock()
	s.bootstrapping = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.bootstrapping = false
		s.mu.Unlock()
	}()

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("session bootstrap failed, starting logged out", "error", err)
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Error("failed to clear tokens", "error", clearErr)
		}
		return
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	s.logger.Info("session restored", "user", user.Email)
}

// Bootstrapping reports whether the startup user fetch is still running.
func (s *Session) Bootstrapping() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bootstrapping
}

// Login exchanges credentials for tokens, persists them, and fetches the
// current user. Backend rejections propagate with their message.
func (s *Session) Login(ctx context.Context, email, password string) error {
	pair, err := s.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	if err := s.tokens.Save(pair.AccessToken, pair.RefreshToken); err != nil {
		return err
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	s.logger.Info("logged in", "user", user.Email)
	return nil
}

// Register creates an account. The response carries both the user and an
// initial token pair, so no extra fetch is needed.
func (s *Session) Register(ctx context.Context, email, password, name string) error {
	resp, err := s.client.Register(ctx, api.RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return err
	}
	if err := s.tokens.Save(resp.Tokens.AccessToken, resp.Tokens.RefreshToken); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &resp.User
	s.mu.Unlock()
	s.logger.Info("registered", "user", resp.User.Email)
	return nil
}

// Logout tells the backend to blacklist the refresh token (best effort)
// and unconditionally clears local state.
func (s *Session) Logout(ctx context.Context) {
	_, refresh := s.tokens.Tokens()
	if refresh != "" {
		if err := s.client.Logout(ctx, refresh); err != nil {
			s.logger.Warn("server logout failed, clearing locally anyway", "error", err)
		}
	}
	if err := s.tokens.Clear(); err != nil {
		s.logger.Error("failed to clear tokens", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// Expire drops the in-memory user after the client terminated the session
// (tokens are already cleared by the refresh path).
func (s *Session) Expire() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *Session) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SetUser replaces the cached user, e.g. after a profile update.
func (s *Session) SetUser(user domain.User) {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// IsAuthenticated reports whether a user is present.
func (s *Session) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}
