package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lcrowe/marquee/internal/domain"
)

// Service holds the current session. It is constructed and injected
// where needed rather than living as process-wide state; the catalog
// controller reads it only to decide whether admin actions are exposed.
type Service struct {
	repo   domain.AuthRepository
	logger *slog.Logger

	mu      sync.RWMutex
	session *domain.Session
}

// NewService creates an auth service with no active session
func NewService(repo domain.AuthRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Login exchanges credentials for a session
func (s *Service) Login(ctx context.Context, email, password string) error {
	session, err := s.repo.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("login failed", "email", email, "error", err)
		return err
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	s.propagateToken(session.Token)

	s.logger.Info("logged in", "user", session.User.Name, "role", session.User.Role)
	return nil
}

// Restore validates a saved token and reinstates its session
func (s *Service) Restore(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrAuthFailed
	}

	user, err := s.repo.CurrentUser(ctx, token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.session = &domain.Session{Token: token, User: *user}
	s.mu.Unlock()
	s.propagateToken(token)

	s.logger.Info("session restored", "user", user.Name)
	return nil
}

// Logout drops the current session
func (s *Service) Logout() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	s.propagateToken("")
	s.logger.Info("logged out")
}

// propagateToken pushes the session token into the repo when it carries
// one, so subsequent backend requests authenticate as the session user
func (s *Service) propagateToken(token string) {
	if sink, ok := s.repo.(interface{ SetToken(string) }); ok {
		sink.SetToken(token)
	}
}

// IsAuthenticated reports whether a session is active
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// CurrentUser returns the logged-in user, if any
func (s *Service) CurrentUser() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return domain.User{}, false
	}
	return s.session.User, true
}

// IsAdmin reports whether the current user may see admin views
func (s *Service) IsAdmin() bool {
	user, ok := s.CurrentUser()
	return ok && user.IsAdmin()
}

// Token returns the active session token, or "" when logged out
func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}
