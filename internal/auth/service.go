package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kutbudev/alarmclock/internal/crypto"
	"github.com/kutbudev/alarmclock/pkg/models"
	"github.com/kutbudev/alarmclock/pkg/repository"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown username or a
	// wrong password. The two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized is returned by Authenticate for a missing, unknown or
	// expired session token.
	ErrUnauthorized = errors.New("unauthorized")
)

// Service establishes and checks sessions.
type Service struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	ttl        time.Duration
	iterations int
	now        func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHashIterations sets the PBKDF2 iteration count for new passwords.
func WithHashIterations(n int) Option {
	return func(s *Service) { s.iterations = n }
}

func NewService(users repository.UserRepository, sessions repository.SessionRepository, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		users:      users,
		sessions:   sessions,
		ttl:        ttl,
		iterations: crypto.PBKDF2Iterations,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup creates the user and logs them in. A taken username surfaces as
// repository.ErrConflict.
func (s *Service) Signup(ctx context.Context, username, password string) (*models.User, *models.Session, error) {
	hash, err := crypto.HashPasswordWithIterations(password, s.iterations)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Username: strings.TrimSpace(username), PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}
	session, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login checks the credentials and opens a new session.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, *models.Session, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	ok, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, nil, fmt.Errorf("verify password for user %d: %w", user.ID, err)
	}
	if !ok {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Authenticate resolves a session token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now().UTC()) || session.User == nil {
		return nil, ErrUnauthorized
	}
	return session.User, nil
}

// Logout ends the session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// PruneExpired deletes every session past its expiry and returns how many
// were removed.
func (s *Service) PruneExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now().UTC())
}

func (s *Service) startSession(ctx context.Context, user *models.User) (*models.Session, error) {
	token, err := crypto.GenerateToken()
	if err != nil {
		return nil, err
	}
	session := &models.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().UTC().Add(s.ttl),
		User:      user,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
