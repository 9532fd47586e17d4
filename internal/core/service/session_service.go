package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/salone-skillshub/skillshub/internal/api/metrics"
	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const (
	// DefaultSessionTTL applies when no TTL is configured.
	DefaultSessionTTL = 7 * 24 * time.Hour
	tokenBytes        = 32
)

// SessionService resolves, creates and destroys sessions.
type SessionService struct {
	sessions ports.SessionRepository
	users    ports.UserRepository
	ttl      time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewSessionService returns a SessionService. A non-positive ttl falls back
// to DefaultSessionTTL.
func NewSessionService(sessions ports.SessionRepository, users ports.UserRepository, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		sessions: sessions,
		users:    users,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// ResolveSession maps token to the owning identity. A missing, unknown or
// expired token yields (nil, nil); only store failures are errors.
func (s *SessionService) ResolveSession(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.Find(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if !session.ValidAt(s.now()) {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			// the account is gone; the token is no longer backed by anyone
			return nil, nil
		}
		return nil, fmt.Errorf("resolve session user: %w", err)
	}
	return domain.IdentityOf(user), nil
}

// CreateSession issues a new random token for userID.
func (s *SessionService) CreateSession(ctx context.Context, userID int64) (string, time.Time, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}

	now := s.now().UTC()
	session := &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}

	metrics.SessionsCreatedTotal.Inc()
	s.log.Debug().Int64("user_id", userID).Time("expires_at", session.ExpiresAt).Msg("session created")
	return token, session.ExpiresAt, nil
}

// DestroySession removes the session for token. Unknown tokens are ignored.
func (s *SessionService) DestroySession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// DestroyAllSessions removes every session of userID.
func (s *SessionService) DestroyAllSessions(ctx context.Context, userID int64) error {
	if err := s.sessions.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("destroy sessions: %w", err)
	}
	return nil
}

// newSessionToken returns 256 bits from crypto/rand, base64url encoded.
func newSessionToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

var _ ports.SessionAuthenticator = (*SessionService)(nil)
