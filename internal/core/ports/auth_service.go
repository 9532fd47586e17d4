package ports

import (
	"context"
	"time"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// SessionAuthenticator resolves session tokens to identities.
type SessionAuthenticator interface {
	// ResolveSession returns (nil, nil) for a missing, unknown or expired token.
	ResolveSession(ctx context.Context, token string) (*domain.Identity, error)
	CreateSession(ctx context.Context, userID int64) (token string, expiresAt time.Time, err error)
	DestroySession(ctx context.Context, token string) error
	DestroyAllSessions(ctx context.Context, userID int64) error
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}

// LoginResult is returned after successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Identity  *domain.Identity
}

// AuthService implements account registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Identity, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	LogoutAll(ctx context.Context, userID int64) error
	VerifyEmail(ctx context.Context, token string) error
}
