package ports

import (
	"context"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// SessionRepository is a key-value store of sessions keyed by token.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// Find returns (nil, nil) when the token is unknown.
	Find(ctx context.Context, token string) (*domain.Session, error)
	// Delete is idempotent.
	Delete(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID int64) error
}
