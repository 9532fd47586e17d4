package ports

import (
	"context"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	MarkEmailVerified(ctx context.Context, id int64) error
}
