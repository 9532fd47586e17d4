package ports

import (
	"context"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// ApplicationRepository defines persistence for job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	// FindByID loads the application joined with its job and employer owner.
	FindByID(ctx context.Context, id int64) (*domain.Application, error)
	// OwnerUserID resolves applications → jobs → employer_profiles and
	// returns the employer's user id.
	OwnerUserID(ctx context.Context, id int64) (int64, error)
	// UpdateStatus moves the status from `from` to `to` when the application
	// still belongs to a job owned by ownerUserID (0 skips the ownership
	// predicate). It returns ErrInvalidTransition when the stored status is no
	// longer `from`.
	UpdateStatus(ctx context.Context, id, ownerUserID int64, from, to domain.ApplicationStatus) error
	// Delete removes the application under the same ownership rule.
	Delete(ctx context.Context, id, ownerUserID int64) error
	ListBySeeker(ctx context.Context, seekerUserID int64) ([]*domain.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]*domain.Application, error)
}

// ApplicationEventRepository stores the status audit trail.
type ApplicationEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.ApplicationEvent) error
	ListEvents(ctx context.Context, applicationID int64) ([]domain.ApplicationEvent, error)
}
