package ports

import (
	"context"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// ApplyInput carries a new application.
type ApplyInput struct {
	JobID       int64
	CoverLetter string
	// IdempotencyKey, when set, rejects replays of the same submission.
	IdempotencyKey string
}

// ApplicationDetail is an application with its status history.
type ApplicationDetail struct {
	Application *domain.Application
	History     []domain.ApplicationEvent
}

// ApplicationService defines use-case operations for applications.
type ApplicationService interface {
	Apply(ctx context.Context, caller *domain.Identity, input ApplyInput) (*domain.Application, error)
	Get(ctx context.Context, caller *domain.Identity, id int64) (*ApplicationDetail, error)
	ListMine(ctx context.Context, caller *domain.Identity) ([]*domain.Application, error)
	ListForJob(ctx context.Context, caller *domain.Identity, jobID int64) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, caller *domain.Identity, id int64, status string) (*domain.Application, error)
	Delete(ctx context.Context, caller *domain.Identity, id int64) error
}
