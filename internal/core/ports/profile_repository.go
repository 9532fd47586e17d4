package ports

import (
	"context"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// ProfileRepository persists employer and seeker profiles.
type ProfileRepository interface {
	// UpsertEmployer creates or updates the employer profile of profile.UserID.
	UpsertEmployer(ctx context.Context, profile *domain.EmployerProfile) (*domain.EmployerProfile, error)
	FindEmployerByUserID(ctx context.Context, userID int64) (*domain.EmployerProfile, error)
	SetEmployerLogo(ctx context.Context, userID int64, key string) error

	// UpsertSeeker creates or updates the seeker profile and replaces its skills.
	UpsertSeeker(ctx context.Context, profile *domain.SeekerProfile) (*domain.SeekerProfile, error)
	FindSeekerByUserID(ctx context.Context, userID int64) (*domain.SeekerProfile, error)
	SetSeekerResume(ctx context.Context, userID int64, key string) error
	// ListSeekers returns seeker profiles newest first.
	ListSeekers(ctx context.Context, filter TalentFilter) ([]*domain.SeekerProfile, error)

	AddPortfolioItem(ctx context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error)
	ListPortfolio(ctx context.Context, seekerProfileID int64) ([]*domain.PortfolioItem, error)
	// DeletePortfolioItem deletes the item only when it belongs to ownerUserID.
	// It returns the removed item so its object can be deleted.
	DeletePortfolioItem(ctx context.Context, id, ownerUserID int64) (*domain.PortfolioItem, error)
}

// TalentFilter narrows the seeker listing.
type TalentFilter struct {
	Pathway domain.Pathway // optional
	// SkillIDs, when non-empty, keeps seekers holding at least one of them.
	SkillIDs []int64
	Limit    int
	Offset   int
}
