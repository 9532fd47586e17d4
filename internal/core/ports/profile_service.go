package ports

import (
	"context"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// EmployerProfileInput carries employer profile fields.
type EmployerProfileInput struct {
	CompanyName string
	Industry    string
	Location    string
	Website     string
}

// SeekerProfileInput carries seeker profile fields.
type SeekerProfileInput struct {
	FirstName string
	LastName  string
	Headline  string
	Bio       string
	Location  string
	Pathway   domain.Pathway
	SkillIDs  []int64
}

// ProfileService completes and updates role profiles.
type ProfileService interface {
	SaveEmployer(ctx context.Context, caller *domain.Identity, input EmployerProfileInput) (*domain.EmployerProfile, error)
	SaveSeeker(ctx context.Context, caller *domain.Identity, input SeekerProfileInput) (*domain.SeekerProfile, error)
	Skills(ctx context.Context) ([]domain.Skill, error)
}
