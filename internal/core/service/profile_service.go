package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/matching"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const (
	skillsCacheKey = "skills"
	skillsCacheTTL = 10 * time.Minute
)

// ProfileService completes employer and seeker profiles.
type ProfileService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	skills   ports.SkillRepository
	cache    *cache.Cache
	log      zerolog.Logger
}

func NewProfileService(users ports.UserRepository, profiles ports.ProfileRepository, skills ports.SkillRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		users:    users,
		profiles: profiles,
		skills:   skills,
		cache:    cache.New(skillsCacheTTL, 2*skillsCacheTTL),
		log:      log,
	}
}

// SaveEmployer stores the employer profile and promotes a USER to EMPLOYER.
func (s *ProfileService) SaveEmployer(ctx context.Context, caller *domain.Identity, in ports.EmployerProfileInput) (*domain.EmployerProfile, error) {
	if !caller.HasRole(domain.RoleUser, domain.RoleEmployer) {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return nil, domain.Invalidf("company_name is required")
	}

	profile, err := s.profiles.UpsertEmployer(ctx, &domain.EmployerProfile{
		UserID:      caller.UserID,
		CompanyName: name,
		Industry:    strings.TrimSpace(in.Industry),
		Location:    strings.TrimSpace(in.Location),
		Website:     strings.TrimSpace(in.Website),
	})
	if err != nil {
		return nil, err
	}

	if caller.Role == domain.RoleUser {
		if err := s.users.UpdateRole(ctx, caller.UserID, domain.RoleEmployer); err != nil {
			return nil, err
		}
		s.log.Info().Int64("user_id", caller.UserID).Msg("user promoted to employer")
	}
	return profile, nil
}

// SaveSeeker stores the seeker profile with its skills and promotes a USER
// to JOB_SEEKER.
func (s *ProfileService) SaveSeeker(ctx context.Context, caller *domain.Identity, in ports.SeekerProfileInput) (*domain.SeekerProfile, error) {
	if !caller.HasRole(domain.RoleUser, domain.RoleJobSeeker) {
		return nil, domain.ErrForbidden
	}
	switch in.Pathway {
	case domain.PathwayStudent, domain.PathwayGraduate, domain.PathwayArtisan:
	default:
		return nil, domain.Invalidf("pathway must be one of: STUDENT GRADUATE ARTISAN")
	}

	skillIDs := matching.NewSkillSet(in.SkillIDs...).Slice()
	if err := s.ensureSkillsExist(ctx, skillIDs); err != nil {
		return nil, err
	}

	profile, err := s.profiles.UpsertSeeker(ctx, &domain.SeekerProfile{
		UserID:    caller.UserID,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Headline:  plainText(in.Headline),
		Bio:       plainText(in.Bio),
		Location:  strings.TrimSpace(in.Location),
		Pathway:   in.Pathway,
		SkillIDs:  skillIDs,
	})
	if err != nil {
		return nil, err
	}

	if caller.Role == domain.RoleUser {
		if err := s.users.UpdateRole(ctx, caller.UserID, domain.RoleJobSeeker); err != nil {
			return nil, err
		}
		s.log.Info().Int64("user_id", caller.UserID).Msg("user promoted to job seeker")
	}
	return profile, nil
}

// Skills returns the taxonomy, served from an in-process cache.
func (s *ProfileService) Skills(ctx context.Context) ([]domain.Skill, error) {
	if cached, ok := s.cache.Get(skillsCacheKey); ok {
		return cached.([]domain.Skill), nil
	}
	skills, err := s.skills.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	s.cache.SetDefault(skillsCacheKey, skills)
	return skills, nil
}

// ensureSkillsExist rejects references to unknown skill ids.
func (s *ProfileService) ensureSkillsExist(ctx context.Context, ids []int64) error {
	return checkSkills(ctx, s.skills, ids)
}

func checkSkills(ctx context.Context, repo ports.SkillRepository, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	n, err := repo.CountExisting(ctx, ids)
	if err != nil {
		return fmt.Errorf("check skills: %w", err)
	}
	if n != len(ids) {
		return domain.Invalidf("skill_ids references unknown skills")
	}
	return nil
}
