package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/salone-skillshub/skillshub/internal/api/metrics"
	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/matching"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

// candidatePage is how many rows are pulled per round trip while collecting
// candidates. Every candidate is scored before ranking.
const candidatePage = 500

// MatchService ranks open jobs for seekers and seeker profiles for employers.
type MatchService struct {
	jobs     ports.JobRepository
	profiles ports.ProfileRepository
	skills   ports.SkillRepository
	log      zerolog.Logger
}

func NewMatchService(jobs ports.JobRepository, profiles ports.ProfileRepository, skills ports.SkillRepository, log zerolog.Logger) *MatchService {
	return &MatchService{jobs: jobs, profiles: profiles, skills: skills, log: log}
}

// RecommendJobs scores every open job against the caller's skills using the
// seeker-facing formula.
func (s *MatchService) RecommendJobs(ctx context.Context, caller *domain.Identity, in ports.RecommendInput) ([]ports.JobMatch, error) {
	if !caller.HasRole(domain.RoleJobSeeker) {
		return nil, domain.ErrForbidden
	}
	seeker, err := s.profiles.FindSeekerByUserID(ctx, caller.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.Invalidf("seeker profile must be completed before requesting recommendations")
		}
		return nil, err
	}

	possessed := matching.NewSkillSet(seeker.SkillIDs...)
	filter := ports.ListJobsFilter{Status: domain.JobStatusOpen}
	if in.Options.SkillFilter {
		if possessed.Len() == 0 {
			return []ports.JobMatch{}, nil
		}
		filter.SkillIDs = possessed.Slice()
	}
	jobs, err := s.openJobs(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]ports.JobMatch, 0, len(jobs))
	for _, job := range jobs {
		wanted := matching.NewSkillSet(job.SkillIDs...)
		if in.Options.SkillFilter && matching.Overlap(wanted, possessed) == 0 {
			continue
		}
		m := ports.JobMatch{Job: job}
		if in.Options.UseMatching {
			score := matching.SeekerJobScore(wanted, possessed)
			metrics.MatchScores.WithLabelValues("job").Observe(float64(score))
			m.Score = &score
		}
		out = append(out, m)
	}

	if in.Options.UseMatching {
		matching.Rank(out)
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Created().After(out[j].Created()) })
	}
	return truncate(out, in.Limit), nil
}

// BrowseTalent scores seeker profiles against the skills the caller is hiring
// for using the employer-facing formula. Pathway only filters.
func (s *MatchService) BrowseTalent(ctx context.Context, caller *domain.Identity, in ports.TalentInput) ([]ports.TalentMatch, error) {
	if !caller.HasRole(domain.RoleEmployer, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if in.Pathway != "" {
		switch in.Pathway {
		case domain.PathwayStudent, domain.PathwayGraduate, domain.PathwayArtisan:
		default:
			return nil, domain.Invalidf("pathway must be one of: STUDENT GRADUATE ARTISAN")
		}
	}

	var wantedIDs []int64
	if len(in.SkillIDs) > 0 {
		wantedIDs = matching.NewSkillSet(in.SkillIDs...).Slice()
		if err := checkSkills(ctx, s.skills, wantedIDs); err != nil {
			return nil, err
		}
	} else {
		ids, err := s.jobs.OpenJobSkills(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
		wantedIDs = ids
	}
	wanted := matching.NewSkillSet(wantedIDs...)

	filter := ports.TalentFilter{Pathway: in.Pathway}
	if in.Options.SkillFilter {
		if wanted.Len() == 0 {
			// nothing to overlap with
			return []ports.TalentMatch{}, nil
		}
		filter.SkillIDs = wanted.Slice()
	}
	profiles, err := s.seekers(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]ports.TalentMatch, 0, len(profiles))
	for _, p := range profiles {
		possessed := matching.NewSkillSet(p.SkillIDs...)
		if in.Options.SkillFilter && matching.Overlap(wanted, possessed) == 0 {
			continue
		}
		m := ports.TalentMatch{Profile: p}
		if in.Options.UseMatching {
			score := matching.EmployerTalentScore(wanted, possessed)
			metrics.MatchScores.WithLabelValues("talent").Observe(float64(score))
			m.Score = &score
		}
		out = append(out, m)
	}

	if in.Options.UseMatching {
		matching.Rank(out)
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Created().After(out[j].Created()) })
	}

	s.log.Debug().Int64("user_id", caller.UserID).Int("wanted", wanted.Len()).Int("results", len(out)).Msg("talent browsed")
	return truncate(out, in.Limit), nil
}

// openJobs collects every job matching filter, page by page.
func (s *MatchService) openJobs(ctx context.Context, filter ports.ListJobsFilter) ([]*domain.Job, error) {
	filter.Limit = candidatePage
	var all []*domain.Job
	for page := 1; ; page++ {
		filter.Page = page
		batch, total, err := s.jobs.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < candidatePage || int64(len(all)) >= total {
			return all, nil
		}
	}
}

// seekers collects every seeker profile matching filter, page by page.
func (s *MatchService) seekers(ctx context.Context, filter ports.TalentFilter) ([]*domain.SeekerProfile, error) {
	filter.Limit = candidatePage
	var all []*domain.SeekerProfile
	for {
		filter.Offset = len(all)
		batch, err := s.profiles.ListSeekers(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < candidatePage {
			return all, nil
		}
	}
}

func truncate[T any](items []T, limit int) []T {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

var _ ports.MatchService = (*MatchService)(nil)
