package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/matching"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// JobService implements job posting use cases.
type JobService struct {
	jobs     ports.JobRepository
	profiles ports.ProfileRepository
	skills   ports.SkillRepository
	log      zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, profiles ports.ProfileRepository, skills ports.SkillRepository, log zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, profiles: profiles, skills: skills, log: log}
}

// Create publishes a job for the calling employer.
func (s *JobService) Create(ctx context.Context, caller *domain.Identity, in ports.CreateJobInput) (*domain.Job, error) {
	if !caller.HasRole(domain.RoleEmployer) {
		return nil, domain.ErrForbidden
	}

	employer, err := s.profiles.FindEmployerByUserID(ctx, caller.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.Invalidf("employer profile must be completed before posting jobs")
		}
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.Invalidf("title is required")
	}
	if !validJobType(in.JobType) {
		return nil, domain.Invalidf("job_type must be one of: FULL_TIME PART_TIME CONTRACT INTERNSHIP APPRENTICESHIP")
	}
	status := in.Status
	if status == "" {
		status = domain.JobStatusOpen
	}
	if status != domain.JobStatusOpen && status != domain.JobStatusDraft {
		return nil, domain.Invalidf("status must be one of: OPEN DRAFT")
	}
	if err := checkSalary(in.SalaryMin, in.SalaryMax); err != nil {
		return nil, err
	}

	skillIDs := matching.NewSkillSet(in.SkillIDs...).Slice()
	if err := checkSkills(ctx, s.skills, skillIDs); err != nil {
		return nil, err
	}

	job, err := s.jobs.Create(ctx, &domain.Job{
		EmployerProfileID: employer.ID,
		EmployerUserID:    caller.UserID,
		CompanyName:       employer.CompanyName,
		Title:             title,
		Description:       richText(in.Description),
		Location:          strings.TrimSpace(in.Location),
		JobType:           in.JobType,
		Status:            status,
		SalaryMin:         in.SalaryMin,
		SalaryMax:         in.SalaryMax,
		SkillIDs:          skillIDs,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("job_id", job.ID).Int64("employer_user_id", caller.UserID).Msg("job created")
	return job, nil
}

// Get returns a job. Non-open jobs are only visible to their owner and admins.
func (s *JobService) Get(ctx context.Context, caller *domain.Identity, id int64) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusOpen && !canManageJob(caller, job) {
		return nil, domain.ErrJobNotFound
	}
	return job, nil
}

// List returns open jobs matching the public filters.
func (s *JobService) List(ctx context.Context, in ports.ListJobsInput) (*ports.ListJobsResult, error) {
	if in.JobType != "" && !validJobType(in.JobType) {
		return nil, domain.Invalidf("job_type must be one of: FULL_TIME PART_TIME CONTRACT INTERNSHIP APPRENTICESHIP")
	}
	page, limit := normalisePage(in.Page, in.Limit)

	items, total, err := s.jobs.List(ctx, ports.ListJobsFilter{
		Status:   domain.JobStatusOpen,
		Search:   strings.TrimSpace(in.Search),
		Location: strings.TrimSpace(in.Location),
		JobType:  in.JobType,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	return pageOf(items, total, page, limit), nil
}

// ListMine pages through the calling employer's jobs regardless of status.
func (s *JobService) ListMine(ctx context.Context, caller *domain.Identity, page, limit int) (*ports.ListJobsResult, error) {
	if !caller.HasRole(domain.RoleEmployer) {
		return nil, domain.ErrForbidden
	}
	page, limit = normalisePage(page, limit)
	items, total, err := s.jobs.List(ctx, ports.ListJobsFilter{
		EmployerUserID: caller.UserID,
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return nil, err
	}
	return pageOf(items, total, page, limit), nil
}

func pageOf(items []*domain.Job, total int64, page, limit int) *ports.ListJobsResult {
	return &ports.ListJobsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
}

// Update patches a job after re-checking ownership.
func (s *JobService) Update(ctx context.Context, caller *domain.Identity, id int64, patch ports.JobUpdate) (*domain.Job, error) {
	job, err := s.authorizeJob(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, domain.Invalidf("title must not be empty")
		}
		patch.Title = &t
	}
	if patch.Description != nil {
		d := richText(*patch.Description)
		patch.Description = &d
	}
	if patch.JobType != nil && !validJobType(*patch.JobType) {
		return nil, domain.Invalidf("job_type must be one of: FULL_TIME PART_TIME CONTRACT INTERNSHIP APPRENTICESHIP")
	}
	if patch.Status != nil {
		switch *patch.Status {
		case domain.JobStatusOpen, domain.JobStatusDraft, domain.JobStatusClosed:
		default:
			return nil, domain.Invalidf("status must be one of: OPEN DRAFT CLOSED")
		}
	}
	minSalary, maxSalary := job.SalaryMin, job.SalaryMax
	if patch.SalaryMin != nil {
		minSalary = patch.SalaryMin
	}
	if patch.SalaryMax != nil {
		maxSalary = patch.SalaryMax
	}
	if err := checkSalary(minSalary, maxSalary); err != nil {
		return nil, err
	}
	if patch.SkillIDs != nil {
		patch.SkillIDs = matching.NewSkillSet(patch.SkillIDs...).Slice()
		if err := checkSkills(ctx, s.skills, patch.SkillIDs); err != nil {
			return nil, err
		}
	}

	updated, err := s.jobs.Update(ctx, id, ownerScope(caller), patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("job_id", id).Int64("user_id", caller.UserID).Msg("job updated")
	return updated, nil
}

// Delete removes a job after re-checking ownership.
func (s *JobService) Delete(ctx context.Context, caller *domain.Identity, id int64) error {
	if _, err := s.authorizeJob(ctx, caller, id); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id, ownerScope(caller)); err != nil {
		return err
	}
	s.log.Info().Int64("job_id", id).Int64("user_id", caller.UserID).Msg("job deleted")
	return nil
}

// authorizeJob loads the job and verifies the caller may manage it.
func (s *JobService) authorizeJob(ctx context.Context, caller *domain.Identity, id int64) (*domain.Job, error) {
	if !caller.HasRole(domain.RoleEmployer, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageJob(caller, job) {
		return nil, domain.ErrForbidden
	}
	return job, nil
}

func canManageJob(caller *domain.Identity, job *domain.Job) bool {
	if caller == nil {
		return false
	}
	return caller.Role == domain.RoleAdmin || (caller.Role == domain.RoleEmployer && job.OwnedBy(caller.UserID))
}

// ownerScope is the owner predicate passed to repositories: admins act
// without one, everyone else is pinned to their own user id.
func ownerScope(caller *domain.Identity) int64 {
	if caller.Role == domain.RoleAdmin {
		return 0
	}
	return caller.UserID
}

func validJobType(t domain.JobType) bool {
	switch t {
	case domain.JobTypeFullTime, domain.JobTypePartTime, domain.JobTypeContract,
		domain.JobTypeInternship, domain.JobTypeApprenticeship:
		return true
	}
	return false
}

func checkSalary(minSalary, maxSalary *int64) error {
	if minSalary != nil && *minSalary < 0 || maxSalary != nil && *maxSalary < 0 {
		return domain.Invalidf("salary must not be negative")
	}
	if minSalary != nil && maxSalary != nil && *minSalary > *maxSalary {
		return domain.Invalidf("salary_min must not exceed salary_max")
	}
	return nil
}

func normalisePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

var _ ports.JobService = (*JobService)(nil)
