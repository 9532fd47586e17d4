package ports

import (
	"context"
	"time"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/matching"
)

// CreateJobInput carries the fields of a new posting.
type CreateJobInput struct {
	Title       string
	Description string
	Location    string
	JobType     domain.JobType
	Status      domain.JobStatus
	SalaryMin   *int64
	SalaryMax   *int64
	SkillIDs    []int64
}

// ListJobsInput carries the public listing parameters.
type ListJobsInput struct {
	Search   string
	Location string
	JobType  domain.JobType
	Page     int
	Limit    int
}

// ListJobsResult is returned by List.
type ListJobsResult struct {
	Items      []*domain.Job
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// JobService defines use-case operations for job postings.
type JobService interface {
	Create(ctx context.Context, caller *domain.Identity, input CreateJobInput) (*domain.Job, error)
	// Get returns OPEN jobs to anyone; other statuses only to the owner or an admin.
	Get(ctx context.Context, caller *domain.Identity, id int64) (*domain.Job, error)
	List(ctx context.Context, input ListJobsInput) (*ListJobsResult, error)
	// ListMine pages through the caller's own jobs in every status.
	ListMine(ctx context.Context, caller *domain.Identity, page, limit int) (*ListJobsResult, error)
	Update(ctx context.Context, caller *domain.Identity, id int64, patch JobUpdate) (*domain.Job, error)
	Delete(ctx context.Context, caller *domain.Identity, id int64) error
}

// JobMatch is a job with its optional score for the calling seeker.
type JobMatch struct {
	Job   *domain.Job
	Score *int
}

func (m JobMatch) MatchScore() int    { return derefScore(m.Score) }
func (m JobMatch) Created() time.Time { return m.Job.CreatedAt }

// TalentMatch is a seeker profile with its optional score for the calling employer.
type TalentMatch struct {
	Profile *domain.SeekerProfile
	Score   *int
}

func (m TalentMatch) MatchScore() int    { return derefScore(m.Score) }
func (m TalentMatch) Created() time.Time { return m.Profile.CreatedAt }

func derefScore(s *int) int {
	if s == nil {
		return 0
	}
	return *s
}

// RecommendInput controls job recommendations.
type RecommendInput struct {
	Options matching.Options
	Limit   int
}

// TalentInput controls talent browsing.
type TalentInput struct {
	Options matching.Options
	Pathway domain.Pathway
	// SkillIDs overrides the wanted set derived from the employer's open jobs.
	SkillIDs []int64
	Limit    int
}

// MatchService ranks jobs for seekers and talent for employers.
type MatchService interface {
	RecommendJobs(ctx context.Context, caller *domain.Identity, input RecommendInput) ([]JobMatch, error)
	BrowseTalent(ctx context.Context, caller *domain.Identity, input TalentInput) ([]TalentMatch, error)
}
