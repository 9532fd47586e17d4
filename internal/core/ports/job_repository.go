package ports

import (
	"context"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// ListJobsFilter carries the query parameters for listing jobs.
type ListJobsFilter struct {
	Status         domain.JobStatus // empty = any status
	EmployerUserID int64            // 0 = all employers
	Search         string           // optional: partial match on title or description
	Location       string           // optional: partial match
	JobType        domain.JobType   // optional
	Page           int              // 1-based
	Limit          int
	// SkillIDs, when non-empty, keeps jobs requiring at least one of them.
	SkillIDs []int64
}

// JobUpdate holds the optional fields of a job patch.
type JobUpdate struct {
	Title       *string
	Description *string
	Location    *string
	JobType     *domain.JobType
	Status      *domain.JobStatus
	SalaryMin   *int64
	SalaryMax   *int64
	SkillIDs    []int64 // nil = unchanged
}

// JobRepository defines persistence for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id int64) (*domain.Job, error)
	// List returns a page of jobs newest first and the total count.
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, int64, error)
	// Update applies patch only when the job is owned by ownerUserID,
	// or unconditionally when ownerUserID is 0.
	Update(ctx context.Context, id, ownerUserID int64, patch JobUpdate) (*domain.Job, error)
	// Delete removes the job under the same ownership rule as Update.
	Delete(ctx context.Context, id, ownerUserID int64) error
	// OpenJobSkills returns the union of required skills across the employer's OPEN jobs.
	OpenJobSkills(ctx context.Context, employerUserID int64) ([]int64, error)
}
