package domain

import "time"

// JobStatus is the publication state of a job posting.
type JobStatus string

const (
	JobStatusDraft  JobStatus = "DRAFT"
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
)

// JobType describes the engagement offered by a posting.
type JobType string

const (
	JobTypeFullTime       JobType = "FULL_TIME"
	JobTypePartTime       JobType = "PART_TIME"
	JobTypeContract       JobType = "CONTRACT"
	JobTypeInternship     JobType = "INTERNSHIP"
	JobTypeApprenticeship JobType = "APPRENTICESHIP"
)

// Job is a posting owned by an employer profile.
type Job struct {
	ID                int64     `json:"id"`
	EmployerProfileID int64     `json:"employer_profile_id"`
	EmployerUserID    int64     `json:"-"`
	CompanyName       string    `json:"company_name"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	JobType           JobType   `json:"job_type"`
	Status            JobStatus `json:"status"`
	SalaryMin         *int64    `json:"salary_min,omitempty"`
	SalaryMax         *int64    `json:"salary_max,omitempty"`
	SkillIDs          []int64   `json:"skill_ids"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// OwnedBy reports whether userID owns the job through its employer profile.
func (j *Job) OwnedBy(userID int64) bool {
	return j != nil && j.EmployerUserID == userID
}

// Skill is an entry of the skill taxonomy.
type Skill struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
