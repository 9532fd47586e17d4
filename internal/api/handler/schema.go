package handler

import (
	"time"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email,max=254"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	Username  string `json:"username"   validate:"omitempty,max=50"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name"  validate:"omitempty,max=100"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User      *domain.Identity `json:"user"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// --- Profiles ---

type employerProfileRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=200"`
	Industry    string `json:"industry"     validate:"omitempty,max=100"`
	Location    string `json:"location"     validate:"omitempty,max=200"`
	Website     string `json:"website"      validate:"omitempty,url,max=500"`
}

type seekerProfileRequest struct {
	FirstName string  `json:"first_name" validate:"omitempty,max=100"`
	LastName  string  `json:"last_name"  validate:"omitempty,max=100"`
	Headline  string  `json:"headline"   validate:"omitempty,max=200"`
	Bio       string  `json:"bio"        validate:"omitempty,max=5000"`
	Location  string  `json:"location"   validate:"omitempty,max=200"`
	Pathway   string  `json:"pathway"    validate:"required,oneof=STUDENT GRADUATE ARTISAN"`
	SkillIDs  []int64 `json:"skill_ids"  validate:"max=50,dive,gt=0"`
}

// --- Jobs ---

type createJobRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description string  `json:"description" validate:"required,max=20000"`
	Location    string  `json:"location"    validate:"omitempty,max=200"`
	JobType     string  `json:"job_type"    validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP APPRENTICESHIP"`
	Status      string  `json:"status"      validate:"omitempty,oneof=OPEN DRAFT"`
	SalaryMin   *int64  `json:"salary_min"  validate:"omitempty,gte=0"`
	SalaryMax   *int64  `json:"salary_max"  validate:"omitempty,gte=0"`
	SkillIDs    []int64 `json:"skill_ids"   validate:"max=30,dive,gt=0"`
}

type updateJobRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=20000"`
	Location    *string `json:"location"    validate:"omitempty,max=200"`
	JobType     *string `json:"job_type"    validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP APPRENTICESHIP"`
	Status      *string `json:"status"      validate:"omitempty,oneof=OPEN DRAFT CLOSED"`
	SalaryMin   *int64  `json:"salary_min"  validate:"omitempty,gte=0"`
	SalaryMax   *int64  `json:"salary_max"  validate:"omitempty,gte=0"`
	SkillIDs    []int64 `json:"skill_ids"   validate:"omitempty,max=30,dive,gt=0"`
}

type listJobsQuery struct {
	Search   string `query:"q"        validate:"omitempty,max=200"`
	Location string `query:"location" validate:"omitempty,max=200"`
	JobType  string `query:"jobType"  validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP APPRENTICESHIP"`
	Page     int    `query:"page"     validate:"gte=0"`
	Limit    int    `query:"limit"    validate:"gte=0,max=100"`
}

type pageQuery struct {
	Page  int `query:"page"  validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0,max=100"`
}

type listJobsResponse struct {
	Items      []*domain.Job `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

// jobMatchResponse is a job with its optional match score.
type jobMatchResponse struct {
	*domain.Job
	MatchScore *int `json:"match_score,omitempty"`
}

// talentMatchResponse is a seeker profile with its optional match score.
type talentMatchResponse struct {
	*domain.SeekerProfile
	MatchScore *int `json:"match_score,omitempty"`
}

// --- Applications ---

type applyRequest struct {
	JobID       int64  `json:"job_id"       validate:"required,gt=0"`
	CoverLetter string `json:"cover_letter" validate:"omitempty,max=5000"`
}

type updateApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING REVIEWED SHORTLISTED INTERVIEW ACCEPTED REJECTED"`
}

type applicationDetailResponse struct {
	*domain.Application
	History []domain.ApplicationEvent `json:"history"`
}

// --- Messages ---

type sendMessageRequest struct {
	RecipientID   int64  `json:"recipient_id"   validate:"omitempty,gt=0"`
	ThreadID      string `json:"thread_id"      validate:"omitempty,max=64"`
	ApplicationID *int64 `json:"application_id" validate:"omitempty,gt=0"`
	Body          string `json:"body"           validate:"required,max=5000"`
}

type threadResponse struct {
	Thread   *domain.Thread    `json:"thread"`
	Messages []*domain.Message `json:"messages"`
}

type markReadResponse struct {
	Updated int64 `json:"updated"`
}

// --- Uploads ---

type uploadResponse struct {
	Key           string                `json:"key"`
	URL           string                `json:"url,omitempty"`
	PortfolioItem *domain.PortfolioItem `json:"portfolio_item,omitempty"`
}
