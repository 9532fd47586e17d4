package domain

import "time"

// Pathway classifies a seeker. It is a filter value only.
type Pathway string

const (
	PathwayStudent  Pathway = "STUDENT"
	PathwayGraduate Pathway = "GRADUATE"
	PathwayArtisan  Pathway = "ARTISAN"
)

// EmployerProfile holds company details for an employer account.
type EmployerProfile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CompanyName string    `json:"company_name"`
	Industry    string    `json:"industry,omitempty"`
	Location    string    `json:"location,omitempty"`
	Website     string    `json:"website,omitempty"`
	LogoKey     string    `json:"logo_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SeekerProfile holds a job seeker's public profile and skills.
type SeekerProfile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Headline  string    `json:"headline,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Location  string    `json:"location,omitempty"`
	Pathway   Pathway   `json:"pathway"`
	ResumeKey string    `json:"resume_key,omitempty"`
	SkillIDs  []int64   `json:"skill_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PortfolioItem is an uploaded work sample.
type PortfolioItem struct {
	ID              int64     `json:"id"`
	SeekerProfileID int64     `json:"seeker_profile_id"`
	Title           string    `json:"title"`
	ObjectKey       string    `json:"object_key"`
	ContentType     string    `json:"content_type"`
	CreatedAt       time.Time `json:"created_at"`
}
