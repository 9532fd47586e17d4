package domain

import (
	"errors"
	"time"
)

// ApplicationStatus represents the lifecycle state of a job application.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "PENDING"
	ApplicationReviewed    ApplicationStatus = "REVIEWED"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationInterview   ApplicationStatus = "INTERVIEW"
	ApplicationAccepted    ApplicationStatus = "ACCEPTED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
)

// validTransitions defines the allowed review pipeline moves.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:     {ApplicationReviewed, ApplicationShortlisted, ApplicationRejected},
	ApplicationReviewed:    {ApplicationShortlisted, ApplicationInterview, ApplicationRejected},
	ApplicationShortlisted: {ApplicationInterview, ApplicationAccepted, ApplicationRejected},
	ApplicationInterview:   {ApplicationAccepted, ApplicationRejected},
}

var errUnknownStatus = errors.New("unknown application status")

// ParseApplicationStatus validates s against the known statuses.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case ApplicationPending, ApplicationReviewed, ApplicationShortlisted,
		ApplicationInterview, ApplicationAccepted, ApplicationRejected:
		return st, nil
	}
	return "", errUnknownStatus
}

// CanTransitionTo reports whether a move from s to next is allowed.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s ApplicationStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Application is a seeker's application to a job.
type Application struct {
	ID              int64             `json:"id"`
	JobID           int64             `json:"job_id"`
	JobTitle        string            `json:"job_title,omitempty"`
	SeekerProfileID int64             `json:"seeker_profile_id"`
	SeekerUserID    int64             `json:"seeker_user_id"`
	SeekerName      string            `json:"seeker_name,omitempty"`
	SeekerEmail     string            `json:"seeker_email,omitempty"`
	EmployerUserID  int64             `json:"-"`
	Status          ApplicationStatus `json:"status"`
	CoverLetter     string            `json:"cover_letter,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ApplicationEvent is an entry of the application audit trail.
type ApplicationEvent struct {
	ApplicationID int64             `json:"application_id"`
	From          ApplicationStatus `json:"from,omitempty"`
	To            ApplicationStatus `json:"to"`
	ActorUserID   int64             `json:"actor_user_id"`
	Timestamp     time.Time         `json:"timestamp"`
}
