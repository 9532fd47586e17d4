package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/salone-skillshub/skillshub/internal/api/metrics"
	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const applicationDedupScope = "application"

// ApplicationService implements the application lifecycle.
type ApplicationService struct {
	apps     ports.ApplicationRepository
	events   ports.ApplicationEventRepository
	jobs     ports.JobRepository
	profiles ports.ProfileRepository
	users    ports.UserRepository
	dedup    ports.DedupChecker
	notifier ports.Notifier
	now      func() time.Time
	log      zerolog.Logger
}

func NewApplicationService(
	apps ports.ApplicationRepository,
	events ports.ApplicationEventRepository,
	jobs ports.JobRepository,
	profiles ports.ProfileRepository,
	users ports.UserRepository,
	dedup ports.DedupChecker,
	notifier ports.Notifier,
	log zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:     apps,
		events:   events,
		jobs:     jobs,
		profiles: profiles,
		users:    users,
		dedup:    dedup,
		notifier: notifier,
		now:      time.Now,
		log:      log,
	}
}

// Apply submits the caller's application to an open job.
func (s *ApplicationService) Apply(ctx context.Context, caller *domain.Identity, in ports.ApplyInput) (*domain.Application, error) {
	if !caller.HasRole(domain.RoleJobSeeker) {
		return nil, domain.ErrForbidden
	}

	scope := applicationDedupScope + ":" + strconv.FormatInt(caller.UserID, 10)
	if in.IdempotencyKey != "" {
		fresh, err := s.dedup.Claim(ctx, scope, in.IdempotencyKey)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Int64("user_id", caller.UserID).Msg("dedup check failed, processing anyway")
		case !fresh:
			metrics.DedupDecisionsTotal.WithLabelValues("application", "duplicate").Inc()
			return nil, domain.ErrDuplicateRequest
		default:
			metrics.DedupDecisionsTotal.WithLabelValues("application", "new").Inc()
		}
	}

	app, err := s.apply(ctx, caller, in)
	if err != nil && in.IdempotencyKey != "" {
		// let the client retry with the same key
		if relErr := s.dedup.Release(ctx, scope, in.IdempotencyKey); relErr != nil {
			s.log.Warn().Err(relErr).Int64("user_id", caller.UserID).Msg("failed to release dedup key")
		}
	}
	return app, err
}

func (s *ApplicationService) apply(ctx context.Context, caller *domain.Identity, in ports.ApplyInput) (*domain.Application, error) {
	seeker, err := s.profiles.FindSeekerByUserID(ctx, caller.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.Invalidf("seeker profile must be completed before applying")
		}
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.Invalidf("job_id references an unknown job")
		}
		return nil, err
	}
	if job.Status != domain.JobStatusOpen {
		return nil, domain.Invalidf("job is not accepting applications")
	}

	app, err := s.apps.Create(ctx, &domain.Application{
		JobID:           job.ID,
		SeekerProfileID: seeker.ID,
		SeekerUserID:    caller.UserID,
		Status:          domain.ApplicationPending,
		CoverLetter:     plainText(in.CoverLetter),
	})
	if err != nil {
		return nil, err
	}
	app.JobTitle = job.Title
	app.EmployerUserID = job.EmployerUserID

	s.recordEvent(ctx, &domain.ApplicationEvent{
		ApplicationID: app.ID,
		To:            domain.ApplicationPending,
		ActorUserID:   caller.UserID,
		Timestamp:     s.now().UTC(),
	})
	metrics.ApplicationsCreatedTotal.Inc()

	if employer, err := s.users.FindByID(ctx, job.EmployerUserID); err != nil {
		s.log.Warn().Err(err).Int64("job_id", job.ID).Msg("employer not notified")
	} else {
		s.notifier.Notify(domain.NewApplicationNotification(employer.Email, job.Title, caller.DisplayName()))
	}

	s.log.Info().Int64("application_id", app.ID).Int64("job_id", job.ID).Int64("user_id", caller.UserID).Msg("application submitted")
	return app, nil
}

// Get returns an application and its history to the applicant, the owning
// employer or an admin.
func (s *ApplicationService) Get(ctx context.Context, caller *domain.Identity, id int64) (*ports.ApplicationDetail, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case caller.HasRole(domain.RoleAdmin):
	case caller.HasRole(domain.RoleJobSeeker) && app.SeekerUserID == caller.UserID:
	case caller.HasRole(domain.RoleEmployer) && app.EmployerUserID == caller.UserID:
	default:
		return nil, domain.ErrForbidden
	}

	history, err := s.events.ListEvents(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Int64("application_id", id).Msg("application history unavailable")
		history = []domain.ApplicationEvent{}
	}
	return &ports.ApplicationDetail{Application: app, History: history}, nil
}

// ListMine returns the caller's own applications.
func (s *ApplicationService) ListMine(ctx context.Context, caller *domain.Identity) ([]*domain.Application, error) {
	if !caller.HasRole(domain.RoleJobSeeker) {
		return nil, domain.ErrForbidden
	}
	return s.apps.ListBySeeker(ctx, caller.UserID)
}

// ListForJob returns the applicants of a job owned by the caller.
func (s *ApplicationService) ListForJob(ctx context.Context, caller *domain.Identity, jobID int64) ([]*domain.Application, error) {
	if !caller.HasRole(domain.RoleEmployer, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !canManageJob(caller, job) {
		return nil, domain.ErrForbidden
	}
	return s.apps.ListByJob(ctx, jobID)
}

// UpdateStatus moves an application along the review pipeline. Ownership is
// resolved from storage on every call; a non-owner never reaches the write.
func (s *ApplicationService) UpdateStatus(ctx context.Context, caller *domain.Identity, id int64, status string) (*domain.Application, error) {
	if !caller.HasRole(domain.RoleEmployer, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	next, err := domain.ParseApplicationStatus(status)
	if err != nil {
		return nil, domain.Invalidf("status must be one of: PENDING REVIEWED SHORTLISTED INTERVIEW ACCEPTED REJECTED")
	}

	if err := s.authorizeOwner(ctx, caller, id); err != nil {
		return nil, err
	}

	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%s -> %s: %w", app.Status, next, domain.ErrInvalidTransition)
	}

	if err := s.apps.UpdateStatus(ctx, id, ownerScope(caller), app.Status, next); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	s.recordEvent(ctx, &domain.ApplicationEvent{
		ApplicationID: id,
		From:          app.Status,
		To:            next,
		ActorUserID:   caller.UserID,
		Timestamp:     now,
	})
	metrics.ApplicationStatusChangesTotal.WithLabelValues(string(next)).Inc()

	if app.SeekerEmail != "" {
		s.notifier.Notify(domain.StatusChangeNotification(app.SeekerEmail, app.JobTitle, next))
	}

	s.log.Info().
		Int64("application_id", id).
		Str("from", string(app.Status)).
		Str("to", string(next)).
		Int64("user_id", caller.UserID).
		Msg("application status updated")

	app.Status = next
	app.UpdatedAt = now
	return app, nil
}

// Delete removes an application owned by the caller's job.
func (s *ApplicationService) Delete(ctx context.Context, caller *domain.Identity, id int64) error {
	if !caller.HasRole(domain.RoleEmployer, domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	if err := s.authorizeOwner(ctx, caller, id); err != nil {
		return err
	}
	if err := s.apps.Delete(ctx, id, ownerScope(caller)); err != nil {
		return err
	}
	s.log.Info().Int64("application_id", id).Int64("user_id", caller.UserID).Msg("application deleted")
	return nil
}

// authorizeOwner resolves applications → jobs → employer_profiles and
// compares the owner with the caller.
func (s *ApplicationService) authorizeOwner(ctx context.Context, caller *domain.Identity, id int64) error {
	owner, err := s.apps.OwnerUserID(ctx, id)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin && owner != caller.UserID {
		s.log.Warn().Int64("application_id", id).Int64("user_id", caller.UserID).Msg("ownership check failed")
		return domain.ErrForbidden
	}
	return nil
}

// recordEvent appends to the audit trail. Failures are logged only.
func (s *ApplicationService) recordEvent(ctx context.Context, ev *domain.ApplicationEvent) {
	if err := s.events.InsertEvent(ctx, ev); err != nil {
		s.log.Warn().Err(err).Int64("application_id", ev.ApplicationID).Msg("failed to record application event")
	}
}

var _ ports.ApplicationService = (*ApplicationService)(nil)
