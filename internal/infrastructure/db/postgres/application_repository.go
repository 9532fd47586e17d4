package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	pkgerrors "github.com/pkg/errors"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const (
	applicationColumns = `a.id, a.job_id, j.title, a.seeker_profile_id, sp.user_id,
		TRIM(sp.first_name || ' ' || sp.last_name), u.email, ep.user_id,
		a.status, a.cover_letter, a.created_at, a.updated_at`

	// applicationFrom is the ownership join: applications → jobs → employer_profiles.
	applicationFrom = `applications a
		JOIN jobs j               ON j.id = a.job_id
		JOIN employer_profiles ep ON ep.id = j.employer_profile_id
		JOIN seeker_profiles sp   ON sp.id = a.seeker_profile_id
		JOIN users u              ON u.id = sp.user_id`

	// ownedApplication restricts a statement on applications to jobs owned by $2; 0 disables it.
	ownedApplication = `($2::bigint = 0 OR job_id IN (
		SELECT oj.id FROM jobs oj JOIN employer_profiles oep ON oep.id = oj.employer_profile_id
		WHERE oep.user_id = $2))`
)

// ApplicationRepository implements ports.ApplicationRepository on Postgres.
type ApplicationRepository struct {
	db DB
}

func NewApplicationRepository(db DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	created := *app
	var status string
	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (job_id, seeker_profile_id, status, cover_letter)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, updated_at`,
		app.JobID, app.SeekerProfileID, string(app.Status), app.CoverLetter,
	).Scan(&created.ID, &status, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		switch pgCode(err) {
		case codeUniqueViolation:
			return nil, domain.ErrDuplicateApplication
		case codeForeignKeyViolation:
			return nil, domain.Invalidf("job_id references an unknown job")
		}
		return nil, pkgerrors.Wrap(err, "insert application")
	}
	created.Status = domain.ApplicationStatus(status)
	return &created, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM `+applicationFrom+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, pkgerrors.Wrap(err, "find application")
	}
	return app, nil
}

func (r *ApplicationRepository) OwnerUserID(ctx context.Context, id int64) (int64, error) {
	var owner int64
	err := r.db.QueryRow(ctx, `
		SELECT ep.user_id
		FROM applications a
		JOIN jobs j               ON j.id = a.job_id
		JOIN employer_profiles ep ON ep.id = j.employer_profile_id
		WHERE a.id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrApplicationNotFound
		}
		return 0, pkgerrors.Wrap(err, "resolve application owner")
	}
	return owner, nil
}

// UpdateStatus is a compare-and-set on the status column so concurrent
// employers cannot both move the application out of the same state.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id, ownerUserID int64, from, to domain.ApplicationStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $3, updated_at = now() WHERE id = $1 AND status = $4 AND `+ownedApplication,
		id, ownerUserID, string(to), string(from))
	if err != nil {
		return pkgerrors.Wrap(err, "update application status")
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var current string
	err = r.db.QueryRow(ctx, `SELECT status FROM applications WHERE id = $1 AND `+ownedApplication, id, ownerUserID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrApplicationNotFound
		}
		return pkgerrors.Wrap(err, "reload application status")
	}
	return pkgerrors.Wrapf(domain.ErrInvalidTransition, "status changed to %s", current)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id, ownerUserID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1 AND `+ownedApplication, id, ownerUserID)
	if err != nil {
		return pkgerrors.Wrap(err, "delete application")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepository) ListBySeeker(ctx context.Context, seekerUserID int64) ([]*domain.Application, error) {
	return r.list(ctx, `WHERE sp.user_id = $1`, seekerUserID)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]*domain.Application, error) {
	return r.list(ctx, `WHERE a.job_id = $1`, jobID)
}

func (r *ApplicationRepository) list(ctx context.Context, where string, arg int64) ([]*domain.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM `+applicationFrom+` `+where+` ORDER BY a.created_at DESC, a.id DESC`, arg)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list applications")
	}
	defer rows.Close()

	apps := []*domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "scan application")
		}
		apps = append(apps, app)
	}
	return apps, pkgerrors.Wrap(rows.Err(), "iterate applications")
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var (
		a      domain.Application
		status string
	)
	if err := row.Scan(&a.ID, &a.JobID, &a.JobTitle, &a.SeekerProfileID, &a.SeekerUserID,
		&a.SeekerName, &a.SeekerEmail, &a.EmployerUserID,
		&status, &a.CoverLetter, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Status = domain.ApplicationStatus(status)
	return &a, nil
}

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)
