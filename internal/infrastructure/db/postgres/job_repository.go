package postgres

import (
	"context"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	pkgerrors "github.com/pkg/errors"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const (
	jobColumns = `j.id, j.employer_profile_id, ep.user_id, ep.company_name, j.title, j.description, j.location, j.job_type, j.status, j.salary_min, j.salary_max, j.created_at, j.updated_at`
	jobSkills  = `COALESCE((SELECT array_agg(js.skill_id ORDER BY js.skill_id) FROM job_skills js WHERE js.job_id = j.id), '{}') AS skill_ids`
	jobFrom    = `jobs j JOIN employer_profiles ep ON ep.id = j.employer_profile_id`

	// ownedJob restricts a statement on jobs to the owner in $2; 0 disables it.
	ownedJob = `($2::bigint = 0 OR employer_profile_id IN (SELECT id FROM employer_profiles WHERE user_id = $2))`
)

// JobRepository implements ports.JobRepository on Postgres.
type JobRepository struct {
	db DB
}

func NewJobRepository(db DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	created := *job
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO jobs (employer_profile_id, title, description, location, job_type, status, salary_min, salary_max)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at`,
			job.EmployerProfileID, job.Title, job.Description, job.Location,
			string(job.JobType), string(job.Status), job.SalaryMin, job.SalaryMax,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return pkgerrors.Wrap(err, "insert job")
		}
		return replaceLinks(ctx, tx, "job_skills", "job_id", created.ID, job.SkillIDs)
	})
	if err != nil {
		return nil, err
	}
	created.SkillIDs = nonNilIDs(job.SkillIDs)
	return &created, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+`, `+jobSkills+` FROM `+jobFrom+` WHERE j.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, pkgerrors.Wrap(err, "find job")
	}
	return job, nil
}

// List returns a page of jobs newest first together with the total count.
func (r *JobRepository) List(ctx context.Context, filter ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	countQuery, countArgs, err := applyJobFilter(psql.Select("count(*)").From(jobFrom), filter).ToSql()
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "build job count")
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, pkgerrors.Wrap(err, "count jobs")
	}
	if total == 0 {
		return []*domain.Job{}, 0, nil
	}

	q := applyJobFilter(psql.Select(jobColumns, jobSkills).From(jobFrom), filter).
		OrderBy("j.created_at DESC", "j.id DESC")
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		q = q.Limit(uint64(filter.Limit)).Offset(uint64((page - 1) * filter.Limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "build job list")
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "list jobs")
	}
	defer rows.Close()

	jobs := []*domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, pkgerrors.Wrap(err, "scan job")
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, pkgerrors.Wrap(err, "iterate jobs")
	}
	return jobs, total, nil
}

func applyJobFilter(q sq.SelectBuilder, f ports.ListJobsFilter) sq.SelectBuilder {
	if f.Status != "" {
		q = q.Where(sq.Eq{"j.status": string(f.Status)})
	}
	if f.EmployerUserID != 0 {
		q = q.Where(sq.Eq{"ep.user_id": f.EmployerUserID})
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		q = q.Where(sq.Or{sq.ILike{"j.title": pattern}, sq.ILike{"j.description": pattern}})
	}
	if f.Location != "" {
		q = q.Where(sq.ILike{"j.location": "%" + escapeLike(f.Location) + "%"})
	}
	if f.JobType != "" {
		q = q.Where(sq.Eq{"j.job_type": string(f.JobType)})
	}
	if len(f.SkillIDs) > 0 {
		q = q.Where("EXISTS (SELECT 1 FROM job_skills x WHERE x.job_id = j.id AND x.skill_id = ANY(?))", f.SkillIDs)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// Update applies patch when the job belongs to ownerUserID (0 = any owner).
func (r *JobRepository) Update(ctx context.Context, id, ownerUserID int64, patch ports.JobUpdate) (*domain.Job, error) {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		q := psql.Update("jobs").Set("updated_at", sq.Expr("now()"))
		if patch.Title != nil {
			q = q.Set("title", *patch.Title)
		}
		if patch.Description != nil {
			q = q.Set("description", *patch.Description)
		}
		if patch.Location != nil {
			q = q.Set("location", *patch.Location)
		}
		if patch.JobType != nil {
			q = q.Set("job_type", string(*patch.JobType))
		}
		if patch.Status != nil {
			q = q.Set("status", string(*patch.Status))
		}
		if patch.SalaryMin != nil {
			q = q.Set("salary_min", *patch.SalaryMin)
		}
		if patch.SalaryMax != nil {
			q = q.Set("salary_max", *patch.SalaryMax)
		}
		q = q.Where(sq.Eq{"id": id})
		if ownerUserID != 0 {
			q = q.Where("employer_profile_id IN (SELECT id FROM employer_profiles WHERE user_id = ?)", ownerUserID)
		}

		query, args, err := q.Suffix("RETURNING id").ToSql()
		if err != nil {
			return pkgerrors.Wrap(err, "build job update")
		}
		var updatedID int64
		if err := tx.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrJobNotFound
			}
			return pkgerrors.Wrap(err, "update job")
		}

		if patch.SkillIDs != nil {
			return replaceLinks(ctx, tx, "job_skills", "job_id", id, patch.SkillIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *JobRepository) Delete(ctx context.Context, id, ownerUserID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND `+ownedJob, id, ownerUserID)
	if err != nil {
		return pkgerrors.Wrap(err, "delete job")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) OpenJobSkills(ctx context.Context, employerUserID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT js.skill_id
		FROM job_skills js
		JOIN jobs j ON j.id = js.job_id
		JOIN employer_profiles ep ON ep.id = j.employer_profile_id
		WHERE ep.user_id = $1 AND j.status = 'OPEN'
		ORDER BY js.skill_id`, employerUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open job skills")
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, pkgerrors.Wrap(err, "scan skill id")
		}
		ids = append(ids, id)
	}
	return ids, pkgerrors.Wrap(rows.Err(), "iterate skill ids")
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		j               domain.Job
		jobType, status string
	)
	if err := row.Scan(&j.ID, &j.EmployerProfileID, &j.EmployerUserID, &j.CompanyName, &j.Title,
		&j.Description, &j.Location, &jobType, &status, &j.SalaryMin, &j.SalaryMax,
		&j.CreatedAt, &j.UpdatedAt, &j.SkillIDs); err != nil {
		return nil, err
	}
	j.JobType = domain.JobType(jobType)
	j.Status = domain.JobStatus(status)
	j.SkillIDs = nonNilIDs(j.SkillIDs)
	return &j, nil
}

var _ ports.JobRepository = (*JobRepository)(nil)
