package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

var jobRowColumns = []string{
	"id", "employer_profile_id", "user_id", "company_name", "title", "description", "location",
	"job_type", "status", "salary_min", "salary_max", "created_at", "updated_at", "skill_ids",
}

func TestJobRepository_FindByID(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)
	salary := int64(1500000)

	mock.ExpectQuery("FROM jobs j JOIN employer_profiles ep").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(jobRowColumns).AddRow(
			int64(3), int64(2), int64(42), "Freetown Builders", "Mason", "", "Freetown",
			"FULL_TIME", "OPEN", &salary, nil, fixedTime, fixedTime, []int64{1, 2}))

	job, err := repo.FindByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(42), job.EmployerUserID)
	assert.True(t, job.OwnedBy(42))
	assert.Equal(t, domain.JobStatusOpen, job.Status)
	assert.Equal(t, []int64{1, 2}, job.SkillIDs)
	require.NotNil(t, job.SalaryMin)
	assert.Equal(t, salary, *job.SalaryMin)
	assert.Nil(t, job.SalaryMax)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_FindByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectQuery("FROM jobs j").WithArgs(int64(3)).WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO jobs").
		WithArgs(int64(2), "Welder", "<p>Steel work</p>", "Bo", "CONTRACT", "OPEN", (*int64)(nil), (*int64)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), fixedTime, fixedTime))
	mock.ExpectExec("DELETE FROM job_skills").WithArgs(int64(11)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO job_skills").WithArgs(int64(11), []int64{4, 5}).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	job, err := repo.Create(context.Background(), &domain.Job{
		EmployerProfileID: 2,
		EmployerUserID:    42,
		Title:             "Welder",
		Description:       "<p>Steel work</p>",
		Location:          "Bo",
		JobType:           domain.JobTypeContract,
		Status:            domain.JobStatusOpen,
		SkillIDs:          []int64{4, 5},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), job.ID)
	assert.Equal(t, fixedTime, job.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_Create_UnknownSkillRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO jobs").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), fixedTime, fixedTime))
	mock.ExpectExec("DELETE FROM job_skills").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO job_skills").WillReturnError(pgError(codeForeignKeyViolation))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &domain.Job{
		EmployerProfileID: 2,
		Title:             "Welder",
		JobType:           domain.JobTypeContract,
		Status:            domain.JobStatusOpen,
		SkillIDs:          []int64{999},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_List_Filters(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM jobs j JOIN employer_profiles ep ON ep.id = j.employer_profile_id WHERE j.status = $1 AND (j.title ILIKE $2 OR j.description ILIKE $3) AND j.job_type = $4")).
		WithArgs("OPEN", "%weld%", "%weld%", "CONTRACT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(21)))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY j.created_at DESC, j.id DESC LIMIT 10 OFFSET 20")).
		WithArgs("OPEN", "%weld%", "%weld%", "CONTRACT").
		WillReturnRows(pgxmock.NewRows(jobRowColumns).AddRow(
			int64(3), int64(2), int64(42), "Freetown Builders", "Welder", "", "Freetown",
			"CONTRACT", "OPEN", nil, nil, fixedTime, fixedTime, []int64{}))

	jobs, total, err := repo.List(context.Background(), ports.ListJobsFilter{
		Status:  domain.JobStatusOpen,
		Search:  "weld",
		JobType: domain.JobTypeContract,
		Page:    3,
		Limit:   10,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Welder", jobs[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_List_EmptyShortCircuits(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*)")).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	jobs, total, err := repo.List(context.Background(), ports.ListJobsFilter{EmployerUserID: 42, Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_Update_NotOwned(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)
	title := "Senior Welder"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("employer_profile_id IN (SELECT id FROM employer_profiles WHERE user_id = $3) RETURNING id")).
		WithArgs(title, int64(3), int64(43)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 3, 43, ports.JobUpdate{Title: &title})

	assert.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_Delete_Scoped(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectExec("DELETE FROM jobs WHERE id").
		WithArgs(int64(3), int64(43)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM jobs WHERE id").
		WithArgs(int64(3), int64(0)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.ErrorIs(t, repo.Delete(context.Background(), 3, 43), domain.ErrJobNotFound)
	assert.NoError(t, repo.Delete(context.Background(), 3, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_OpenJobSkills(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectQuery("SELECT DISTINCT js.skill_id").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"skill_id"}).AddRow(int64(1)).AddRow(int64(4)))

	ids, err := repo.OpenJobSkills(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, ids)
}

func TestJobRepository_List_SkillOverlap(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE j.status = $1 AND EXISTS (SELECT 1 FROM job_skills x WHERE x.job_id = j.id AND x.skill_id = ANY($2))")).
		WithArgs("OPEN", []int64{1, 2}).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("x.skill_id = ANY($2)) ORDER BY j.created_at DESC, j.id DESC LIMIT 500 OFFSET 500")).
		WithArgs("OPEN", []int64{1, 2}).
		WillReturnRows(pgxmock.NewRows(jobRowColumns).AddRow(
			int64(1), int64(2), int64(42), "Freetown Builders", "Mason", "", "Freetown",
			"FULL_TIME", "OPEN", nil, nil, fixedTime, fixedTime, []int64{1, 2}))

	jobs, _, err := repo.List(context.Background(), ports.ListJobsFilter{
		Status:   domain.JobStatusOpen,
		SkillIDs: []int64{1, 2},
		Page:     2,
		Limit:    500,
	})

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
