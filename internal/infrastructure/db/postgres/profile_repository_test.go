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

var seekerRowColumns = []string{
	"id", "user_id", "first_name", "last_name", "headline", "bio", "location",
	"pathway", "resume_key", "created_at", "updated_at", "skill_ids",
}

func TestProfileRepository_UpsertSeeker(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO seeker_profiles").
		WithArgs(int64(10), "Aminata", "Sesay", "Tailor", "", "Kenema", "ARTISAN").
		WillReturnRows(pgxmock.NewRows(seekerRowColumns[:11]).AddRow(
			int64(5), int64(10), "Aminata", "Sesay", "Tailor", "", "Kenema", "ARTISAN", "", fixedTime, fixedTime))
	mock.ExpectExec("DELETE FROM seeker_skills").WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("INSERT INTO seeker_skills").WithArgs(int64(5), []int64{2, 7}).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	saved, err := repo.UpsertSeeker(context.Background(), &domain.SeekerProfile{
		UserID:    10,
		FirstName: "Aminata",
		LastName:  "Sesay",
		Headline:  "Tailor",
		Location:  "Kenema",
		Pathway:   domain.PathwayArtisan,
		SkillIDs:  []int64{2, 7},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), saved.ID)
	assert.Equal(t, domain.PathwayArtisan, saved.Pathway)
	assert.Equal(t, []int64{2, 7}, saved.SkillIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_UpsertSeeker_NoSkills(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO seeker_profiles").
		WillReturnRows(pgxmock.NewRows(seekerRowColumns[:11]).AddRow(
			int64(5), int64(10), "", "", "", "", "", "STUDENT", "", fixedTime, fixedTime))
	mock.ExpectExec("DELETE FROM seeker_skills").WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectCommit()

	saved, err := repo.UpsertSeeker(context.Background(), &domain.SeekerProfile{UserID: 10, Pathway: domain.PathwayStudent})

	require.NoError(t, err)
	assert.NotNil(t, saved.SkillIDs)
	assert.Empty(t, saved.SkillIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_FindEmployerByUserID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	mock.ExpectQuery("FROM employer_profiles WHERE user_id").
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindEmployerByUserID(context.Background(), 42)

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.True(t, domain.IsNotFound(err))
}

func TestProfileRepository_ListSeekers(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE sp.pathway = $1 AND EXISTS (SELECT 1 FROM seeker_skills x WHERE x.seeker_profile_id = sp.id AND x.skill_id = ANY($2)) ORDER BY sp.created_at DESC, sp.id DESC LIMIT 50")).
		WithArgs("GRADUATE", []int64{1, 3}).
		WillReturnRows(pgxmock.NewRows(seekerRowColumns).
			AddRow(int64(5), int64(10), "Aminata", "Sesay", "", "", "", "GRADUATE", "", fixedTime, fixedTime, []int64{1}).
			AddRow(int64(4), int64(11), "Mohamed", "Bangura", "", "", "", "GRADUATE", "", fixedTime, fixedTime, []int64{3, 8}))

	seekers, err := repo.ListSeekers(context.Background(), ports.TalentFilter{
		Pathway:  domain.PathwayGraduate,
		SkillIDs: []int64{1, 3},
		Limit:    50,
	})

	require.NoError(t, err)
	require.Len(t, seekers, 2)
	assert.Equal(t, []int64{3, 8}, seekers[1].SkillIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_ListSeekers_Offset(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY sp.created_at DESC, sp.id DESC LIMIT 500 OFFSET 500")).
		WillReturnRows(pgxmock.NewRows(seekerRowColumns))

	seekers, err := repo.ListSeekers(context.Background(), ports.TalentFilter{Limit: 500, Offset: 500})

	require.NoError(t, err)
	assert.Empty(t, seekers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_SetSeekerResume_NoProfile(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	mock.ExpectExec("UPDATE seeker_profiles SET resume_key").
		WithArgs(int64(10), "resumes/10/cv.pdf").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetSeekerResume(context.Background(), 10, "resumes/10/cv.pdf")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfileRepository_DeletePortfolioItem(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)
	cols := []string{"id", "seeker_profile_id", "title", "object_key", "content_type", "created_at"}

	mock.ExpectQuery("DELETE FROM portfolio_items").
		WithArgs(int64(2), int64(10)).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(2), int64(5), "Dress", "portfolio/10/a.png", "image/png", fixedTime))
	mock.ExpectQuery("DELETE FROM portfolio_items").
		WithArgs(int64(2), int64(11)).
		WillReturnError(pgx.ErrNoRows)

	item, err := repo.DeletePortfolioItem(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, "portfolio/10/a.png", item.ObjectKey)

	_, err = repo.DeletePortfolioItem(context.Background(), 2, 11)
	assert.ErrorIs(t, err, domain.ErrPortfolioItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
