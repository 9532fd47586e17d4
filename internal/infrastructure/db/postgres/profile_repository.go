package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	pkgerrors "github.com/pkg/errors"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const (
	employerColumns = `id, user_id, company_name, industry, location, website, logo_key, created_at, updated_at`
	seekerColumns   = `sp.id, sp.user_id, sp.first_name, sp.last_name, sp.headline, sp.bio, sp.location, sp.pathway, sp.resume_key, sp.created_at, sp.updated_at`
	seekerSkillsAgg = `COALESCE((SELECT array_agg(ss.skill_id ORDER BY ss.skill_id) FROM seeker_skills ss WHERE ss.seeker_profile_id = sp.id), '{}') AS skill_ids`
	portfolioCols   = `id, seeker_profile_id, title, object_key, content_type, created_at`
)

// ProfileRepository implements ports.ProfileRepository on Postgres.
type ProfileRepository struct {
	db DB
}

func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// --- Employers ---

func (r *ProfileRepository) UpsertEmployer(ctx context.Context, p *domain.EmployerProfile) (*domain.EmployerProfile, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO employer_profiles (user_id, company_name, industry, location, website)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			industry     = EXCLUDED.industry,
			location     = EXCLUDED.location,
			website      = EXCLUDED.website,
			updated_at   = now()
		RETURNING `+employerColumns,
		p.UserID, p.CompanyName, p.Industry, p.Location, p.Website)

	saved, err := scanEmployer(row)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "upsert employer profile")
	}
	return saved, nil
}

func (r *ProfileRepository) FindEmployerByUserID(ctx context.Context, userID int64) (*domain.EmployerProfile, error) {
	p, err := scanEmployer(r.db.QueryRow(ctx, `SELECT `+employerColumns+` FROM employer_profiles WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, pkgerrors.Wrap(err, "find employer profile")
	}
	return p, nil
}

func (r *ProfileRepository) SetEmployerLogo(ctx context.Context, userID int64, key string) error {
	return r.setKey(ctx, `UPDATE employer_profiles SET logo_key = $2, updated_at = now() WHERE user_id = $1`, userID, key)
}

// --- Seekers ---

func (r *ProfileRepository) UpsertSeeker(ctx context.Context, p *domain.SeekerProfile) (*domain.SeekerProfile, error) {
	var saved *domain.SeekerProfile
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var (
			s       domain.SeekerProfile
			pathway string
		)
		err := tx.QueryRow(ctx, `
			INSERT INTO seeker_profiles (user_id, first_name, last_name, headline, bio, location, pathway)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id) DO UPDATE SET
				first_name = EXCLUDED.first_name,
				last_name  = EXCLUDED.last_name,
				headline   = EXCLUDED.headline,
				bio        = EXCLUDED.bio,
				location   = EXCLUDED.location,
				pathway    = EXCLUDED.pathway,
				updated_at = now()
			RETURNING id, user_id, first_name, last_name, headline, bio, location, pathway, resume_key, created_at, updated_at`,
			p.UserID, p.FirstName, p.LastName, p.Headline, p.Bio, p.Location, string(p.Pathway),
		).Scan(&s.ID, &s.UserID, &s.FirstName, &s.LastName, &s.Headline, &s.Bio, &s.Location,
			&pathway, &s.ResumeKey, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return pkgerrors.Wrap(err, "upsert seeker profile")
		}
		s.Pathway = domain.Pathway(pathway)

		if err := replaceLinks(ctx, tx, "seeker_skills", "seeker_profile_id", s.ID, p.SkillIDs); err != nil {
			return err
		}
		s.SkillIDs = nonNilIDs(p.SkillIDs)
		saved = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *ProfileRepository) FindSeekerByUserID(ctx context.Context, userID int64) (*domain.SeekerProfile, error) {
	p, err := scanSeeker(r.db.QueryRow(ctx,
		`SELECT `+seekerColumns+`, `+seekerSkillsAgg+` FROM seeker_profiles sp WHERE sp.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, pkgerrors.Wrap(err, "find seeker profile")
	}
	return p, nil
}

func (r *ProfileRepository) SetSeekerResume(ctx context.Context, userID int64, key string) error {
	return r.setKey(ctx, `UPDATE seeker_profiles SET resume_key = $2, updated_at = now() WHERE user_id = $1`, userID, key)
}

// ListSeekers returns seeker profiles newest first, optionally narrowed to a
// pathway and to seekers holding at least one of filter.SkillIDs.
func (r *ProfileRepository) ListSeekers(ctx context.Context, filter ports.TalentFilter) ([]*domain.SeekerProfile, error) {
	q := psql.Select(seekerColumns, seekerSkillsAgg).
		From("seeker_profiles sp").
		OrderBy("sp.created_at DESC", "sp.id DESC")
	if filter.Pathway != "" {
		q = q.Where(sq.Eq{"sp.pathway": string(filter.Pathway)})
	}
	if len(filter.SkillIDs) > 0 {
		q = q.Where("EXISTS (SELECT 1 FROM seeker_skills x WHERE x.seeker_profile_id = sp.id AND x.skill_id = ANY(?))", filter.SkillIDs)
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "build talent query")
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list seekers")
	}
	defer rows.Close()

	out := []*domain.SeekerProfile{}
	for rows.Next() {
		p, err := scanSeeker(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "scan seeker")
		}
		out = append(out, p)
	}
	return out, pkgerrors.Wrap(rows.Err(), "iterate seekers")
}

// --- Portfolio ---

func (r *ProfileRepository) AddPortfolioItem(ctx context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO portfolio_items (seeker_profile_id, title, object_key, content_type)
		VALUES ($1, $2, $3, $4)
		RETURNING `+portfolioCols,
		item.SeekerProfileID, item.Title, item.ObjectKey, item.ContentType)
	saved, err := scanPortfolio(row)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "insert portfolio item")
	}
	return saved, nil
}

func (r *ProfileRepository) ListPortfolio(ctx context.Context, seekerProfileID int64) ([]*domain.PortfolioItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+portfolioCols+` FROM portfolio_items WHERE seeker_profile_id = $1 ORDER BY created_at DESC, id DESC`,
		seekerProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list portfolio")
	}
	defer rows.Close()

	out := []*domain.PortfolioItem{}
	for rows.Next() {
		item, err := scanPortfolio(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "scan portfolio item")
		}
		out = append(out, item)
	}
	return out, pkgerrors.Wrap(rows.Err(), "iterate portfolio")
}

func (r *ProfileRepository) DeletePortfolioItem(ctx context.Context, id, ownerUserID int64) (*domain.PortfolioItem, error) {
	row := r.db.QueryRow(ctx, `
		DELETE FROM portfolio_items p
		USING seeker_profiles sp
		WHERE p.id = $1 AND p.seeker_profile_id = sp.id AND sp.user_id = $2
		RETURNING p.id, p.seeker_profile_id, p.title, p.object_key, p.content_type, p.created_at`,
		id, ownerUserID)
	item, err := scanPortfolio(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPortfolioItemNotFound
		}
		return nil, pkgerrors.Wrap(err, "delete portfolio item")
	}
	return item, nil
}

func (r *ProfileRepository) setKey(ctx context.Context, query string, userID int64, key string) error {
	tag, err := r.db.Exec(ctx, query, userID, key)
	if err != nil {
		return pkgerrors.Wrap(err, "set object key")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func scanEmployer(row pgx.Row) (*domain.EmployerProfile, error) {
	var p domain.EmployerProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.Industry, &p.Location, &p.Website,
		&p.LogoKey, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanSeeker(row pgx.Row) (*domain.SeekerProfile, error) {
	var (
		p       domain.SeekerProfile
		pathway string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Headline, &p.Bio, &p.Location,
		&pathway, &p.ResumeKey, &p.CreatedAt, &p.UpdatedAt, &p.SkillIDs); err != nil {
		return nil, err
	}
	p.Pathway = domain.Pathway(pathway)
	p.SkillIDs = nonNilIDs(p.SkillIDs)
	return &p, nil
}

func scanPortfolio(row pgx.Row) (*domain.PortfolioItem, error) {
	var item domain.PortfolioItem
	if err := row.Scan(&item.ID, &item.SeekerProfileID, &item.Title, &item.ObjectKey,
		&item.ContentType, &item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)
