package postgres

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

var errUnknownSkill = domain.Invalidf("skill_ids references an unknown skill")

type SkillRepository struct {
	db DB
}

func NewSkillRepository(db DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) List(ctx context.Context) ([]domain.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, category FROM skills ORDER BY category, name`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list skills")
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category); err != nil {
			return nil, pkgerrors.Wrap(err, "scan skill")
		}
		skills = append(skills, s)
	}
	return skills, pkgerrors.Wrap(rows.Err(), "iterate skills")
}

func (r *SkillRepository) CountExisting(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM skills WHERE id = ANY($1)`, ids).Scan(&n); err != nil {
		return 0, pkgerrors.Wrap(err, "count skills")
	}
	return n, nil
}

var _ ports.SkillRepository = (*SkillRepository)(nil)
