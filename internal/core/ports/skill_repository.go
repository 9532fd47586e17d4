package ports

import (
	"context"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// SkillRepository reads the skill taxonomy.
type SkillRepository interface {
	List(ctx context.Context) ([]domain.Skill, error)
	// CountExisting returns how many of ids exist.
	CountExisting(ctx context.Context, ids []int64) (int, error)
}
