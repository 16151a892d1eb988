package postgres

import (
	"context"
	"fmt"

	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

var _ repository.AchievementRepository = (*AchievementRepo)(nil)

// AchievementRepo implementación del puerto AchievementRepository sobre
// PostgreSQL. La idempotencia del desbloqueo descansa en el constraint
// UNIQUE(account_id, key) más ON CONFLICT DO NOTHING.
type AchievementRepo struct {
	q Querier
}

func NewAchievementRepository(q Querier) *AchievementRepo {
	return &AchievementRepo{q: q}
}

// Unlock inserta el logro si no existe para (cuenta, clave). Devuelve true si
// insertó, false si ya estaba desbloqueado.
func (r *AchievementRepo) Unlock(achievement *entity.Achievement) (bool, error) {
	query := `
		INSERT INTO achievements (id, account_id, key, title, unlocked_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id, key) DO NOTHING`
	tag, err := r.q.Exec(context.Background(), query,
		achievement.ID, achievement.AccountID, achievement.Key,
		achievement.Title, achievement.UnlockedAt,
	)
	if err != nil {
		return false, fmt.Errorf("unlock achievement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByAccount lista los logros desbloqueados en orden de desbloqueo.
func (r *AchievementRepo) ListByAccount(accountID string) ([]*entity.Achievement, error) {
	query := `
		SELECT id, account_id, key, title, unlocked_at
		FROM achievements
		WHERE account_id = $1
		ORDER BY unlocked_at`
	rows, err := r.q.Query(context.Background(), query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []*entity.Achievement
	for rows.Next() {
		var a entity.Achievement
		if err := rows.Scan(&a.ID, &a.AccountID, &a.Key, &a.Title, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		achievements = append(achievements, &a)
	}
	return achievements, rows.Err()
}
