package repository

import "github.com/invoteam/invo-api/internal/domain/entity"

// AchievementRepository define el puerto de persistencia para logros.
type AchievementRepository interface {
	// Unlock inserta el logro si no existe para (cuenta, clave). Devuelve true
	// si insertó, false si ya estaba desbloqueado.
	Unlock(achievement *entity.Achievement) (bool, error)
	ListByAccount(accountID string) ([]*entity.Achievement, error)
}
