package port

import (
	"context"

	"github.com/google/uuid"

	"weld-score/internal/domain/entity"
)

// ScoreRepository хранит по одной оценке на панель
type ScoreRepository interface {
	// Save сохраняет оценку панели, перезаписывая предыдущую
	Save(ctx context.Context, panelID uuid.UUID, score entity.WeldingScore) error

	// Get возвращает оценку панели, если она есть
	Get(ctx context.Context, panelID uuid.UUID) (entity.WeldingScore, bool, error)

	// List возвращает все сохранённые оценки
	List(ctx context.Context) (map[uuid.UUID]entity.WeldingScore, error)

	// Clear удаляет все оценки
	Clear(ctx context.Context) error
}
