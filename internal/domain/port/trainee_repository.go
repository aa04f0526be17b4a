package port

import (
	"context"

	"weld-score/internal/domain/entity"
)

// TraineeRepository интерфейс хранилища сварщиков
type TraineeRepository interface {
	// Get возвращает сварщика по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.Trainee, error)

	// Save сохраняет состояние сварщика
	Save(ctx context.Context, trainee *entity.Trainee) error

	// UpdateState обновляет состояние сварщика
	UpdateState(ctx context.Context, userID int64, state entity.TraineeState) error
}
