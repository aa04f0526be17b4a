package storage

import (
	"context"
	"sync"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
)

// MemoryTraineeRepository in-memory хранилище сварщиков
type MemoryTraineeRepository struct {
	mu       sync.RWMutex
	trainees map[int64]*entity.Trainee
}

// NewMemoryTraineeRepository создаёт новое in-memory хранилище
func NewMemoryTraineeRepository() *MemoryTraineeRepository {
	return &MemoryTraineeRepository{
		trainees: make(map[int64]*entity.Trainee),
	}
}

// Get возвращает сварщика по ID, создаёт нового если не найден
func (r *MemoryTraineeRepository) Get(ctx context.Context, userID, chatID int64) (*entity.Trainee, error) {
	r.mu.RLock()
	trainee, exists := r.trainees[userID]
	r.mu.RUnlock()

	if exists {
		return trainee, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if trainee, exists := r.trainees[userID]; exists {
		return trainee, nil
	}
	trainee = entity.NewTrainee(userID, chatID)
	r.trainees[userID] = trainee

	return trainee, nil
}

// Save сохраняет состояние сварщика
func (r *MemoryTraineeRepository) Save(ctx context.Context, trainee *entity.Trainee) error {
	r.mu.Lock()
	r.trainees[trainee.ID] = trainee
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние сварщика
func (r *MemoryTraineeRepository) UpdateState(ctx context.Context, userID int64, state entity.TraineeState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if trainee, exists := r.trainees[userID]; exists {
		trainee.SetState(state)
	}

	return nil
}

// Проверка реализации интерфейса
var _ port.TraineeRepository = (*MemoryTraineeRepository)(nil)
