package storage

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
)

// MemoryScoreRepository in-memory хранилище оценок панелей
type MemoryScoreRepository struct {
	mu     sync.RWMutex
	scores map[uuid.UUID]entity.WeldingScore
}

// NewMemoryScoreRepository создаёт пустое хранилище оценок
func NewMemoryScoreRepository() *MemoryScoreRepository {
	return &MemoryScoreRepository{
		scores: make(map[uuid.UUID]entity.WeldingScore),
	}
}

// Save сохраняет оценку панели, перезаписывая предыдущую
func (r *MemoryScoreRepository) Save(ctx context.Context, panelID uuid.UUID, score entity.WeldingScore) error {
	r.mu.Lock()
	r.scores[panelID] = score
	r.mu.Unlock()
	return nil
}

// Get возвращает оценку панели
func (r *MemoryScoreRepository) Get(ctx context.Context, panelID uuid.UUID) (entity.WeldingScore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	score, ok := r.scores[panelID]
	return score, ok, nil
}

// List возвращает копию всех оценок
func (r *MemoryScoreRepository) List(ctx context.Context) (map[uuid.UUID]entity.WeldingScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.scores), nil
}

// Clear удаляет все оценки
func (r *MemoryScoreRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	clear(r.scores)
	r.mu.Unlock()
	return nil
}

var _ port.ScoreRepository = (*MemoryScoreRepository)(nil)
