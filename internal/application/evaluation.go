package app

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"weld-score/internal/domain/entity"
)

// ErrEvaluationCancelled возвращается, если проход был прерван новой оценкой или сменой панели.
var ErrEvaluationCancelled = errors.New("evaluation cancelled")

// Evaluation оценка панели, выполняющаяся в фоне
type Evaluation struct {
	panelID  uuid.UUID
	coverage entity.CoverageAccumulator

	mu    sync.RWMutex
	stats entity.WeldingStats
	err   error

	cancel context.CancelFunc
	done   chan struct{}
}

func newEvaluation(panelID uuid.UUID, stats entity.WeldingStats, cancel context.CancelFunc) *Evaluation {
	return &Evaluation{
		panelID: panelID,
		stats:   stats,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// PanelID возвращает идентификатор оцениваемой панели
func (e *Evaluation) PanelID() uuid.UUID {
	return e.panelID
}

// Done закрывается, когда проход и перекраска дефектов завершены или прерваны
func (e *Evaluation) Done() <-chan struct{} {
	return e.done
}

// Stats возвращает текущий снимок измерений, включая незавершённое покрытие
func (e *Evaluation) Stats() entity.WeldingStats {
	e.mu.RLock()
	stats := e.stats
	e.mu.RUnlock()
	stats.Coverage = e.coverage.Ratio()
	return stats
}

// Score возвращает баллы по текущему снимку
func (e *Evaluation) Score() entity.WeldingScore {
	return entity.NewWeldingScore(e.Stats())
}

// Err возвращает ErrEvaluationCancelled для прерванной оценки
func (e *Evaluation) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.err
}

// Wait дожидается окончания оценки
func (e *Evaluation) Wait(ctx context.Context) (entity.WeldingStats, error) {
	select {
	case <-e.done:
		if err := e.Err(); err != nil {
			return entity.WeldingStats{}, err
		}
		return e.Stats(), nil
	case <-ctx.Done():
		return entity.WeldingStats{}, ctx.Err()
	}
}

// Cancel прерывает проход
func (e *Evaluation) Cancel() {
	e.cancel()
}

func (e *Evaluation) setBadWelds(n int) {
	e.mu.Lock()
	e.stats.BadWeldCount = n
	e.mu.Unlock()
}

func (e *Evaluation) finish(err error) {
	e.mu.Lock()
	e.err = err
	e.mu.Unlock()
	close(e.done)
}
