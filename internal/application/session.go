package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
)

var (
	ErrNoPanels        = errors.New("no panels available")
	ErrSessionFinished = errors.New("all panels are finished, restart the session")
)

// AdvanceResult итог перехода к следующей панели
type AdvanceResult int

const (
	AdvanceNext            AdvanceResult = iota // активирована следующая панель
	AdvanceFinished                             // панели закончились, сессия завершена
	AdvanceAlreadyFinished                      // сессия уже была завершена
)

// Session ведёт сварщика по панелям и хранит их оценки
type Session struct {
	scorer   *PanelScorer
	scores   port.ScoreRepository
	notifier port.Notifier
	logger   *zap.Logger

	mu          sync.Mutex
	panels      []*entity.Panel
	index       int
	finished    bool
	evaluations map[uuid.UUID]*Evaluation
	seeds       map[uuid.UUID][]entity.Marker // маркеры панелей на момент создания сессии
}

// NewSession создаёт сессию и активирует первую панель
func NewSession(panels []*entity.Panel, scorer *PanelScorer, scores port.ScoreRepository, notifier port.Notifier, logger *zap.Logger) *Session {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		scorer:      scorer,
		scores:      scores,
		notifier:    notifier,
		logger:      logger,
		panels:      panels,
		evaluations: make(map[uuid.UUID]*Evaluation),
		seeds:       make(map[uuid.UUID][]entity.Marker, len(panels)),
	}

	if len(panels) == 0 {
		logger.Error(ErrNoPanels.Error())
		return s
	}
	for _, p := range panels {
		p.Active = false
		s.seeds[p.ID] = p.Markers.All()
	}
	s.activateLocked(0)
	return s
}

// Len возвращает количество панелей
func (s *Session) Len() int {
	return len(s.panels)
}

// Index возвращает индекс текущей панели
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Finished сообщает, что все панели пройдены
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// CurrentPanel возвращает активную панель
func (s *Session) CurrentPanel() (*entity.Panel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(); err != nil {
		return nil, err
	}
	return s.panels[s.index], nil
}

// EvaluateCurrent запускает оценку текущей панели. Оценка сохраняется
// в хранилище до закрытия Done, если её не вытеснила более новая.
func (s *Session) EvaluateCurrent(ctx context.Context) (*Evaluation, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(); err != nil {
		return nil, 0, err
	}

	panel := s.panels[s.index]
	ev, delay := s.scorer.Evaluate(ctx, panel, s.commit)
	s.evaluations[panel.ID] = ev
	return ev, delay, nil
}

func (s *Session) commit(ev *Evaluation, stats entity.WeldingStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.evaluations[ev.PanelID()] != ev {
		return
	}
	score := entity.NewWeldingScore(stats)
	if err := s.scores.Save(context.Background(), ev.PanelID(), score); err != nil {
		s.logger.Error("failed to save panel score", zap.Stringer("panel_id", ev.PanelID()), zap.Error(err))
	}
}

// CurrentScore считает баллы по последнему (возможно незавершённому) проходу текущей панели
func (s *Session) CurrentScore() entity.WeldingScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkLocked() != nil {
		return entity.WeldingScore{}
	}
	ev := s.evaluations[s.panels[s.index].ID]
	if ev == nil {
		return entity.NewWeldingScore(entity.WeldingStats{})
	}
	return ev.Score()
}

// PanelScore возвращает сохранённую оценку панели
func (s *Session) PanelScore(ctx context.Context, panelID uuid.UUID) (entity.WeldingScore, bool, error) {
	return s.scores.Get(ctx, panelID)
}

// OverallScore возвращает среднее по всем оценённым панелям, нули если оценок нет
func (s *Session) OverallScore(ctx context.Context) (entity.WeldingScore, error) {
	stored, err := s.scores.List(ctx)
	if err != nil {
		return entity.WeldingScore{}, fmt.Errorf("list scores: %w", err)
	}
	scores := make([]entity.WeldingScore, 0, len(stored))
	for _, score := range stored {
		scores = append(scores, score)
	}
	return entity.AverageScore(scores), nil
}

// Advance переходит к следующей панели. После последней панели сессия
// завершается ровно один раз, повторные вызовы ничего не делают.
func (s *Session) Advance(ctx context.Context) (AdvanceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.panels) == 0 {
		return AdvanceAlreadyFinished, ErrNoPanels
	}
	if s.finished {
		return AdvanceAlreadyFinished, nil
	}

	current := s.panels[s.index]
	s.cancelLocked(current.ID)
	current.Active = false
	s.notifier.PanelDeactivated(current.ID)

	s.index++
	if s.index >= len(s.panels) {
		s.finished = true
		s.logger.Info("all panels finished")
		s.notifier.SessionRestarted()
		return AdvanceFinished, nil
	}

	s.activateLocked(s.index)
	s.resetLocked()
	return AdvanceNext, nil
}

// ResetCurrent очищает журнал проводки и заново подаёт текущую панель
func (s *Session) ResetCurrent() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(); err != nil {
		return err
	}
	s.resetLocked()
	return nil
}

// Restart начинает сессию заново с первой панели. Маркеры панелей
// возвращаются к состоянию на момент создания сессии.
func (s *Session) Restart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.panels) == 0 {
		return ErrNoPanels
	}

	for _, p := range s.panels {
		s.cancelLocked(p.ID)
		if p.Active {
			p.Active = false
			s.notifier.PanelDeactivated(p.ID)
		}
		p.Travel.Reset()
		p.Markers.Reset(s.seeds[p.ID]...)
	}
	if err := s.scores.Clear(ctx); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}

	s.index = 0
	s.finished = false
	s.activateLocked(0)
	return nil
}

// RecordTravel добавляет замер проводки текущей панели
func (s *Session) RecordTravel(seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(); err != nil {
		return err
	}
	s.panels[s.index].Travel.Record(seconds)
	return nil
}

// RegisterMarkers добавляет маркеры на текущую панель
func (s *Session) RegisterMarkers(markers ...entity.Marker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(); err != nil {
		return err
	}
	s.panels[s.index].Markers.Add(markers...)
	return nil
}

func (s *Session) checkLocked() error {
	if len(s.panels) == 0 {
		return ErrNoPanels
	}
	if s.finished {
		return ErrSessionFinished
	}
	return nil
}

func (s *Session) activateLocked(i int) {
	p := s.panels[i]
	p.Active = true
	s.notifier.PanelActivated(p.ID)
}

func (s *Session) resetLocked() {
	p := s.panels[s.index]
	p.Travel.Reset()
	s.notifier.PanelPresented(p.ID)
}

func (s *Session) cancelLocked(panelID uuid.UUID) {
	if ev := s.evaluations[panelID]; ev != nil {
		ev.Cancel()
		delete(s.evaluations, panelID)
	}
}
