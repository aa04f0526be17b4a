package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
)

// CommitFunc вызывается с итоговыми измерениями до закрытия Done
type CommitFunc func(ev *Evaluation, stats entity.WeldingStats)

// PanelScorer оценивает одну панель: проход сканера, валики, дефекты, прожоги
type PanelScorer struct {
	probe    *ContactProbe
	clock    port.FrameClock
	notifier port.Notifier
	logger   *zap.Logger

	mu       sync.Mutex
	inflight map[uuid.UUID]*Evaluation
}

// NewPanelScorer создаёт оценщик панелей
func NewPanelScorer(physics port.ContactQuerier, clock port.FrameClock, notifier port.Notifier, logger *zap.Logger) *PanelScorer {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PanelScorer{
		probe:    NewContactProbe(physics),
		clock:    clock,
		notifier: notifier,
		logger:   logger,
		inflight: make(map[uuid.UUID]*Evaluation),
	}
}

// Evaluate запускает оценку панели и возвращает её вместе с временем проверки в секундах.
// Незавершённая оценка той же панели прерывается.
func (s *PanelScorer) Evaluate(ctx context.Context, panel *entity.Panel, commit CommitFunc) (*Evaluation, float64) {
	ctx, cancel := context.WithCancel(ctx)

	stats := entity.WeldingStats{
		Uniformity:   entity.ScaleUniformity(panel.Markers.Scales(entity.MarkerWeldMaterial)),
		Travel:       panel.Travel.Uniformity(),
		BadWeldCount: panel.Markers.Count(entity.MarkerDefectGroup),
		HoleCount:    panel.Markers.Count(entity.MarkerHole),
	}
	ev := newEvaluation(panel.ID, stats, cancel)

	s.mu.Lock()
	if prev := s.inflight[panel.ID]; prev != nil {
		prev.Cancel()
	}
	s.inflight[panel.ID] = ev
	s.mu.Unlock()

	log := s.logger.With(zap.String("panel", panel.Name), zap.Stringer("panel_id", panel.ID))
	if len(panel.Waypoints) < 2 {
		log.Warn("scan path is not configured, coverage will be zero")
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.scan(ctx, ev, panel)
	}()
	go func() {
		defer wg.Done()
		s.reclassify(ctx, ev, panel)
	}()
	go func() {
		wg.Wait()

		var err error
		if ctx.Err() != nil {
			err = ErrEvaluationCancelled
			log.Debug("evaluation cancelled")
		} else {
			final := ev.Stats()
			if commit != nil {
				commit(ev, final)
			}
			log.Info("evaluation finished",
				zap.Float64("uniformity", final.Uniformity),
				zap.Float64("coverage", final.Coverage),
				zap.Float64("travel", final.Travel),
				zap.Int("bad_welds", final.BadWeldCount),
				zap.Int("holes", final.HoleCount),
			)
		}

		s.mu.Lock()
		if s.inflight[panel.ID] == ev {
			delete(s.inflight, panel.ID)
		}
		s.mu.Unlock()

		ev.finish(err)
		cancel()
	}()

	return ev, panel.ScanDuration
}

// scan проводит сканер по пути панели и считает покрытие
func (s *PanelScorer) scan(ctx context.Context, ev *Evaluation, panel *entity.Panel) {
	ev.coverage.Reset()
	for sample := range SamplePath(ctx, panel.Waypoints, panel.ScanDuration, s.clock) {
		hit := s.probe.Probe(sample.Position, panel.ScanUp)
		ev.coverage.Record(hit)
		s.notifier.SampleProbed(panel.ID, sample.Position, hit)
	}
	if ctx.Err() != nil {
		return
	}
	s.notifier.PassCompleted(panel.ID, ev.Stats())
}

// reclassify после задержки считает дефекты вне допустимой зоны плохими
func (s *PanelScorer) reclassify(ctx context.Context, ev *Evaluation, panel *entity.Panel) {
	if err := s.clock.Wait(ctx, panel.ScanDuration); err != nil {
		return
	}
	good, bad := panel.Markers.Reclassify()
	ev.setBadWelds(bad)
	s.notifier.MarkersReclassified(panel.ID, good, bad)
}
