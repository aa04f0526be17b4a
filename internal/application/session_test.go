package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
	"weld-score/internal/infrastructure/storage"
)

func newTestSession(t *testing.T, physics port.ContactQuerier, n int) (*Session, *recorder, []*entity.Panel) {
	t.Helper()
	rec := &recorder{}
	panels := make([]*entity.Panel, n)
	for i := range panels {
		panels[i] = straightPanel("panel")
	}
	scorer := NewPanelScorer(physics, fixedStep(t, 0.25), rec, nil)
	return NewSession(panels, scorer, storage.NewMemoryScoreRepository(), rec, nil), rec, panels
}

func evaluate(t *testing.T, s *Session) entity.WeldingStats {
	t.Helper()
	ev, _, err := s.EvaluateCurrent(context.Background())
	require.NoError(t, err)
	stats, err := ev.Wait(context.Background())
	require.NoError(t, err)
	return stats
}

func TestSession_ActivatesFirstPanel(t *testing.T) {
	s, rec, panels := newTestSession(t, weldEverywhere, 3)
	require.Equal(t, 3, s.Len())
	require.Equal(t, 0, s.Index())
	require.True(t, panels[0].Active)
	require.False(t, panels[1].Active)
	require.Equal(t, panels[0].ID, rec.activated[0])

	current, err := s.CurrentPanel()
	require.NoError(t, err)
	require.Same(t, panels[0], current)
}

func TestSession_EvaluateStoresScore(t *testing.T) {
	s, _, panels := newTestSession(t, weldEverywhere, 2)
	ctx := context.Background()

	evaluate(t, s)

	score, ok, err := s.PanelScore(ctx, panels[0].ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 100, score.Coverage)

	overall, err := s.OverallScore(ctx)
	require.NoError(t, err)
	require.Equal(t, score, overall)
	require.Equal(t, score, s.CurrentScore())
}

func TestSession_AllMissesGiveZeroCoverage(t *testing.T) {
	s, _, _ := newTestSession(t, nothingBelow, 1)
	evaluate(t, s)

	overall, err := s.OverallScore(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, overall.Coverage)
}

func TestSession_OverallAveragesPanels(t *testing.T) {
	s, _, panels := newTestSession(t, weldEverywhere, 2)
	ctx := context.Background()

	overall, err := s.OverallScore(ctx)
	require.NoError(t, err)
	require.Equal(t, entity.WeldingScore{}, overall)

	panels[0].Markers.Add(entity.NewMarker(entity.MarkerWeldMaterial, 1))
	evaluate(t, s)

	_, err = s.Advance(ctx)
	require.NoError(t, err)
	panels[1].Markers.Add(entity.NewMarker(entity.MarkerWeldMaterial, 0.5), entity.NewMarker(entity.MarkerWeldMaterial, 1))
	evaluate(t, s)

	overall, err = s.OverallScore(ctx)
	require.NoError(t, err)
	// (100 + 75) / 2
	require.Equal(t, entity.WeldingScore{Uniformity: 87, Coverage: 100, Travel: 0}, overall)
}

func TestSession_RescoreOverwrites(t *testing.T) {
	s, _, panels := newTestSession(t, weldEverywhere, 1)
	ctx := context.Background()

	evaluate(t, s)
	panels[0].Markers.Add(entity.NewMarker(entity.MarkerHole, 0), entity.NewMarker(entity.MarkerWeldMaterial, 1))
	evaluate(t, s)

	overall, err := s.OverallScore(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, overall.Uniformity)
	require.Equal(t, 100, overall.Coverage)
}

func TestSession_AdvancePastLastPanelFinishesOnce(t *testing.T) {
	s, rec, panels := newTestSession(t, weldEverywhere, 3)
	ctx := context.Background()

	res, err := s.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, AdvanceNext, res)
	require.False(t, panels[0].Active)
	require.True(t, panels[1].Active)

	res, err = s.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, AdvanceNext, res)

	res, err = s.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, AdvanceFinished, res)
	require.True(t, s.Finished())

	for i := 0; i < 3; i++ {
		res, err = s.Advance(ctx)
		require.NoError(t, err)
		require.Equal(t, AdvanceAlreadyFinished, res)
	}
	require.Equal(t, 1, rec.restarts)
	require.Len(t, rec.presented, 2)

	_, _, err = s.EvaluateCurrent(ctx)
	require.ErrorIs(t, err, ErrSessionFinished)
}

func TestSession_AdvanceClearsTravelOfNextPanel(t *testing.T) {
	s, _, panels := newTestSession(t, weldEverywhere, 2)
	panels[1].Travel.Record(0.3)

	require.NoError(t, s.RecordTravel(0.4))
	require.Equal(t, 1, panels[0].Travel.Len())

	_, err := s.Advance(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, panels[1].Travel.Len())
}

func TestSession_ResetCurrent(t *testing.T) {
	s, rec, panels := newTestSession(t, weldEverywhere, 2)
	for i := 0; i < 12; i++ {
		require.NoError(t, s.RecordTravel(0.4))
	}

	require.NoError(t, s.ResetCurrent())
	require.Equal(t, 0, s.Index())
	require.Equal(t, 0, panels[0].Travel.Len())
	require.Equal(t, panels[0].ID, rec.presented[0])
}

func TestSession_Restart(t *testing.T) {
	s, _, panels := newTestSession(t, weldEverywhere, 2)
	ctx := context.Background()

	evaluate(t, s)
	for i := 0; i < 2; i++ {
		_, err := s.Advance(ctx)
		require.NoError(t, err)
	}
	require.True(t, s.Finished())

	require.NoError(t, s.Restart(ctx))
	require.False(t, s.Finished())
	require.Equal(t, 0, s.Index())
	require.True(t, panels[0].Active)

	overall, err := s.OverallScore(ctx)
	require.NoError(t, err)
	require.Equal(t, entity.WeldingScore{}, overall)
}

func TestSession_RegisterMarkers(t *testing.T) {
	s, _, panels := newTestSession(t, weldEverywhere, 1)
	require.NoError(t, s.RegisterMarkers(entity.NewMarker(entity.MarkerHole, 0)))
	require.Equal(t, 1, panels[0].Markers.Count(entity.MarkerHole))
}

func TestSession_NoPanels(t *testing.T) {
	scorer := NewPanelScorer(weldEverywhere, fixedStep(t, 0.25), nil, nil)
	s := NewSession(nil, scorer, storage.NewMemoryScoreRepository(), nil, nil)
	ctx := context.Background()

	_, _, err := s.EvaluateCurrent(ctx)
	require.ErrorIs(t, err, ErrNoPanels)
	_, err = s.Advance(ctx)
	require.ErrorIs(t, err, ErrNoPanels)
	require.ErrorIs(t, s.ResetCurrent(), ErrNoPanels)
	require.ErrorIs(t, s.Restart(ctx), ErrNoPanels)
	require.ErrorIs(t, s.RecordTravel(1), ErrNoPanels)
	_, err = s.CurrentPanel()
	require.ErrorIs(t, err, ErrNoPanels)
	require.Equal(t, entity.WeldingScore{}, s.CurrentScore())

	overall, err := s.OverallScore(ctx)
	require.NoError(t, err)
	require.Equal(t, entity.WeldingScore{}, overall)
}

func TestSession_StaleEvaluationDoesNotOverwrite(t *testing.T) {
	gate := newGateClock()
	rec := &recorder{}
	panel := straightPanel("p")
	repo := storage.NewMemoryScoreRepository()
	s := NewSession([]*entity.Panel{panel}, NewPanelScorer(weldEverywhere, gate, rec, nil), repo, rec, nil)
	ctx := context.Background()

	stale, _, err := s.EvaluateCurrent(ctx)
	require.NoError(t, err)
	gate.frames <- 0.25

	require.NoError(t, s.Restart(ctx))
	select {
	case <-stale.Done():
	case <-time.After(time.Second):
		t.Fatal("restart did not cancel the evaluation")
	}
	require.ErrorIs(t, stale.Err(), ErrEvaluationCancelled)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
	require.Equal(t, entity.WeldingScore{}, s.CurrentScore())
}

func TestSession_RestartDropsRegisteredMarkers(t *testing.T) {
	s, _, _ := newTestSession(t, weldEverywhere, 1)
	ctx := context.Background()

	require.NoError(t, s.RegisterMarkers(
		entity.NewMarker(entity.MarkerWeldMaterial, 0.2),
		entity.NewMarker(entity.MarkerWeldMaterial, 1),
	))
	_, err := s.Advance(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Restart(ctx))

	stats := evaluate(t, s)
	require.Zero(t, stats.Uniformity)
}

func TestSession_RestartKeepsConfiguredMarkers(t *testing.T) {
	rec := &recorder{}
	panel := straightPanel("p")
	panel.Markers.Add(
		entity.NewMarker(entity.MarkerWeldMaterial, 1),
		entity.Marker{Kind: entity.MarkerDefectGroup},
	)
	scorer := NewPanelScorer(weldEverywhere, fixedStep(t, 0.25), rec, nil)
	s := NewSession([]*entity.Panel{panel}, scorer, storage.NewMemoryScoreRepository(), rec, nil)
	ctx := context.Background()

	evaluate(t, s)
	require.Equal(t, entity.MarkerBad, panel.Markers.ByKind(entity.MarkerDefectGroup)[0].State)

	require.NoError(t, s.RegisterMarkers(entity.NewMarker(entity.MarkerWeldMaterial, 0.5)))
	require.NoError(t, s.Restart(ctx))

	require.Equal(t, []float64{1}, panel.Markers.Scales(entity.MarkerWeldMaterial))
	require.Equal(t, entity.MarkerPending, panel.Markers.ByKind(entity.MarkerDefectGroup)[0].State)

	stats := evaluate(t, s)
	require.Equal(t, 1.0, stats.Uniformity)
	require.Equal(t, 1, stats.BadWeldCount)
}

func TestSession_RestartDeactivatesCurrentPanel(t *testing.T) {
	s, rec, panels := newTestSession(t, weldEverywhere, 3)
	ctx := context.Background()

	_, err := s.Advance(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Restart(ctx))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Equal(t, []uuid.UUID{panels[0].ID, panels[1].ID}, rec.deactivated)
	require.Equal(t, []uuid.UUID{panels[0].ID, panels[1].ID, panels[0].ID}, rec.activated)
	require.False(t, panels[1].Active)
	require.True(t, panels[0].Active)
}
