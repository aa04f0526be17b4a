package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"weld-score/internal/domain/entity"
)

func TestPanelScorer_AllHits(t *testing.T) {
	rec := &recorder{}
	scorer := NewPanelScorer(weldEverywhere, fixedStep(t, 0.25), rec, nil)
	panel := straightPanel("p1")

	ev, delay := scorer.Evaluate(context.Background(), panel, nil)
	require.Equal(t, 2.0, delay)

	stats, err := ev.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1.0, stats.Coverage)
	require.Equal(t, 100, entity.NewWeldingScore(stats).Coverage)

	hits, misses := rec.samples()
	require.Equal(t, 8, hits)
	require.Zero(t, misses)
	require.Len(t, rec.passes, 1)
}

func TestPanelScorer_AllMisses(t *testing.T) {
	rec := &recorder{}
	scorer := NewPanelScorer(nothingBelow, fixedStep(t, 0.25), rec, nil)

	ev, _ := scorer.Evaluate(context.Background(), straightPanel("p1"), nil)
	stats, err := ev.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0.0, stats.Coverage)
	require.Equal(t, 0, ev.Score().Coverage)

	hits, misses := rec.samples()
	require.Zero(t, hits)
	require.Equal(t, 8, misses)
}

func TestPanelScorer_NoWaypoints(t *testing.T) {
	scorer := NewPanelScorer(weldEverywhere, fixedStep(t, 0.25), nil, nil)
	panel := entity.NewPanel("empty", entity.WeldTypeNone, nil)

	ev, _ := scorer.Evaluate(context.Background(), panel, nil)
	stats, err := ev.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, entity.WeldingStats{}, stats)
}

func TestPanelScorer_MarkerMeasurements(t *testing.T) {
	rec := &recorder{}
	scorer := NewPanelScorer(weldEverywhere, fixedStep(t, 0.25), rec, nil)
	panel := straightPanel("p1")
	panel.Markers.Add(
		entity.NewMarker(entity.MarkerWeldMaterial, 0.6),
		entity.NewMarker(entity.MarkerWeldMaterial, 1.0),
		entity.Marker{Kind: entity.MarkerDefectGroup, InGoodRegion: true},
		entity.Marker{Kind: entity.MarkerDefectGroup},
	)
	for i := 0; i < 11; i++ {
		panel.Travel.Record(entity.IdealTravelTime)
	}

	var committed entity.WeldingStats
	ev, _ := scorer.Evaluate(context.Background(), panel, func(_ *Evaluation, stats entity.WeldingStats) {
		committed = stats
	})
	stats, err := ev.Wait(context.Background())
	require.NoError(t, err)

	require.InDelta(t, 0.8, stats.Uniformity, 1e-9)
	require.InDelta(t, 1.0, stats.Travel, 1e-9)
	require.Equal(t, 1, stats.BadWeldCount)
	require.Equal(t, 0, stats.HoleCount)
	require.Equal(t, stats, committed)
	require.Equal(t, 1, rec.good)
	require.Equal(t, 1, rec.bad)

	score := entity.NewWeldingScore(stats)
	require.Equal(t, entity.WeldingScore{Uniformity: 79, Coverage: 100, Travel: 100}, score)
}

func TestPanelScorer_HoleZeroesUniformity(t *testing.T) {
	scorer := NewPanelScorer(weldEverywhere, fixedStep(t, 0.25), nil, nil)
	panel := straightPanel("p1")
	panel.Markers.Add(
		entity.NewMarker(entity.MarkerWeldMaterial, 1),
		entity.NewMarker(entity.MarkerHole, 0),
		entity.NewMarker(entity.MarkerHole, 0),
	)

	ev, _ := scorer.Evaluate(context.Background(), panel, nil)
	stats, err := ev.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.HoleCount)
	require.Equal(t, 1.0, stats.Uniformity)
	require.Equal(t, 0, entity.NewWeldingScore(stats).Uniformity)
}

func TestPanelScorer_NewEvaluationCancelsPrevious(t *testing.T) {
	gate := newGateClock()
	scorer := NewPanelScorer(weldEverywhere, gate, nil, nil)
	panel := straightPanel("p1")

	commits := 0
	commit := func(*Evaluation, entity.WeldingStats) { commits++ }

	first, _ := scorer.Evaluate(context.Background(), panel, commit)
	gate.frames <- 0.25

	second, _ := scorer.Evaluate(context.Background(), panel, commit)

	select {
	case <-first.Done():
	case <-time.After(time.Second):
		t.Fatal("first evaluation was not cancelled")
	}
	require.ErrorIs(t, first.Err(), ErrEvaluationCancelled)
	_, err := first.Wait(context.Background())
	require.ErrorIs(t, err, ErrEvaluationCancelled)

	gate.pump(second, 0.25)
	close(gate.release)
	stats, err := second.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1.0, stats.Coverage)
	require.Equal(t, 1, commits)
}

func TestEvaluation_LiveStats(t *testing.T) {
	gate := newGateClock()
	scorer := NewPanelScorer(surface{category: entity.SurfaceWeldMaterial}, gate, nil, nil)
	panel := entity.NewPanel("p", entity.WeldTypeG1, []r3.Vec{{}, {X: 1}})
	panel.ScanDuration = 1

	ev, _ := scorer.Evaluate(context.Background(), panel, nil)
	gate.frames <- 0.25
	gate.frames <- 0.25

	require.Eventually(t, func() bool { return ev.coverage.Total() == 2 }, time.Second, time.Millisecond)
	require.Equal(t, 100, ev.Score().Coverage)

	select {
	case <-ev.Done():
		t.Fatal("evaluation finished early")
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := ev.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	ev.Cancel()
	<-ev.Done()
	require.ErrorIs(t, ev.Err(), ErrEvaluationCancelled)
}
