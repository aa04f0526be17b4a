package app

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
	"weld-score/internal/infrastructure/clock"
)

// surface отвечает на каждый луч одной и той же категорией
type surface struct {
	category entity.SurfaceCategory
	miss     bool
}

func (s surface) Raycast(origin, dir r3.Vec) (port.RaycastHit, bool) {
	if s.miss {
		return port.RaycastHit{}, false
	}
	return port.RaycastHit{Point: origin, Category: s.category}, true
}

var (
	weldEverywhere = surface{category: entity.SurfaceWeldMaterial}
	nothingBelow   = surface{miss: true}
)

// gateClock отдаёт кадры только по команде теста
type gateClock struct {
	frames  chan float64
	release chan struct{}
}

func newGateClock() *gateClock {
	return &gateClock{frames: make(chan float64), release: make(chan struct{})}
}

func (c *gateClock) Next(ctx context.Context) (float64, error) {
	select {
	case dt := <-c.frames:
		return dt, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (c *gateClock) Wait(ctx context.Context, seconds float64) error {
	select {
	case <-c.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pump отдаёт кадры, пока оценка не завершится
func (c *gateClock) pump(ev *Evaluation, dt float64) {
	go func() {
		for {
			select {
			case c.frames <- dt:
			case <-ev.Done():
				return
			}
		}
	}()
}

type recorder struct {
	mu          sync.Mutex
	hits        int
	misses      int
	passes      []entity.WeldingStats
	good, bad   int
	presented   []uuid.UUID
	activated   []uuid.UUID
	deactivated []uuid.UUID
	restarts    int
}

func (r *recorder) SampleProbed(_ uuid.UUID, _ r3.Vec, hit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hit {
		r.hits++
	} else {
		r.misses++
	}
}

func (r *recorder) PassCompleted(_ uuid.UUID, stats entity.WeldingStats) {
	r.mu.Lock()
	r.passes = append(r.passes, stats)
	r.mu.Unlock()
}

func (r *recorder) MarkersReclassified(_ uuid.UUID, good, bad int) {
	r.mu.Lock()
	r.good, r.bad = good, bad
	r.mu.Unlock()
}

func (r *recorder) PanelPresented(id uuid.UUID) {
	r.mu.Lock()
	r.presented = append(r.presented, id)
	r.mu.Unlock()
}

func (r *recorder) PanelActivated(id uuid.UUID) {
	r.mu.Lock()
	r.activated = append(r.activated, id)
	r.mu.Unlock()
}

func (r *recorder) PanelDeactivated(id uuid.UUID) {
	r.mu.Lock()
	r.deactivated = append(r.deactivated, id)
	r.mu.Unlock()
}

func (r *recorder) SessionRestarted() {
	r.mu.Lock()
	r.restarts++
	r.mu.Unlock()
}

func (r *recorder) samples() (hits, misses int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits, r.misses
}

func fixedStep(t *testing.T, step float64) *clock.FixedStep {
	t.Helper()
	c, err := clock.NewFixedStep(step)
	require.NoError(t, err)
	return c
}

func straightPanel(name string) *entity.Panel {
	p := entity.NewPanel(name, entity.WeldTypeF1, []r3.Vec{{}, {X: 1}, {X: 2}})
	p.ScanDuration = 2
	return p
}
