// Package physics отвечает на запросы касания по простой геометрии панелей.
package physics

import (
	"math"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
)

const epsilon = 1e-12

// Box параллелепипед, выровненный по осям
type Box struct {
	Min      r3.Vec
	Max      r3.Vec
	Category entity.SurfaceCategory
}

// intersect возвращает расстояние до входа луча в коробку.
// Луч, начинающийся внутри коробки, её не видит.
func (b Box) intersect(origin, dir r3.Vec) (float64, bool) {
	tmin, tmax := 0.0, math.Inf(1)
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	inside := true
	for i := 0; i < 3; i++ {
		if o[i] < lo[i] || o[i] > hi[i] {
			inside = false
		}
		if math.Abs(d[i]) < epsilon {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if inside {
		return 0, false
	}
	return tmin, true
}

// World набор поверхностей одной панели
type World struct {
	Boxes []Box
}

// Raycast возвращает ближайшее пересечение луча с поверхностями
func (w *World) Raycast(origin, dir r3.Vec) (port.RaycastHit, bool) {
	if r3.Norm(dir) < epsilon {
		return port.RaycastHit{}, false
	}
	dir = r3.Unit(dir)

	best := port.RaycastHit{Distance: math.Inf(1)}
	found := false
	for _, b := range w.Boxes {
		dist, ok := b.intersect(origin, dir)
		if !ok || dist >= best.Distance {
			continue
		}
		best = port.RaycastHit{
			Point:    r3.Add(origin, r3.Scale(dist, dir)),
			Distance: dist,
			Category: b.Category,
		}
		found = true
	}
	return best, found
}

// Scene объединяет миры панелей; лучи видят только включённые панели
type Scene struct {
	mu      sync.RWMutex
	worlds  map[uuid.UUID]*World
	enabled map[uuid.UUID]bool
}

// NewScene создаёт пустую сцену
func NewScene() *Scene {
	return &Scene{
		worlds:  make(map[uuid.UUID]*World),
		enabled: make(map[uuid.UUID]bool),
	}
}

// Add регистрирует геометрию панели, по умолчанию выключенной
func (s *Scene) Add(panelID uuid.UUID, world *World) {
	s.mu.Lock()
	s.worlds[panelID] = world
	s.mu.Unlock()
}

// SetEnabled включает или выключает геометрию панели
func (s *Scene) SetEnabled(panelID uuid.UUID, enabled bool) {
	s.mu.Lock()
	s.enabled[panelID] = enabled
	s.mu.Unlock()
}

// Raycast ищет ближайшее пересечение среди включённых панелей
func (s *Scene) Raycast(origin, dir r3.Vec) (port.RaycastHit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best port.RaycastHit
	found := false
	for id, w := range s.worlds {
		if !s.enabled[id] {
			continue
		}
		hit, ok := w.Raycast(origin, dir)
		if ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	}
	return best, found
}

var (
	_ port.ContactQuerier = (*World)(nil)
	_ port.ContactQuerier = (*Scene)(nil)
)
