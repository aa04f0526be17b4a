package entity

import (
	"sync"

	"github.com/google/uuid"
)

// MarkerKind классификация маркеров на панели
type MarkerKind string

const (
	MarkerWeldMaterial MarkerKind = "weld-material-marker" // валик наплавки
	MarkerHole         MarkerKind = "hole-marker"          // прожог
	MarkerDefectGroup  MarkerKind = "defect-marker-group"  // группа брызг/наплывов
)

// MarkerState итог переклассификации дефектных маркеров
type MarkerState string

const (
	MarkerPending MarkerState = "pending"
	MarkerGood    MarkerState = "good"
	MarkerBad     MarkerState = "bad"
)

// Marker представляет объект-маркер на панели
type Marker struct {
	ID           uuid.UUID
	Kind         MarkerKind
	Scale        float64 // размер валика по оси шва
	InGoodRegion bool    // лежит внутри допустимой зоны шва
	State        MarkerState
}

// NewMarker создаёт маркер с новым идентификатором
func NewMarker(kind MarkerKind, scale float64) Marker {
	return Marker{
		ID:    uuid.New(),
		Kind:  kind,
		Scale: scale,
		State: MarkerPending,
	}
}

// MarkerRegistry хранит маркеры одной панели по классификации
type MarkerRegistry struct {
	mu     sync.RWMutex
	byKind map[MarkerKind][]Marker
}

// NewMarkerRegistry создаёт пустой реестр
func NewMarkerRegistry() *MarkerRegistry {
	return &MarkerRegistry{byKind: make(map[MarkerKind][]Marker)}
}

// Add добавляет маркеры в реестр
func (r *MarkerRegistry) Add(markers ...Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range markers {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if m.State == "" {
			m.State = MarkerPending
		}
		r.byKind[m.Kind] = append(r.byKind[m.Kind], m)
	}
}

// ByKind возвращает копию маркеров заданного вида
func (r *MarkerRegistry) ByKind(kind MarkerKind) []Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Marker, len(r.byKind[kind]))
	copy(out, r.byKind[kind])
	return out
}

// Count возвращает количество маркеров заданного вида
func (r *MarkerRegistry) Count(kind MarkerKind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKind[kind])
}

// Scales возвращает размеры маркеров заданного вида
func (r *MarkerRegistry) Scales(kind MarkerKind) []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scales := make([]float64, 0, len(r.byKind[kind]))
	for _, m := range r.byKind[kind] {
		scales = append(scales, m.Scale)
	}
	return scales
}

// Reclassify помечает группы дефектов внутри допустимой зоны как good,
// остальные как bad.
func (r *MarkerRegistry) Reclassify() (good, bad int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	groups := r.byKind[MarkerDefectGroup]
	for i := range groups {
		if groups[i].InGoodRegion {
			groups[i].State = MarkerGood
			good++
		} else {
			groups[i].State = MarkerBad
			bad++
		}
	}
	return good, bad
}

// All возвращает копию всех маркеров реестра
func (r *MarkerRegistry) All() []Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Marker
	for _, kind := range []MarkerKind{MarkerWeldMaterial, MarkerHole, MarkerDefectGroup} {
		out = append(out, r.byKind[kind]...)
	}
	return out
}

// Reset заменяет содержимое реестра, все маркеры снова в состоянии pending
func (r *MarkerRegistry) Reset(markers ...Marker) {
	r.mu.Lock()
	r.byKind = make(map[MarkerKind][]Marker)
	r.mu.Unlock()
	for _, m := range markers {
		m.State = MarkerPending
		r.Add(m)
	}
}

// Clear удаляет все маркеры
func (r *MarkerRegistry) Clear() {
	r.mu.Lock()
	r.byKind = make(map[MarkerKind][]Marker)
	r.mu.Unlock()
}
