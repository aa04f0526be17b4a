package app

import (
	"gonum.org/v1/gonum/spatial/r3"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
)

// ContactProbe проверяет, есть ли наплавка прямо под точкой замера
type ContactProbe struct {
	physics port.ContactQuerier
	gap     float64
}

// NewContactProbe создаёт зонд с отступом ProbeGap
func NewContactProbe(physics port.ContactQuerier) *ContactProbe {
	return &ContactProbe{physics: physics, gap: entity.ProbeGap}
}

// Probe пускает луч из position+up*gap вниз по -up.
// Промах или попадание в другую поверхность дают false.
func (p *ContactProbe) Probe(position, up r3.Vec) bool {
	if p.physics == nil || r3.Norm(up) == 0 {
		return false
	}
	up = r3.Unit(up)
	origin := r3.Add(position, r3.Scale(p.gap, up))
	hit, ok := p.physics.Raycast(origin, r3.Scale(-1, up))
	return ok && hit.Category == entity.SurfaceWeldMaterial
}
