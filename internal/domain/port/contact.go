package port

import (
	"gonum.org/v1/gonum/spatial/r3"

	"weld-score/internal/domain/entity"
)

// RaycastHit первое пересечение луча с поверхностью
type RaycastHit struct {
	Point    r3.Vec
	Distance float64
	Category entity.SurfaceCategory
}

// ContactQuerier геометрический запрос касания
type ContactQuerier interface {
	// Raycast пускает луч из origin в направлении dir и возвращает ближайшее пересечение
	Raycast(origin, dir r3.Vec) (RaycastHit, bool)
}
