package entity

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Panel одна свариваемая панель тренировки
type Panel struct {
	ID           uuid.UUID
	Name         string
	WeldType     WeldType
	Waypoints    []r3.Vec // контрольные точки пути сканера
	ScanUp       r3.Vec   // ось "вверх" сканера
	ScanDuration float64  // время прохода, сек
	Markers      *MarkerRegistry
	Travel       *TravelLog
	Active       bool
}

// NewPanel создаёт панель с пустыми реестром маркеров и журналом проводки
func NewPanel(name string, weldType WeldType, waypoints []r3.Vec) *Panel {
	return &Panel{
		ID:           uuid.New(),
		Name:         name,
		WeldType:     weldType,
		Waypoints:    waypoints,
		ScanUp:       r3.Vec{Y: 1},
		ScanDuration: DefaultScanDuration,
		Markers:      NewMarkerRegistry(),
		Travel:       NewTravelLog(),
	}
}

// Title возвращает имя панели с типом шва
func (p *Panel) Title() string {
	if p.WeldType == WeldTypeNone {
		return p.Name
	}
	return p.Name + " (" + p.WeldType.DisplayName() + ")"
}
