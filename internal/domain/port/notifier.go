package port

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"weld-score/internal/domain/entity"
)

// Notifier передаёт события ядра слою представления (свет, звук, подсветка)
type Notifier interface {
	// SampleProbed вызывается на каждом замере прохода
	SampleProbed(panelID uuid.UUID, position r3.Vec, hit bool)

	// PassCompleted сообщает об окончании прохода сканера
	PassCompleted(panelID uuid.UUID, stats entity.WeldingStats)

	// MarkersReclassified сообщает о перекраске групп дефектов после задержки
	MarkersReclassified(panelID uuid.UUID, good, bad int)

	// PanelPresented просит заново подать панель (анимация опускания)
	PanelPresented(panelID uuid.UUID)

	// PanelActivated и PanelDeactivated переключают видимость панели
	PanelActivated(panelID uuid.UUID)
	PanelDeactivated(panelID uuid.UUID)

	// SessionRestarted сообщает, что все панели пройдены
	SessionRestarted()
}
