package app

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"weld-score/internal/domain/entity"
)

type nopNotifier struct{}

func (nopNotifier) SampleProbed(uuid.UUID, r3.Vec, bool) {}
func (nopNotifier) PassCompleted(uuid.UUID, entity.WeldingStats) {}
func (nopNotifier) MarkersReclassified(uuid.UUID, int, int) {}
func (nopNotifier) PanelPresented(uuid.UUID) {}
func (nopNotifier) PanelActivated(uuid.UUID) {}
func (nopNotifier) PanelDeactivated(uuid.UUID) {}
func (nopNotifier) SessionRestarted() {}
