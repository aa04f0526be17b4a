// Package events публикует события оценки для слоя представления.
package events

import (
	"fmt"

	evbus "github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
)

// Топики шины
const (
	TopicSample          = "weld:sample"
	TopicPassCompleted   = "weld:pass"
	TopicMarkers         = "weld:markers"
	TopicPanelPresented  = "panel:present"
	TopicPanelActivated  = "panel:activate"
	TopicPanelDeactivate = "panel:deactivate"
	TopicSessionRestart  = "session:restart"
)

// SampleEvent замер сканера: попадание включает зелёный свет и обычный тон
type SampleEvent struct {
	PanelID  uuid.UUID
	Position r3.Vec
	Hit      bool
}

// PassEvent окончание прохода, индикатор сканера можно убрать
type PassEvent struct {
	PanelID uuid.UUID
	Stats   entity.WeldingStats
}

// MarkersEvent перекраска групп дефектов
type MarkersEvent struct {
	PanelID uuid.UUID
	Good    int
	Bad     int
}

// PanelEvent смена видимости или повторная подача панели
type PanelEvent struct {
	PanelID uuid.UUID
}

// Bus реализует port.Notifier поверх asaskevich/EventBus
type Bus struct {
	bus evbus.Bus
}

// New создаёт шину событий
func New() *Bus {
	return &Bus{bus: evbus.New()}
}

// Subscribe подписывает синхронный обработчик. Обработчик получает событие
// того типа, который публикуется в топик.
func (b *Bus) Subscribe(topic string, handler interface{}) error {
	if err := b.bus.Subscribe(topic, handler); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

// SubscribeAsync подписывает обработчик, который выполняется в отдельной горутине
func (b *Bus) SubscribeAsync(topic string, handler interface{}) error {
	if err := b.bus.SubscribeAsync(topic, handler, false); err != nil {
		return fmt.Errorf("subscribe async %s: %w", topic, err)
	}
	return nil
}

// Unsubscribe снимает обработчик
func (b *Bus) Unsubscribe(topic string, handler interface{}) error {
	if err := b.bus.Unsubscribe(topic, handler); err != nil {
		return fmt.Errorf("unsubscribe %s: %w", topic, err)
	}
	return nil
}

// WaitAsync дожидается асинхронных обработчиков
func (b *Bus) WaitAsync() {
	b.bus.WaitAsync()
}

func (b *Bus) SampleProbed(panelID uuid.UUID, position r3.Vec, hit bool) {
	b.bus.Publish(TopicSample, SampleEvent{PanelID: panelID, Position: position, Hit: hit})
}

func (b *Bus) PassCompleted(panelID uuid.UUID, stats entity.WeldingStats) {
	b.bus.Publish(TopicPassCompleted, PassEvent{PanelID: panelID, Stats: stats})
}

func (b *Bus) MarkersReclassified(panelID uuid.UUID, good, bad int) {
	b.bus.Publish(TopicMarkers, MarkersEvent{PanelID: panelID, Good: good, Bad: bad})
}

func (b *Bus) PanelPresented(panelID uuid.UUID) {
	b.bus.Publish(TopicPanelPresented, PanelEvent{PanelID: panelID})
}

func (b *Bus) PanelActivated(panelID uuid.UUID) {
	b.bus.Publish(TopicPanelActivated, PanelEvent{PanelID: panelID})
}

func (b *Bus) PanelDeactivated(panelID uuid.UUID) {
	b.bus.Publish(TopicPanelDeactivate, PanelEvent{PanelID: panelID})
}

func (b *Bus) SessionRestarted() {
	b.bus.Publish(TopicSessionRestart)
}

var _ port.Notifier = (*Bus)(nil)
