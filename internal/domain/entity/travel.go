package entity

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// TravelLog журнал времени проводки по панели
type TravelLog struct {
	mu      sync.RWMutex
	samples []float64
}

// NewTravelLog создаёт пустой журнал
func NewTravelLog() *TravelLog {
	return &TravelLog{}
}

// Record добавляет замер времени проводки
func (l *TravelLog) Record(seconds float64) {
	l.mu.Lock()
	l.samples = append(l.samples, seconds)
	l.mu.Unlock()
}

// Reset очищает журнал перед повторной попыткой
func (l *TravelLog) Reset() {
	l.mu.Lock()
	l.samples = nil
	l.mu.Unlock()
}

// Len возвращает количество замеров
func (l *TravelLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.samples)
}

// Uniformity сравнивает среднее время проводки с эталоном.
// Пока замеров меньше MinTravelSamples, возвращает 0.
// Результат не ограничивается снизу: очень плохая проводка даёт отрицательное значение.
func (l *TravelLog) Uniformity() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.samples) < MinTravelSamples {
		return 0
	}
	mean := stat.Mean(l.samples, nil)
	return 1 - math.Abs(IdealTravelTime-mean)/IdealTravelTime
}
