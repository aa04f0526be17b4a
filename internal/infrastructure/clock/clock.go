// Package clock задаёт темп прохода сканера.
package clock

import (
	"context"
	"errors"
	"sync"
	"time"

	"weld-score/internal/domain/port"
)

// Ticker выдаёт кадры с фиксированной частотой по реальному времени
type Ticker struct {
	frame time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewTicker создаёт часы на rate кадров в секунду
func NewTicker(rate int) (*Ticker, error) {
	if rate <= 0 {
		return nil, errors.New("frame rate must be positive")
	}
	return &Ticker{frame: time.Second / time.Duration(rate)}, nil
}

// Next ждёт один кадр и возвращает фактически прошедшее время.
// Первый кадр после паузы считается номинальным.
func (t *Ticker) Next(ctx context.Context) (float64, error) {
	timer := time.NewTimer(t.frame)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case now := <-timer.C:
		t.mu.Lock()
		defer t.mu.Unlock()
		dt := t.frame
		if !t.last.IsZero() && now.Sub(t.last) < 4*t.frame {
			dt = now.Sub(t.last)
		}
		t.last = now
		return dt.Seconds(), nil
	}
}

// Wait ждёт заданное число секунд
func (t *Ticker) Wait(ctx context.Context, seconds float64) error {
	timer := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FixedStep выдаёт кадры фиксированной длины без ожидания.
// Используется для воспроизводимых прогонов и в тестах.
type FixedStep struct {
	step float64

	mu      sync.Mutex
	elapsed float64
}

// NewFixedStep создаёт часы с шагом step секунд
func NewFixedStep(step float64) (*FixedStep, error) {
	if step <= 0 {
		return nil, errors.New("step must be positive")
	}
	return &FixedStep{step: step}, nil
}

func (f *FixedStep) Next(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	f.elapsed += f.step
	f.mu.Unlock()
	return f.step, nil
}

func (f *FixedStep) Wait(ctx context.Context, seconds float64) error {
	return ctx.Err()
}

// Elapsed возвращает суммарное время выданных кадров
func (f *FixedStep) Elapsed() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.elapsed
}

var (
	_ port.FrameClock = (*Ticker)(nil)
	_ port.FrameClock = (*FixedStep)(nil)
)
