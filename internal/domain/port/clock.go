package port

import "context"

// FrameClock задаёт темп прохода сканера по кадрам
type FrameClock interface {
	// Next блокируется до следующего кадра и возвращает его длительность в секундах
	Next(ctx context.Context) (float64, error)

	// Wait блокируется на заданное число секунд
	Wait(ctx context.Context, seconds float64) error
}
