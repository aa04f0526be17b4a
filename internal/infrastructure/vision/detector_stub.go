//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"weld-score/internal/domain/entity"
)

// ErrGoCVDisabled возвращается сборкой без тега gocv
var ErrGoCVDisabled = errors.New("gocv build tag is not enabled")

type GoCVDetector struct{}

// NewGoCVDetector создаёт детектор-заглушку (без OpenCV).
func NewGoCVDetector() *GoCVDetector {
	return &GoCVDetector{}
}

// DetectBeads возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDetector) DetectBeads(ctx context.Context, imageData []byte) (*entity.BeadInspection, error) {
	return nil, ErrGoCVDisabled
}

// HighlightBeads возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDetector) HighlightBeads(imageData []byte, result *entity.BeadInspection) ([]byte, error) {
	return nil, ErrGoCVDisabled
}
