package port

import (
	"context"

	"weld-score/internal/domain/entity"
)

// BeadDetector интерфейс детектора валиков на фото панели
type BeadDetector interface {
	// DetectBeads анализирует изображение и возвращает найденные валики
	DetectBeads(ctx context.Context, imageData []byte) (*entity.BeadInspection, error)

	// HighlightBeads создаёт изображение с подсветкой валиков
	HighlightBeads(imageData []byte, result *entity.BeadInspection) ([]byte, error)
}
