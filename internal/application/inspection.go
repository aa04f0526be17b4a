package app

import (
	"context"
	"errors"
	"fmt"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
)

// InspectionOutput содержит найденные валики и картинку с подсветкой.
type InspectionOutput struct {
	Result      *entity.BeadInspection
	Markers     int
	Highlighted []byte
}

type InspectionService struct {
	trainees *TraineeService
	detector port.BeadDetector
}

// NewInspectionService создаёт сервис, который превращает фото валиков в маркеры панели.
func NewInspectionService(trainees *TraineeService, detector port.BeadDetector) *InspectionService {
	return &InspectionService{
		trainees: trainees,
		detector: detector,
	}
}

// ProcessBeadPhoto находит валики на фото и добавляет их маркерами на текущую панель сессии.
// Сварщик в любом случае возвращается в главное меню.
func (s *InspectionService) ProcessBeadPhoto(ctx context.Context, userID, chatID int64, session *Session, photo []byte) (*InspectionOutput, error) {
	defer s.trainees.Cancel(ctx, userID, chatID)

	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}

	result, err := s.detector.DetectBeads(ctx, photo)
	if err != nil {
		return nil, fmt.Errorf("detect beads: %w", err)
	}

	markers := result.Markers()
	if err := session.RegisterMarkers(markers...); err != nil {
		return nil, err
	}

	var highlighted []byte
	if len(result.Beads) > 0 {
		highlighted, _ = s.detector.HighlightBeads(photo, result)
	}

	return &InspectionOutput{Result: result, Markers: len(markers), Highlighted: highlighted}, nil
}
