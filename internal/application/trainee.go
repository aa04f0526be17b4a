package app

import (
	"context"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
)

type TraineeService struct {
	repo port.TraineeRepository
}

func NewTraineeService(repo port.TraineeRepository) *TraineeService {
	return &TraineeService{repo: repo}
}

func (s *TraineeService) Get(ctx context.Context, userID, chatID int64) (*entity.Trainee, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *TraineeService) SetState(ctx context.Context, userID, chatID int64, state entity.TraineeState) (*entity.Trainee, error) {
	trainee, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	trainee.SetState(state)
	if err := s.repo.Save(ctx, trainee); err != nil {
		return nil, err
	}

	return trainee, nil
}

func (s *TraineeService) AwaitBeadPhoto(ctx context.Context, userID, chatID int64) (*entity.Trainee, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingBeadPhoto)
}

func (s *TraineeService) Cancel(ctx context.Context, userID, chatID int64) (*entity.Trainee, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}
