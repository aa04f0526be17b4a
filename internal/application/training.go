package app

import (
	"context"
	"sync"
)

// SessionFactory собирает новую сессию со своими панелями
type SessionFactory func(ctx context.Context) (*Session, error)

// TrainingService держит по одной сессии на сварщика
type TrainingService struct {
	factory SessionFactory

	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewTrainingService(factory SessionFactory) *TrainingService {
	return &TrainingService{
		factory:  factory,
		sessions: make(map[int64]*Session),
	}
}

// Session возвращает сессию сварщика, создаёт новую при первом обращении
func (s *TrainingService) Session(ctx context.Context, userID int64) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[userID]; ok {
		return session, nil
	}
	session, err := s.factory(ctx)
	if err != nil {
		return nil, err
	}
	s.sessions[userID] = session
	return session, nil
}

// Drop забывает сессию сварщика; следующая будет собрана заново
func (s *TrainingService) Drop(userID int64) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}
