package container

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weld-score/config"
	app "weld-score/internal/application"
	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
	"weld-score/internal/infrastructure/events"
	"weld-score/internal/infrastructure/physics"
	"weld-score/internal/infrastructure/storage"
)

// ClockFactory создаёт часы для новой сессии
type ClockFactory func() (port.FrameClock, error)

type Container struct {
	TraineeService    *app.TraineeService
	InspectionService *app.InspectionService
	TrainingService   *app.TrainingService

	specs   []config.PanelSpec
	clocks  ClockFactory
	scoreDB *sql.DB
	logger  *zap.Logger
}

// New собирает сервисы приложения. Если scoreDB nil, оценки хранятся в памяти.
func New(
	specs []config.PanelSpec,
	traineeRepo port.TraineeRepository,
	detector port.BeadDetector,
	clocks ClockFactory,
	scoreDB *sql.DB,
	logger *zap.Logger,
) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}

	traineeService := app.NewTraineeService(traineeRepo)
	c := &Container{
		TraineeService:    traineeService,
		InspectionService: app.NewInspectionService(traineeService, detector),
		specs:             specs,
		clocks:            clocks,
		scoreDB:           scoreDB,
		logger:            logger,
	}
	c.TrainingService = app.NewTrainingService(c.NewSession)
	return c
}

// NewSession собирает сессию: свои панели, своя сцена и шина событий
func (c *Container) NewSession(ctx context.Context) (*app.Session, error) {
	sessionID := uuid.New()
	log := c.logger.With(zap.Stringer("session_id", sessionID))

	frameClock, err := c.clocks()
	if err != nil {
		return nil, fmt.Errorf("create clock: %w", err)
	}

	scene := physics.NewScene()
	panels := make([]*entity.Panel, 0, len(c.specs))
	for _, spec := range c.specs {
		panel, err := spec.Panel()
		if err != nil {
			return nil, fmt.Errorf("panel %s: %w", spec.Name, err)
		}
		scene.Add(panel.ID, buildWorld(spec))
		panels = append(panels, panel)
	}

	bus := events.New()
	if err := subscribe(bus, scene, log); err != nil {
		return nil, err
	}

	scorer := app.NewPanelScorer(scene, frameClock, bus, log)
	return app.NewSession(panels, scorer, c.scoreRepository(sessionID), bus, log), nil
}

func (c *Container) scoreRepository(sessionID uuid.UUID) port.ScoreRepository {
	if c.scoreDB == nil {
		return storage.NewMemoryScoreRepository()
	}
	return storage.NewSQLiteScoreRepository(c.scoreDB, sessionID.String())
}

func buildWorld(spec config.PanelSpec) *physics.World {
	world := &physics.World{Boxes: make([]physics.Box, 0, len(spec.Surfaces))}
	for _, s := range spec.Surfaces {
		world.Boxes = append(world.Boxes, physics.Box{
			Min:      s.Min.Vec(),
			Max:      s.Max.Vec(),
			Category: s.Category(),
		})
	}
	return world
}

// subscribe включает геометрию активной панели и пишет события оценки в лог
func subscribe(bus *events.Bus, scene *physics.Scene, log *zap.Logger) error {
	handlers := map[string]interface{}{
		events.TopicPanelActivated: func(e events.PanelEvent) {
			scene.SetEnabled(e.PanelID, true)
		},
		events.TopicPanelDeactivate: func(e events.PanelEvent) {
			scene.SetEnabled(e.PanelID, false)
		},
		events.TopicSample: func(e events.SampleEvent) {
			log.Debug("scan sample",
				zap.Stringer("panel_id", e.PanelID),
				zap.Float64("x", e.Position.X),
				zap.Float64("y", e.Position.Y),
				zap.Float64("z", e.Position.Z),
				zap.Bool("hit", e.Hit),
			)
		},
		events.TopicMarkers: func(e events.MarkersEvent) {
			log.Info("defect markers reclassified",
				zap.Stringer("panel_id", e.PanelID),
				zap.Int("good", e.Good),
				zap.Int("bad", e.Bad),
			)
		},
		events.TopicSessionRestart: func() {
			log.Info("session finished, waiting for restart")
		},
	}
	for topic, handler := range handlers {
		if err := bus.Subscribe(topic, handler); err != nil {
			return err
		}
	}
	return nil
}
