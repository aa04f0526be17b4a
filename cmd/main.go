package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"weld-score/config"
	telegram "weld-score/internal/api"
	"weld-score/internal/container"
	"weld-score/internal/domain/port"
	"weld-score/internal/infrastructure/clock"
	"weld-score/internal/infrastructure/storage"
	"weld-score/internal/infrastructure/vision"
	"weld-score/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()

	if cfg.TelegramToken == "" {
		lg.Fatal("TELEGRAM_TOKEN is required")
	}

	// Без файла раскладки бот работает, но каждая сессия сообщает об отсутствии панелей
	specs, err := config.LoadPanels(cfg.PanelsFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		lg.Error("panels file not found", zap.String("path", cfg.PanelsFile))
	case err != nil:
		lg.Fatal("failed to load panels", zap.String("path", cfg.PanelsFile), zap.Error(err))
	default:
		lg.Info("panels loaded", zap.Int("count", len(specs)))
	}

	var scoreDB *sql.DB
	if cfg.ScoreDBPath != "" {
		scoreDB, err = storage.OpenScoreDB(cfg.ScoreDBPath)
		if err != nil {
			lg.Fatal("failed to open score db", zap.Error(err))
		}
		defer scoreDB.Close()
	}

	clocks := func() (port.FrameClock, error) {
		return clock.NewTicker(cfg.FrameRate)
	}

	appContainer := container.New(
		specs,
		storage.NewMemoryTraineeRepository(),
		vision.NewGoCVDetector(),
		clocks,
		scoreDB,
		lg,
	)

	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, lg)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("bot is running")
	if err := bot.Run(ctx); err != nil {
		lg.Fatal("bot error", zap.Error(err))
	}
}
