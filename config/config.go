package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultPanelsFile = "config/panels.yaml"
	defaultLogLevel   = "info"
	defaultFrameRate  = 60
)

type Config struct {
	TelegramToken string
	PanelsFile    string // раскладка панелей
	ScoreDBPath   string // пусто - оценки хранятся в памяти
	LogLevel      string
	FrameRate     int // кадров в секунду для прохода сканера
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		PanelsFile:    getEnv("PANELS_FILE", defaultPanelsFile),
		ScoreDBPath:   os.Getenv("SCORE_DB_PATH"),
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel),
		FrameRate:     defaultFrameRate,
	}

	if raw := os.Getenv("FRAME_RATE"); raw != "" {
		rate, err := strconv.Atoi(raw)
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("invalid FRAME_RATE %q", raw)
		}
		cfg.FrameRate = rate
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
