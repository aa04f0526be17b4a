package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("PANELS_FILE", "")
	t.Setenv("SCORE_DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("FRAME_RATE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "token", cfg.TelegramToken)
	require.Equal(t, defaultPanelsFile, cfg.PanelsFile)
	require.Equal(t, defaultLogLevel, cfg.LogLevel)
	require.Equal(t, defaultFrameRate, cfg.FrameRate)
	require.Empty(t, cfg.ScoreDBPath)
}

func TestLoad_FrameRate(t *testing.T) {
	t.Setenv("FRAME_RATE", "30")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30, cfg.FrameRate)

	t.Setenv("FRAME_RATE", "fast")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("FRAME_RATE", "-1")
	_, err = Load()
	require.Error(t, err)
}
