package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 7, cfg.SmoothingWindow)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, 1024, cfg.ChartWidth)
	assert.Equal(t, 480, cfg.ChartHeight)
	assert.Equal(t, 128, cfg.ChartCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("SMOOTHING_WINDOW", "5")
	t.Setenv("DEFAULT_LOCALE", "ru")
	t.Setenv("CHART_WIDTH", "800")
	t.Setenv("CHART_HEIGHT", "300")
	t.Setenv("CHART_CACHE_SIZE", "16")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5, cfg.SmoothingWindow)
	assert.Equal(t, "ru", cfg.DefaultLocale)
	assert.Equal(t, 800, cfg.ChartWidth)
	assert.Equal(t, 300, cfg.ChartHeight)
	assert.Equal(t, 16, cfg.ChartCacheSize)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SMOOTHING_WINDOW", "abc"},
		{"SMOOTHING_WINDOW", "4"},
		{"SMOOTHING_WINDOW", "0"},
		{"SMOOTHING_WINDOW", "33"},
		{"DEFAULT_LOCALE", "de"},
		{"CHART_WIDTH", "100"},
		{"CHART_WIDTH", "wide"},
		{"CHART_HEIGHT", "5000"},
		{"CHART_CACHE_SIZE", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_WindowOneAllowed(t *testing.T) {
	t.Setenv("SMOOTHING_WINDOW", "1")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.SmoothingWindow)
}
