package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

const (
	minChartDimension = 200
	maxChartDimension = 4096
	maxSmoothing      = 31
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// SmoothingWindow is the moving-average width used when a request
	// enables smoothing without choosing one.
	SmoothingWindow int
	DefaultLocale   string

	// Chart rendering defaults.
	ChartWidth     int
	ChartHeight    int
	ChartCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	window, err := parseInt("SMOOTHING_WINDOW", 7)
	if err != nil {
		return nil, err
	}
	width, err := parseInt("CHART_WIDTH", 1024)
	if err != nil {
		return nil, err
	}
	height, err := parseInt("CHART_HEIGHT", 480)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseInt("CHART_CACHE_SIZE", 128)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		SmoothingWindow: window,
		DefaultLocale:   sharedcfg.EnvOrDefault("DEFAULT_LOCALE", "en"),
		ChartWidth:      width,
		ChartHeight:     height,
		ChartCacheSize:  cacheSize,
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	if cfg.SmoothingWindow < 1 || cfg.SmoothingWindow > maxSmoothing || cfg.SmoothingWindow%2 == 0 {
		return nil, errors.New("SMOOTHING_WINDOW must be an odd number between 1 and 31")
	}
	if cfg.DefaultLocale != "en" && cfg.DefaultLocale != "ru" {
		return nil, errors.New("DEFAULT_LOCALE must be en or ru")
	}
	if !validDimension(cfg.ChartWidth) {
		return nil, errors.New("CHART_WIDTH must be between 200 and 4096")
	}
	if !validDimension(cfg.ChartHeight) {
		return nil, errors.New("CHART_HEIGHT must be between 200 and 4096")
	}
	if cfg.ChartCacheSize <= 0 {
		return nil, errors.New("CHART_CACHE_SIZE must be positive")
	}

	return cfg, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

func validDimension(n int) bool {
	return n >= minChartDimension && n <= maxChartDimension
}
