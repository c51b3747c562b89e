package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config carries the engine's runtime defaults. Division records
// override the durations per division; these values seed new divisions
// and drive logging.
type Config struct {
	DefaultMatchMinutes int
	DefaultBreakMinutes int
	DoubleRoundRobin    bool
	LogLevel            zapcore.Level
}

// Load reads configuration from the environment, optionally via a .env
// file for local development. A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	matchMinutes, err := getEnvAsInt("ENGINE_MATCH_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_MATCH_MINUTES: %w", err)
	}
	if matchMinutes <= 0 || matchMinutes > 24*60 {
		return nil, fmt.Errorf("ENGINE_MATCH_MINUTES must be between 1 and %d, got %d", 24*60, matchMinutes)
	}

	breakMinutes, err := getEnvAsInt("ENGINE_BREAK_MINUTES", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_BREAK_MINUTES: %w", err)
	}
	if breakMinutes < 0 {
		return nil, fmt.Errorf("ENGINE_BREAK_MINUTES must not be negative, got %d", breakMinutes)
	}

	doubleRound := false
	if raw := strings.TrimSpace(os.Getenv("ENGINE_DOUBLE_ROUND_ROBIN")); raw != "" {
		doubleRound, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ENGINE_DOUBLE_ROUND_ROBIN: %w", err)
		}
	}

	return &Config{
		DefaultMatchMinutes: matchMinutes,
		DefaultBreakMinutes: breakMinutes,
		DoubleRoundRobin:    doubleRound,
		LogLevel:            parseLogLevel(os.Getenv("ENGINE_LOG_LEVEL")),
	}, nil
}

// NewLogger builds a production JSON logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	return zc.Build()
}

func parseLogLevel(v string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}
