package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"lifesim/internal/game"
)

// Config holds the runtime knobs for the life CLI.
type Config struct {
	SavePath      string
	FeedbackDelay time.Duration
	Seed          int64 // 0 seeds from the wall clock
	LogLevel      slog.Level
}

// LoadFromEnv reads configuration from the environment, falling back to
// sensible defaults. savePathDefault covers the case where the home
// directory cannot be resolved.
func LoadFromEnv(savePathDefault string) Config {
	return Config{
		SavePath:      envDefault("LIFE_SAVE_PATH", savePathDefault),
		FeedbackDelay: envDurationDefault("LIFE_FEEDBACK_DELAY", game.FeedbackDelay),
		Seed:          envInt64Default("LIFE_SEED", 0),
		LogLevel:      envLevelDefault("LIFE_LOG_LEVEL", slog.LevelWarn),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envLevelDefault(key string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
