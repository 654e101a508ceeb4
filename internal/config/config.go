package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	SaveWorkerCount   int
	SaveQueueSize     int
	DefaultTargetDays int
	StatsWindowDays   int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:flashdeck.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		SaveWorkerCount:   envIntOr("SAVE_WORKER_COUNT", 1),
		SaveQueueSize:     envIntOr("SAVE_QUEUE_SIZE", 64),
		DefaultTargetDays: envIntOr("DEFAULT_TARGET_DAYS", 14),
		StatsWindowDays:   envIntOr("STATS_WINDOW_DAYS", 30),
	}
}

// Validate checks the configuration and returns an error listing every
// invalid field.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}

	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}

	if c.SaveWorkerCount < 1 {
		problems = append(problems, fmt.Sprintf("SAVE_WORKER_COUNT must be at least 1, got %d", c.SaveWorkerCount))
	}
	if c.SaveQueueSize < 1 {
		problems = append(problems, fmt.Sprintf("SAVE_QUEUE_SIZE must be at least 1, got %d", c.SaveQueueSize))
	}
	if c.DefaultTargetDays < 2 {
		problems = append(problems, fmt.Sprintf("DEFAULT_TARGET_DAYS must be at least 2, got %d", c.DefaultTargetDays))
	}
	if c.StatsWindowDays < 1 {
		problems = append(problems, fmt.Sprintf("STATS_WINDOW_DAYS must be at least 1, got %d", c.StatsWindowDays))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
