package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppHost string
	AppPort string

	DatabaseDSN string

	JWTSecret []byte
	JWTTTL    time.Duration

	RateLimitPerMinute int
	TaskPageSize       int

	ReschedulerCmd     []string
	ReschedulerTimeout time.Duration

	RedisAddr          string
	LeaderboardKey     string
	LeaderboardResyncAt string

	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	cmd := strings.Fields(envOr("RESCHEDULER_CMD", "python3 reschedule.py"))
	if len(cmd) == 0 {
		return nil, fmt.Errorf("RESCHEDULER_CMD must not be empty")
	}

	cfg := &Config{
		AppHost:             envOr("APP_HOST", "0.0.0.0"),
		AppPort:             envOr("APP_PORT", "8080"),
		DatabaseDSN:         envOr("DATABASE_DSN", "tasks.db"),
		JWTSecret:           []byte(secret),
		JWTTTL:              time.Duration(envIntOr("JWT_TTL_HOURS", 24)) * time.Hour,
		RateLimitPerMinute:  envIntOr("RATE_LIMIT_PER_MINUTE", 120),
		TaskPageSize:        envIntOr("TASK_PAGE_SIZE", 5),
		ReschedulerCmd:      cmd,
		ReschedulerTimeout:  time.Duration(envIntOr("RESCHEDULER_TIMEOUT_SECONDS", 30)) * time.Second,
		RedisAddr:           envOr("REDIS_HOST", "127.0.0.1") + ":" + envOr("REDIS_PORT", "6379"),
		LeaderboardKey:      envOr("LEADERBOARD_KEY", "mood-planner:streaks"),
		LeaderboardResyncAt: envOr("LEADERBOARD_RESYNC_AT", "03:30"),
		ShutdownTimeout:     time.Duration(envIntOr("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
