package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultJWTAccessTTL  = "24h"
	defaultDraftTTL      = "720h" // 30 days, matches the abandoned-draft reminder window
	defaultReminderAfter = "72h"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultPublicBaseURL = "http://localhost:3000"
	defaultListenAddr    = ":8080"
)

// RuntimeConfig holds the env-driven settings for the intake service.
type RuntimeConfig struct {
	AppEnv        string
	ListenAddr    string
	JWTSecret     string
	JWTAccessTTL  time.Duration
	DraftTTL      time.Duration
	ReminderAfter time.Duration
	PublicBaseURL string
}

func Load() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("PUBLIC_BASE_URL", defaultPublicBaseURL)), "/")

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.DraftTTL, err = parseDurationEnv("DRAFT_TTL", defaultDraftTTL)
	if err != nil {
		return nil, err
	}

	cfg.ReminderAfter, err = parseDurationEnv("REMINDER_AFTER", defaultReminderAfter)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *RuntimeConfig) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.DraftTTL <= 0 {
		return fmt.Errorf("DRAFT_TTL must be > 0")
	}
	if cfg.ReminderAfter <= 0 {
		return fmt.Errorf("REMINDER_AFTER must be > 0")
	}
	if cfg.ReminderAfter >= cfg.DraftTTL {
		return fmt.Errorf("REMINDER_AFTER must be shorter than DRAFT_TTL")
	}
	if cfg.AppEnv != "dev" && cfg.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set outside dev")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}
