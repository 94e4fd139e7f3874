package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hotel-ops/utils"
)

type Config struct {
	Env      string `validate:"oneof=development production test"`
	Port     string `validate:"required,numeric"`
	DBDriver string `validate:"oneof=mysql postgres"`

	RedisURL string `validate:"omitempty,url"`

	JWTSecret  string        `validate:"required,min=16"`
	SessionTTL time.Duration `validate:"gt=0"`

	CORSOrigins    []string
	SeedDemoUsers  bool
	ShutdownPeriod time.Duration
}

const devJWTSecret = "hotel-ops-development-secret"

// Load reads the process environment into a validated Config.
func Load() (Config, error) {
	cfg := Config{
		Env:            strings.ToLower(utils.EnvOrDefault("APP_ENV", "development")),
		Port:           utils.EnvOrDefault("PORT", "8080"),
		DBDriver:       strings.ToLower(utils.EnvOrDefault("DB_DRIVER", "mysql")),
		RedisURL:       utils.EnvOrDefault("REDIS_URL", ""),
		JWTSecret:      utils.EnvOrDefault("JWT_SECRET", ""),
		SessionTTL:     utils.EnvDuration("SESSION_TTL", 12*time.Hour),
		CORSOrigins:    utils.SplitList(utils.EnvOrDefault("CORS_ORIGINS", "*")),
		SeedDemoUsers:  utils.EnvBool("SEED_DEMO_USERS", false),
		ShutdownPeriod: utils.EnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
	if cfg.JWTSecret == "" && cfg.Env != "production" {
		cfg.JWTSecret = devJWTSecret
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) Production() bool { return c.Env == "production" }

// AllowCredentials is false when any origin is a wildcard.
func (c Config) AllowCredentials() bool {
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return false
		}
	}
	return true
}
