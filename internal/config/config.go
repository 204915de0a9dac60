// Package config loads and validates configuration at startup.
// Fail-fast: if a required value is missing, the process exits with an error.
//
// Sources, later ones winning: built-in defaults, the YAML file named by
// CONFIG_PATH, a .env file in the working directory, the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults for the hh.ru client.
const (
	DefaultHHBaseURL   = "https://api.hh.ru"
	DefaultHHUserAgent = "edu-practice-parser/1.0 (vacancy-bot)"
)

// Config holds all runtime configuration for the bot.
type Config struct {
	TelegramToken   string `yaml:"telegram_bot_token"`
	DatabaseURL     string `yaml:"database_url" validate:"required"`
	RedisURL        string `yaml:"redis_url"` // empty → in-memory sessions
	HHBaseURL       string `yaml:"hh_base_url" validate:"required,url"`
	HHUserAgent     string `yaml:"hh_user_agent" validate:"required"`
	HTTPPort        string `yaml:"http_port" validate:"omitempty,numeric"` // empty → no HTTP server
	SessionTTLHours int    `yaml:"session_ttl_hours" validate:"min=1"`
	LogLevel        string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// ErrNoToken is returned by RequireBot when TELEGRAM_BOT_TOKEN is unset.
var ErrNoToken = errors.New("TELEGRAM_BOT_TOKEN is required")

var validate = validator.New()

func defaults() *Config {
	return &Config{
		HHBaseURL:       DefaultHHBaseURL,
		HHUserAgent:     DefaultHHUserAgent,
		HTTPPort:        "8083",
		SessionTTLHours: 24,
		LogLevel:        "info",
	}
}

// Load reads every source and returns a validated Config.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.TelegramToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.HHBaseURL, "HH_BASE_URL")
	setString(&c.HHUserAgent, "HH_USER_AGENT")
	setString(&c.LogLevel, "LOG_LEVEL")

	// set-but-empty disables the HTTP server
	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		c.HTTPPort = v
	}

	if s := os.Getenv("SESSION_TTL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return fmt.Errorf("SESSION_TTL_HOURS must be a positive integer, got %q", s)
		}
		c.SessionTTLHours = v
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// RequireBot checks the settings only the chat bot needs.
func (c *Config) RequireBot() error {
	if c.TelegramToken == "" {
		return ErrNoToken
	}
	return nil
}

// SessionTTL is how long an idle dialogue survives in Redis.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// SlogLevel maps LogLevel onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
