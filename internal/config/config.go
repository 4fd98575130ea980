package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jwebster45206/outpost-engine/pkg/prompts"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	Port         string     `env:"PORT" envDefault:"5000"`
	Environment  string     `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelName string     `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel     slog.Level
	LogFile      string     `env:"LOG_FILE" envDefault:"logs/ollama_interactions.log"`
	APIPrefix    string     `env:"API_PREFIX" envDefault:"/api"`

	OllamaURL         string        `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel       string        `env:"OLLAMA_MODEL" envDefault:"llama2-uncensored"`
	UseLLMQuests      bool          `env:"USE_LLM_QUESTS" envDefault:"true"`
	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"60s"`

	MaxContextTokens    int     `env:"MAX_CONTEXT_TOKENS" envDefault:"8192"`
	ReservedTokens      int     `env:"RESERVED_TOKENS" envDefault:"1000"`
	DialogueTemperature float64 `env:"DIALOGUE_TEMPERATURE" envDefault:"0.8"`
	DialogueMaxTokens   int     `env:"DIALOGUE_MAX_TOKENS" envDefault:"150"`
	QuestTemperature    float64 `env:"QUEST_TEMPERATURE" envDefault:"0.8"`
	QuestMaxTokens      int     `env:"QUEST_MAX_TOKENS" envDefault:"300"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	RedisURL       string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	ContentRating  string   `env:"CONTENT_RATING" envDefault:"R"`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"5"`
	CORSOrigins    []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return parse(env.Options{})
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	cfg.APIPrefix = strings.TrimRight(cfg.APIPrefix, "/")
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	cfg.ContentRating = strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(cfg.ContentRating)), "-", "")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that parse but cannot work together.
func (c *Config) Validate() error {
	if c.MaxContextTokens <= 0 {
		return fmt.Errorf("MAX_CONTEXT_TOKENS must be positive, got %d", c.MaxContextTokens)
	}
	if c.ReservedTokens < 0 || c.ReservedTokens >= c.MaxContextTokens {
		return fmt.Errorf("RESERVED_TOKENS must be in [0, %d), got %d", c.MaxContextTokens, c.ReservedTokens)
	}
	if c.CompletionTimeout <= 0 {
		return fmt.Errorf("COMPLETION_TIMEOUT must be positive, got %s", c.CompletionTimeout)
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX must start with /, got %q", c.APIPrefix)
	}
	switch c.StorageBackend {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if !prompts.ValidRating(c.ContentRating) {
		return fmt.Errorf("unknown CONTENT_RATING %q", c.ContentRating)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", c.RateLimitRPS)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting, got %d", c.RateLimitBurst)
	}
	return nil
}

// Budget returns the token budget for prompts.
func (c *Config) Budget() prompts.Budget {
	return prompts.Budget{MaxContextTokens: c.MaxContextTokens, ReservedTokens: c.ReservedTokens}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
