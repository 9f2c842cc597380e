package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/demyanov-realty/review-bot/internal/entity"
	pkgRetry "github.com/demyanov-realty/review-bot/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Admin API server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configuration
	YaGPTCfg YaGPTConfig `envPrefix:"YANDEX_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Publish links shown after a completed review (loaded from JSON file)
	PlatformLinks []entity.PlatformLink

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string        `env:"BOT_TOKEN,notEmpty"`
	UpdateTimeout      int           `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int           `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"30m"`
}

// YaGPTConfig holds the generative-text service configuration
type YaGPTConfig struct {
	HTTPClientConfig
	APIKey      string               `env:"API_KEY,notEmpty"`
	FolderID    string               `env:"FOLDER_ID,notEmpty"`
	Model       string               `env:"MODEL" envDefault:"yandexgpt-lite"`
	Temperature float64              `env:"TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int                  `env:"MAX_TOKENS" envDefault:"500"`
	Retry       pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://llm.api.cloud.yandex.net/foundationModels/v1/completion"`
}

// platformLinks represents the structure of platform_links.json
type platformLinks struct {
	Platforms []entity.PlatformLink `json:"platforms"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadPlatformLinks(cfg); err != nil {
		return nil, fmt.Errorf("load platform links: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.TelegramCfg.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SESSION_TTL must be at least 1m, got %s", cfg.TelegramCfg.SessionTTL))
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if cfg.YaGPTCfg.Temperature < 0 || cfg.YaGPTCfg.Temperature > 1 {
		errors = append(errors, fmt.Sprintf("YANDEX_TEMPERATURE must be between 0 and 1, got %g", cfg.YaGPTCfg.Temperature))
	}

	if cfg.YaGPTCfg.Retry.Attempts < 1 || cfg.YaGPTCfg.Retry.Attempts > 10 {
		errors = append(errors, fmt.Sprintf("YANDEX_RETRY_ATTEMPTS must be between 1 and 10, got %d", cfg.YaGPTCfg.Retry.Attempts))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

var defaultPlatformLinks = []entity.PlatformLink{
	{Name: "🏢 Cian", URL: "https://spb.cian.ru/agents/74067131/#new"},
	{Name: "🏠 Domclick", URL: "https://agencies.domclick.ru/agent/8752?region_id=44eeae98-63fd-4b9d-9ba2-c7806d6b8d6e"},
	{Name: "📬 Telegram", URL: "https://t.me/demyanov_agency"},
	{Name: "🔗 ВК", URL: "https://vk.com/ipoteka9367573"},
}

func loadPlatformLinks(cfg *Config) error {
	configPath := filepath.Join("internal", "config", "platform_links.json")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Warning: platform links file not found at %s, using default links\n", configPath)
		cfg.PlatformLinks = defaultPlatformLinks
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read platform links file: %w", err)
	}

	var linksData platformLinks
	if err := json.Unmarshal(data, &linksData); err != nil {
		return fmt.Errorf("parse platform links JSON: %w", err)
	}

	if len(linksData.Platforms) == 0 {
		return fmt.Errorf("platform links file contains no platforms: %s", configPath)
	}

	cfg.PlatformLinks = linksData.Platforms
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
