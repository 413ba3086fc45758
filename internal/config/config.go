package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/realtor-bot/internal/dialogue"
	pkgRetry "github.com/futig/realtor-bot/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Storage configuration
	Storage             string        `env:"STORAGE" envDefault:"memory"`
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	TextsTTLSeconds     int           `env:"TEXTS_TTL_SECONDS" envDefault:"900"`

	// Listings backend
	ListingsCfg ListingsConnectorConfig `envPrefix:"LISTINGS_"`

	// Conversation
	LimitPerPage int `env:"LIMIT_PER_PAGE" envDefault:"3"`

	// Lexicon side files, all optional
	LexiconCfg LexiconConfig

	// Question catalogue (loaded from QUESTIONS_PATH or compiled in)
	Questions []dialogue.Question

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Debug    bool   `env:"DEBUG" envDefault:"false"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Booking exports
	ExportCfg ExportConfig

	// Optional webhook receiving every booking row
	BookingWebhookCfg WebhookConnectorConfig `envPrefix:"BOOKING_WEBHOOK_"`

	// Telegram bot configuration
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

// ListingsConnectorConfig configures the listings search backend
type ListingsConnectorConfig struct {
	HTTPClientConfig
	APIKey   string               `env:"API_KEY"`
	Endpoint string               `env:"API_ENDPOINT" envDefault:"/api/get_apartments"`
	Section  string               `env:"SECTION" envDefault:"secondary"`
	Retry    pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// WebhookConnectorConfig configures the booking webhook; an empty API_BASE
// disables it
type WebhookConnectorConfig struct {
	HTTPClientConfig
	Path string `env:"PATH" envDefault:""`
}

// Enabled reports whether a webhook URL is configured
func (c WebhookConnectorConfig) Enabled() bool {
	return c.Url != ""
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"API_TIMEOUT" envDefault:"20s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"20s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"API_BASE"`
}

// ExportConfig configures booking exports
type ExportConfig struct {
	// UnidocLicenseKey enables DOCX export; unioffice refuses to write without a key.
	UnidocLicenseKey string `env:"UNIDOC_LICENSE_API_KEY"`
	PDFFontPath      string `env:"PDF_FONT_PATH"`
}

// LexiconConfig points at optional lexicon side files
type LexiconConfig struct {
	KeywordsPath  string `env:"LOCATION_KEYWORDS_PATH"`
	PlacesPath    string `env:"PLACES_PATH"`
	QuestionsPath string `env:"QUESTIONS_PATH"`
}

// TextsTTL is the in-memory session lifetime.
func (c *Config) TextsTTL() time.Duration {
	return time.Duration(c.TextsTTLSeconds) * time.Second
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Variables may also be set externally, so a missing file is not an error.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadQuestions(cfg); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	switch cfg.Storage {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required when STORAGE=postgres")
		}
	default:
		errs = append(errs, fmt.Sprintf("STORAGE must be %q or %q, got %q", StorageMemory, StoragePostgres, cfg.Storage))
	}

	if cfg.LimitPerPage < 1 || cfg.LimitPerPage > 20 {
		errs = append(errs, fmt.Sprintf("LIMIT_PER_PAGE must be between 1 and 20, got %d", cfg.LimitPerPage))
	}

	if cfg.TextsTTLSeconds < 60 {
		errs = append(errs, fmt.Sprintf("TEXTS_TTL_SECONDS must be at least 60, got %d", cfg.TextsTTLSeconds))
	}

	if !cfg.EnableMocks && cfg.ListingsCfg.Url == "" {
		errs = append(errs, "LISTINGS_API_BASE is required unless ENABLE_MOCKS=true")
	}

	if cfg.ListingsCfg.Retry.Attempts < 1 || cfg.ListingsCfg.Retry.Attempts > 10 {
		errs = append(errs, fmt.Sprintf("LISTINGS_RETRY_ATTEMPTS must be between 1 and 10, got %d", cfg.ListingsCfg.Retry.Attempts))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errs = append(errs, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func loadQuestions(cfg *Config) error {
	path := cfg.LexiconCfg.QuestionsPath
	if path == "" {
		cfg.Questions = dialogue.DefaultQuestions
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Warning: questions file not found at %s, using default questions\n", path)
		cfg.Questions = dialogue.DefaultQuestions
		return nil
	}

	questions, err := dialogue.LoadQuestions(path)
	if err != nil {
		return err
	}
	cfg.Questions = questions

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
