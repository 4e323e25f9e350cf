package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// dev-only signing key, refused in production
const devJWTSecret = "coach-portal-dev-secret"

// Config is read from the environment, every variable prefixed with COACH_
// (e.g. COACH_AIRTABLE_API_KEY). A .env file in the working directory is loaded first if present.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	Port        int    `envconfig:"PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Airtable
	AirtableAPIKey string        `envconfig:"AIRTABLE_API_KEY"`
	AirtableBaseID string        `envconfig:"AIRTABLE_BASE_ID"`
	AirtableURL    string        `envconfig:"AIRTABLE_URL" default:"https://api.airtable.com"`
	StoreTimeout   time.Duration `envconfig:"STORE_TIMEOUT" default:"10s"`
	MockDelay      time.Duration `envconfig:"MOCK_DELAY" default:"500ms"`

	// session persistence
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:"coachportal.db"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"720h"`

	// eBook links stored as s3://bucket/key are presigned in this region
	S3Region     string        `envconfig:"S3_REGION"`
	EbookLinkTTL time.Duration `envconfig:"EBOOK_LINK_TTL" default:"15m"`
}

// Load reads the optional .env file and the COACH_ environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("COACH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Bool("airtable_configured", cfg.AirtableConfigured()).
		Str("db_driver", cfg.DBDriver).
		Dur("store_timeout", cfg.StoreTimeout).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Validate checks enumerations and fills the development signing key.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive, got %s", c.StoreTimeout)
	}
	if c.MockDelay < 0 {
		return fmt.Errorf("MOCK_DELAY must not be negative, got %s", c.MockDelay)
	}
	if c.JWTSecret == "" {
		if c.Environment == EnvProduction {
			return errors.New("JWT_SECRET must be set in production")
		}
		log.Warn().Msg("JWT_SECRET not set, using development signing key")
		c.JWTSecret = devJWTSecret
	}
	return nil
}

// AirtableConfigured reports whether both credentials needed to reach the base are present.
func (c *Config) AirtableConfigured() bool {
	return c.AirtableAPIKey != "" && c.AirtableBaseID != ""
}

// NewForTesting returns an in-memory, store-less configuration.
func NewForTesting() *Config {
	return &Config{
		Environment:  EnvTesting,
		Port:         8080,
		LogLevel:     "debug",
		AirtableURL:  "https://api.airtable.com",
		StoreTimeout: 2 * time.Second,
		DBDriver:     "sqlite",
		DatabaseURL:  "file::memory:?cache=shared",
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
		EbookLinkTTL: time.Minute,
	}
}
