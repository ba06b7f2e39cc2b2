package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the guitar-registry search service.
// Values come from config.yaml with environment variable overrides; secrets
// (PGPASSWORD) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"5000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Search tuning
	Search SearchConfig `yaml:"search"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"registry"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"guitar_registry"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// SearchConfig holds the tunables of the fuzzy search layer. Thresholds are
// configuration rather than per-query inputs so tests can vary them and
// operators can tighten matching without a deploy of new code.
type SearchConfig struct {
	// DefaultPageSize is used when a request does not specify page_size.
	DefaultPageSize int `yaml:"default_page_size" env:"DEFAULT_PAGE_SIZE" env-default:"10"`
	// MaxPageSize is the ceiling for page_size.
	MaxPageSize int `yaml:"max_page_size" env:"MAX_PAGE_SIZE" env-default:"10"`
	// ModelThreshold is the minimum trigram similarity for model and
	// product line name matches.
	ModelThreshold float64 `yaml:"model_threshold" env:"SEARCH_MODEL_THRESHOLD" env-default:"0.3"`
	// ManufacturerThreshold is the minimum trigram similarity for
	// manufacturer name matches. More permissive than the model threshold so
	// a short alias still matches a long legal name ("Gibson" against
	// "Gibson Guitar Corporation").
	ManufacturerThreshold float64 `yaml:"manufacturer_threshold" env:"SEARCH_MANUFACTURER_THRESHOLD" env-default:"0.25"`
}

// Load reads configuration from the given YAML file with environment
// variable overrides. The version parameter is injected at build time.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Search.MaxPageSize < 1 {
		return fmt.Errorf("max_page_size must be >= 1, got %d", c.Search.MaxPageSize)
	}
	if c.Search.DefaultPageSize < 1 || c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf("default_page_size must be in [1, %d], got %d",
			c.Search.MaxPageSize, c.Search.DefaultPageSize)
	}
	if c.Search.ModelThreshold <= 0 || c.Search.ModelThreshold >= 1 {
		return fmt.Errorf("model_threshold must be in (0, 1), got %v", c.Search.ModelThreshold)
	}
	if c.Search.ManufacturerThreshold <= 0 || c.Search.ManufacturerThreshold >= 1 {
		return fmt.Errorf("manufacturer_threshold must be in (0, 1), got %v", c.Search.ManufacturerThreshold)
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
