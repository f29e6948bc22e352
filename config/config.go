package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the settings shared by the terminal UI and the MCP servers.
type Config struct {
	Provider ProviderConfig `envPrefix:"PROVIDER_"`
	View     ViewConfig     `envPrefix:"VIEW_"`
	Log      LogConfig      `envPrefix:"LOG_"`
}

// ProviderConfig describes the external HTTP data provider.
type ProviderConfig struct {
	BaseURL      string        `env:"BASE_URL" envDefault:"https://dummyjson.com" validate:"required,url"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"10s" validate:"gt=0"`
	ProductLimit int           `env:"PRODUCT_LIMIT" envDefault:"0" validate:"gte=0"` // 0 asks the provider for every product
	UserAgent    string        `env:"USER_AGENT" envDefault:"catalogtui/0.1"`
}

// ViewConfig tunes the catalog view.
type ViewConfig struct {
	PageSize        int           `env:"PAGE_SIZE" envDefault:"10" validate:"gte=1,lte=100"`
	Debounce        time.Duration `env:"DEBOUNCE" envDefault:"500ms" validate:"gte=0"`
	ScrollThreshold int           `env:"SCROLL_THRESHOLD" envDefault:"1" validate:"gte=0"`
	Currency        string        `env:"CURRENCY" envDefault:"₹"`
}

type LogConfig struct {
	File  string `env:"FILE"`
	Level string `env:"LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

const envPrefix = "CATALOG_"

// Default returns the configuration with every default applied and no
// environment lookups.
func Default() *Config {
	cfg := &Config{}
	// Parsing an empty environment only fills envDefault values.
	_ = env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix, Environment: map[string]string{}})
	return cfg
}

// Load reads a .env file if present, then the process environment, and
// validates the result.
func Load() (*Config, error) {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints after flags or env have been applied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
