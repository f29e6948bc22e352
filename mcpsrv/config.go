package mcpsrv

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config holds the MCP server settings. Only the listen port is read without
// the CATALOG_MCP_ prefix so hosting platforms can inject it.
type Config struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	AllowedOrigins     []string      `env:"CATALOG_MCP_ALLOWED_ORIGINS" envSeparator:","`
	Stateless          bool          `env:"CATALOG_MCP_STATELESS" envDefault:"false"`
	EnableAdmin        bool          `env:"CATALOG_MCP_ENABLE_ADMIN" envDefault:"false"`
	APIKey             string        `env:"CATALOG_MCP_API_KEY"`
	RPS                float64       `env:"CATALOG_MCP_RPS" envDefault:"2"`
	Burst              int           `env:"CATALOG_MCP_BURST" envDefault:"5"`
	SessionTimeout     time.Duration `env:"CATALOG_MCP_SESSION_TIMEOUT" envDefault:"15m"`
	CacheClearInterval time.Duration `env:"CATALOG_MCP_CACHE_CLEAR_INTERVAL" envDefault:"30m"`
}

func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse mcp env: %w", err)
	}
	return cfg.normalize(), nil
}

func (c Config) normalize() Config {
	c.Port = strings.TrimSpace(c.Port)
	if c.Port == "" {
		c.Port = "8080"
	}
	origins := make([]string, 0, len(c.AllowedOrigins))
	for _, o := range c.AllowedOrigins {
		if v := strings.TrimSpace(o); v != "" {
			origins = append(origins, v)
		}
	}
	c.AllowedOrigins = origins
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.RPS <= 0 {
		c.RPS = 2
	}
	if c.Burst <= 0 {
		c.Burst = 5
	}
	return c
}

// AdminEnabled reports whether cache_clear may be registered. The admin tool
// is never exposed without an API key.
func (c Config) AdminEnabled() bool {
	return c.EnableAdmin && c.APIKey != ""
}

func StreamableOptions(cfg Config) *mcp.StreamableHTTPOptions {
	return &mcp.StreamableHTTPOptions{
		Stateless:      cfg.Stateless,
		SessionTimeout: cfg.SessionTimeout,
	}
}
