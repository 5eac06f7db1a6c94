package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Backend  Backend  `json:"backend" mapstructure:"backend"`
	Populate Populate `json:"populate" mapstructure:"populate"`
}

type Backend struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	KeyEnv   string `json:"key_env" mapstructure:"key_env"`
}

type Populate struct {
	Users    int `json:"users" mapstructure:"users"`
	Products int `json:"products" mapstructure:"products"`
	Orders   int `json:"orders" mapstructure:"orders"`
	Batch    int `json:"batch" mapstructure:"batch"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.Backend.Provider == "" {
		cfg.Backend.Provider = "rest"
	}
	if cfg.Backend.URLEnv == "" {
		cfg.Backend.URLEnv = "SERVICE_URL"
	}
	if cfg.Backend.KeyEnv == "" {
		cfg.Backend.KeyEnv = "SERVICE_KEY"
	}
	if cfg.Populate.Users == 0 {
		cfg.Populate.Users = 200
	}
	if cfg.Populate.Products == 0 {
		cfg.Populate.Products = 500
	}
	if cfg.Populate.Orders == 0 {
		cfg.Populate.Orders = 2500
	}
	if cfg.Populate.Batch == 0 {
		cfg.Populate.Batch = 100
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"rest", "postgresql", "postgres", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Backend.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported backend provider: %s. Supported providers: %v", c.Backend.Provider, supportedProviders)
	}

	if c.Populate.Batch <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.Populate.Batch)
	}
	if c.Populate.Users < 0 || c.Populate.Products < 0 || c.Populate.Orders < 0 {
		return fmt.Errorf("record counts cannot be negative")
	}

	return nil
}

// ServiceURL reads the backend endpoint from the environment variable the
// config names. For SQL providers this is the connection string or file
// path; for rest it is the service's base URL.
func (c *Config) ServiceURL() (string, error) {
	url := os.Getenv(c.Backend.URLEnv)
	if url == "" {
		return "", fmt.Errorf("service URL not found in environment variable %s", c.Backend.URLEnv)
	}
	return url, nil
}

// ServiceKey reads the service credential; only the rest provider needs it.
func (c *Config) ServiceKey() (string, error) {
	key := os.Getenv(c.Backend.KeyEnv)
	if key == "" {
		return "", fmt.Errorf("service key not found in environment variable %s", c.Backend.KeyEnv)
	}
	return key, nil
}
