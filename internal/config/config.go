// Package config loads server configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the full server configuration.
type Config struct {
	Listen  string   `yaml:"listen"`
	DataDir string   `yaml:"data_dir"`
	Log     Log      `yaml:"log"`
	HTTP    HTTP     `yaml:"http"`
	Origins []string `yaml:"allowed_origins"`
}

// Log holds logging configuration.
type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// HTTP holds API surface tunables.
type HTTP struct {
	PageSize    int `yaml:"page_size"`
	MaxPageSize int `yaml:"max_page_size"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Listen:  ":8090",
		DataDir: "./data",
		Log:     Log{Level: "info", JSON: true},
		HTTP:    HTTP{PageSize: 20, MaxPageSize: 100},
		Origins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Load reads configuration from the given path, falling back to defaults for
// unset fields, then applies environment overrides. An empty path returns the
// defaults (plus overrides).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from CONTACTDECK_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("CONTACTDECK_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("CONTACTDECK_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("CONTACTDECK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CONTACTDECK_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HTTP.PageSize = n
		}
	}
	if v := os.Getenv("CONTACTDECK_ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		c.Origins = origins
	}
}

func (c *Config) validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.HTTP.PageSize < 1 {
		return fmt.Errorf("page_size must be positive, got %d", c.HTTP.PageSize)
	}
	if c.HTTP.MaxPageSize < c.HTTP.PageSize {
		return fmt.Errorf("max_page_size must be >= page_size")
	}
	return nil
}
