package baserow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration for building a client. The
// library never reads configuration implicitly; callers load a file and
// hand it to NewClientFromConfig.
type Config struct {
	URL       string `yaml:"url"`
	Token     string `yaml:"token"`
	BatchSize int    `yaml:"batch_size"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config for values NewClient would reject.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("config: url is required")
	}
	if c.Token == "" {
		return fmt.Errorf("config: token is required")
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("config: batch_size must not be negative, got %d", c.BatchSize)
	}
	return nil
}
