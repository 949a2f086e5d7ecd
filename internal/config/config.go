// ABOUTME: Configuration management for remix with YAML config loading.
// ABOUTME: Handles LLM and database credentials with env-var fallbacks.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config stores remix configuration loaded from ~/.config/remix/config.yaml.
type Config struct {
	LLM   LLMConfig   `yaml:"llm"`
	Store StoreConfig `yaml:"store"`
}

// LLMConfig holds text-generation service settings.
type LLMConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int64  `yaml:"max_tokens"`
}

// StoreConfig holds the saved-post database connection string.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url"`
}

// ResolveAPIKey returns the configured generation credential, falling back to
// the OPENAI_API_KEY environment variable.
func (c *Config) ResolveAPIKey() string {
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

// ResolveDatabaseURL returns the configured store connection string, falling
// back to the REMIX_DATABASE_URL environment variable.
func (c *Config) ResolveDatabaseURL() string {
	if c.Store.DatabaseURL != "" {
		return c.Store.DatabaseURL
	}
	return os.Getenv("REMIX_DATABASE_URL")
}

// HasStore returns true if a saved-post database is configured.
func (c *Config) HasStore() bool {
	return c.ResolveDatabaseURL() != ""
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "remix", "config.yaml"), nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
