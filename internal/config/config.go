package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Store     StoreConfig     `yaml:"store"`
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Assistant AssistantConfig `yaml:"assistant"`
}

// DatabaseConfig contains settings for the relational store.
type DatabaseConfig struct {
	Path string `yaml:"path"` // SQLite database file path
}

// StoreConfig contains settings for the key-value store.
type StoreConfig struct {
	Path string `yaml:"path"` // bbolt database file path
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address string `yaml:"address"` // listen address (e.g., ":8080")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	TokenSecret   string `yaml:"token_secret"`   // HS256 signing secret
	AdminUsername string `yaml:"admin_username"` // reserved administrator name
}

// AssistantConfig contains settings for the chat-completion relay.
// The assistant is disabled when APIKey is empty.
type AssistantConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// Load loads configuration from an optional YAML file (CONFIG_PATH) and
// environment variables. Environment variables win over file values.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for TOKEN_SECRET in
// development. WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.TokenSecret == "" {
		cfg.Auth.TokenSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{Path: "technest.db"},
		Store:    StoreConfig{Path: "technest.kv"},
		HTTP:     HTTPConfig{Address: ":8080"},
		Auth:     AuthConfig{AdminUsername: "bilous"},
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.Store.Path = getEnv("KV_PATH", cfg.Store.Path)
	cfg.HTTP.Address = getEnv("HTTP_ADDRESS", cfg.HTTP.Address)
	cfg.Auth.TokenSecret = getEnv("TOKEN_SECRET", cfg.Auth.TokenSecret)
	cfg.Auth.AdminUsername = getEnv("ADMIN_USERNAME", cfg.Auth.AdminUsername)
	cfg.Assistant.BaseURL = getEnv("ASSISTANT_BASE_URL", cfg.Assistant.BaseURL)
	cfg.Assistant.APIKey = getEnv("ASSISTANT_API_KEY", cfg.Assistant.APIKey)
	cfg.Assistant.Model = getEnv("ASSISTANT_MODEL", cfg.Assistant.Model)

	if cfg.Auth.AdminUsername == "" {
		return nil, fmt.Errorf("admin username must not be empty")
	}
	return cfg, nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, KV: %s, HTTP: %s, Admin: %s, Auth: *** (masked) ***}",
		c.Database.Path, c.Store.Path, c.HTTP.Address, c.Auth.AdminUsername)
}
