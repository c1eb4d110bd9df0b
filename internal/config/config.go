// Package config handles application configuration loading from environment
// variables, with an optional YAML file supplying generation defaults.
// A .env file in the working directory is read first if present.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Storage backend: "file", "valkey", or "memory"
	StorageBackend string
	DataDir        string

	// Valkey (Redis-compatible store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI provider settings
	AIProvider   string // "gemini" or "openai"
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	// Generation defaults from the optional YAML file.
	Defaults GenerationDefaults
}

// GenerationDefaults pre-fills the article form. Loaded from the file
// named by ZENSCRIBE_DEFAULTS (YAML); all fields optional.
type GenerationDefaults struct {
	Topic    string `yaml:"topic"`
	Keywords string `yaml:"keywords"`
	Tone     string `yaml:"tone"`
}

// Load reads configuration from a .env file (if present) and the
// environment, applying defaults for development where appropriate.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "127.0.0.1"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		StorageBackend: envOrDefault("STORAGE_BACKEND", "file"),
		DataDir:        envOrDefault("DATA_DIR", "data"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider:   envOrDefault("AI_PROVIDER", "gemini"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  envOrDefault("OPENAI_MODEL", "gpt-4o"),
	}

	switch cfg.StorageBackend {
	case "file", "valkey", "memory":
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if path := os.Getenv("ZENSCRIBE_DEFAULTS"); path != "" {
		defaults, err := loadDefaults(path)
		if err != nil {
			return nil, err
		}
		cfg.Defaults = defaults
	}

	return cfg, nil
}

// loadDefaults parses the optional YAML defaults file.
func loadDefaults(path string) (GenerationDefaults, error) {
	var d GenerationDefaults

	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read defaults file: %w", err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse defaults file: %w", err)
	}
	return d, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
