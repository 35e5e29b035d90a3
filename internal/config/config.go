// Package config loads service configuration. Values come from an
// optional YAML file (CONFIG_PATH) with environment variables taking
// precedence, so containers can override single settings without a file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the HisaabKitaab server.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`

	// DBPath is the SQLite database file path.
	DBPath string `yaml:"db_path"`

	// StaticPath is the directory the web frontend is served from.
	StaticPath string `yaml:"static_path"`

	// JWTSecret signs session tokens. Must be set to a strong random
	// value in production; the default exists for local development
	// only.
	JWTSecret string `yaml:"jwt_secret"`

	// TokenTTL is how long session tokens stay valid.
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_PATH (if any), and environment variables, in that order.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       "8080",
		DBPath:     "./data/ledger.db",
		StaticPath: "../frontend/static",
		JWTSecret:  "dev-secret-change-me",
		TokenTTL:   24 * time.Hour,
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.StaticPath = getEnv("STATIC_PATH", cfg.StaticPath)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.TokenTTL = d
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns the fallback if
// not set.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
