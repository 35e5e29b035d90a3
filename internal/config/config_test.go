package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(*testing.T, *Config)
	}{
		{
			name:    "default values",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Port != "8080" {
					t.Errorf("expected Port to be 8080, got %s", cfg.Port)
				}
				if cfg.DBPath != "./data/ledger.db" {
					t.Errorf("expected DBPath to be ./data/ledger.db, got %s", cfg.DBPath)
				}
				if cfg.TokenTTL != 24*time.Hour {
					t.Errorf("expected TokenTTL to be 24h, got %s", cfg.TokenTTL)
				}
			},
		},
		{
			name: "environment overrides",
			envVars: map[string]string{
				"PORT":       "9090",
				"DB_PATH":    "/tmp/other.db",
				"JWT_SECRET": "super-secret",
				"TOKEN_TTL":  "30m",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9090" {
					t.Errorf("expected Port to be 9090, got %s", cfg.Port)
				}
				if cfg.DBPath != "/tmp/other.db" {
					t.Errorf("expected DBPath to be /tmp/other.db, got %s", cfg.DBPath)
				}
				if cfg.JWTSecret != "super-secret" {
					t.Errorf("expected JWTSecret to be super-secret, got %s", cfg.JWTSecret)
				}
				if cfg.TokenTTL != 30*time.Minute {
					t.Errorf("expected TokenTTL to be 30m, got %s", cfg.TokenTTL)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_YAMLFileWithEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "port: \"7070\"\ndb_path: /var/lib/ledger.db\njwt_secret: from-file\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("expected Port from file to be 7070, got %s", cfg.Port)
	}
	if cfg.DBPath != "/var/lib/ledger.db" {
		t.Errorf("expected DBPath from file, got %s", cfg.DBPath)
	}
	if cfg.JWTSecret != "from-env" {
		t.Errorf("expected env to override file, got %s", cfg.JWTSecret)
	}
}

func TestLoad_InvalidTokenTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid TOKEN_TTL")
	}
}
