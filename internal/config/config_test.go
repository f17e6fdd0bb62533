package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, defaultPort)
	}
	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
	if cfg.Mongo.Database != defaultMongoDatabase {
		t.Errorf("Mongo.Database = %q", cfg.Mongo.Database)
	}
	if cfg.Chat.HistoryPageSize != defaultHistoryPageSize || cfg.Chat.MaxMessageLen != defaultMaxMessageLen {
		t.Errorf("chat defaults = %+v", cfg.Chat)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: development
mongo:
  uri: mongodb://localhost:27017
  database: mapme_test
redis_url: redis://localhost:6379/0
token_ttl_hours: 12
allowed_origins:
  - mapme.example.com
  - "*.mapme.example.com"
chat:
  history_page_size: 25
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.Mongo.Database != "mapme_test" {
		t.Errorf("Mongo.Database = %q", cfg.Mongo.Database)
	}
	if cfg.TokenTTLHours != 12 {
		t.Errorf("TokenTTLHours = %d", cfg.TokenTTLHours)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "*.mapme.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.Chat.HistoryPageSize != 25 {
		t.Errorf("HistoryPageSize = %d", cfg.Chat.HistoryPageSize)
	}
	if cfg.Chat.MaxMessageLen != defaultMaxMessageLen {
		t.Errorf("MaxMessageLen = %d, want default", cfg.Chat.MaxMessageLen)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "port: [not a number")
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml accepted")
	}
}

func TestProductionRequiresSecretAndMongo(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			"missing both",
			"env: production",
			true,
		},
		{
			"missing mongo",
			"env: production\njwt_secret: s3cret",
			true,
		},
		{
			"complete",
			"env: production\njwt_secret: s3cret\nmongo:\n  uri: mongodb://db:27017",
			false,
		},
		{
			"development needs neither",
			"env: development",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MAPME_MONGO_URI", "mongodb://from-env:27017")
	t.Setenv("MAPME_JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mongo.URI != "mongodb://from-env:27017" {
		t.Errorf("Mongo.URI = %q", cfg.Mongo.URI)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
}
