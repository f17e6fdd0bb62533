// Package config loads and normalizes the server's YAML configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort            = 4500
	defaultEnv             = "development"
	defaultMongoDatabase   = "mapme"
	defaultTokenTTLHours   = 72
	defaultHistoryPageSize = 50
	defaultMaxMessageLen   = 2000
)

// Load reads the YAML file at path and applies defaults. A missing file is
// not an error in development: an all-default config (in-memory store, no
// Redis, no S3) is returned so the server can start with zero setup.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	normalize(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalize(cfg *AppConfig) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		if env := strings.ToLower(strings.TrimSpace(os.Getenv("MAPME_ENV"))); env != "" {
			cfg.Env = env
		} else {
			cfg.Env = defaultEnv
		}
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	cfg.Mongo.URI = strings.TrimSpace(cfg.Mongo.URI)
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = strings.TrimSpace(os.Getenv("MAPME_MONGO_URI"))
	}
	cfg.Mongo.Database = strings.TrimSpace(cfg.Mongo.Database)
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defaultMongoDatabase
	}
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = strings.TrimSpace(os.Getenv("MAPME_JWT_SECRET"))
	}
	if cfg.TokenTTLHours <= 0 {
		cfg.TokenTTLHours = defaultTokenTTLHours
	}
	if cfg.Chat.HistoryPageSize <= 0 {
		cfg.Chat.HistoryPageSize = defaultHistoryPageSize
	}
	if cfg.Chat.MaxMessageLen <= 0 {
		cfg.Chat.MaxMessageLen = defaultMaxMessageLen
	}
	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}
}

func validate(cfg *AppConfig) error {
	if !cfg.IsDev() {
		if cfg.JWTSecret == "" {
			return fmt.Errorf("jwt_secret is required in production")
		}
		if cfg.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri is required in production (in-memory store is development-only)")
		}
	}
	return nil
}
