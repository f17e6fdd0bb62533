// Package database selects and opens the storage backend: MongoDB when a
// URI is configured, the in-memory store otherwise. Everything above this
// package sees only the repository interfaces.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/xenm/MapMe-sub002/internal/config"
	"github.com/xenm/MapMe-sub002/internal/repository"
	"github.com/xenm/MapMe-sub002/internal/repository/memory"
	"github.com/xenm/MapMe-sub002/internal/repository/mongodb"
)

const connectTimeout = 10 * time.Second

// Store is the backend-agnostic repository bundle handed to the modules.
type Store struct {
	DateMarks repository.DateMarkRepository
	Profiles  repository.ProfileRepository
	Users     repository.UserRepository
	Messages  repository.MessageRepository

	// Backend names the active implementation: "mongodb" or "memory".
	Backend string

	client *mongo.Client
}

// Connect opens the configured backend. Config validation already ensures
// production never reaches the in-memory path.
func Connect(cfg *config.AppConfig, logger *zap.Logger) (*Store, error) {
	if cfg.Mongo.URI == "" {
		logger.Warn("no mongo uri configured, using in-memory store (data is lost on restart)")
		mem := memory.NewStore()
		return &Store{
			DateMarks: mem.DateMarks,
			Profiles:  mem.Profiles,
			Users:     mem.Users,
			Messages:  mem.Messages,
			Backend:   "memory",
		}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	ms := mongodb.NewStore(client.Database(cfg.Mongo.Database))
	if err := ms.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.Mongo.Database))
	return &Store{
		DateMarks: ms.DateMarks,
		Profiles:  ms.Profiles,
		Users:     ms.Users,
		Messages:  ms.Messages,
		Backend:   "mongodb",
		client:    client,
	}, nil
}

// Ping verifies the backend is reachable. The in-memory store is always
// healthy.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx, nil)
}

// Close releases the backend connection, if any.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
