// Package mongodb implements the repository contract on MongoDB
// collections. Per-user reads stay inside one partition key (userId) and
// concurrency control is left to the server's per-document semantics.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collDateMarks = "datemarks"
	collProfiles  = "profiles"
	collUsers     = "users"
	collMessages  = "messages"
)

// Store bundles all MongoDB-backed repositories over one database handle.
type Store struct {
	DateMarks *DateMarkStore
	Profiles  *ProfileStore
	Users     *UserStore
	Messages  *MessageStore
}

// NewStore wires the repositories onto db. EnsureIndexes should be called
// once at startup before serving traffic.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		DateMarks: &DateMarkStore{coll: db.Collection(collDateMarks)},
		Profiles:  &ProfileStore{coll: db.Collection(collProfiles)},
		Users:     &UserStore{coll: db.Collection(collUsers)},
		Messages:  &MessageStore{coll: db.Collection(collMessages)},
	}
}

// EnsureIndexes creates the indexes the query patterns depend on:
// user-partitioned recency reads, unique usernames, profile lookup by
// owner, and conversation history scans.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.DateMarks.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "placeId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("mongodb: datemark indexes: %w", err)
	}
	_, err = s.Profiles.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongodb: profile indexes: %w", err)
	}
	_, err = s.Users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongodb: user indexes: %w", err)
	}
	_, err = s.Messages.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("mongodb: message indexes: %w", err)
	}
	return nil
}
