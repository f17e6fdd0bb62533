package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// ProfileStore stores user profiles keyed by id, unique per userId.
type ProfileStore struct {
	coll *mongo.Collection
}

var _ repository.ProfileRepository = (*ProfileStore)(nil)

func (s *ProfileStore) Upsert(ctx context.Context, p *models.UserProfile) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("mongodb: upsert profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	return s.findOne(ctx, bson.M{"_id": id, "isDeleted": false})
}

func (s *ProfileStore) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.findOne(ctx, bson.M{"userId": userID, "isDeleted": false})
}

func (s *ProfileStore) findOne(ctx context.Context, query bson.M) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.coll.FindOne(ctx, query).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("mongodb: get profile: %w", err)
	}
	return &p, nil
}
