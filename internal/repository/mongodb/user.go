package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// UserStore stores credential accounts. Username uniqueness is enforced
// by the unique index, making the server the authoritative guard.
type UserStore struct {
	coll *mongo.Collection
}

var _ repository.UserRepository = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, u *models.UserAccount) error {
	u.Username = strings.TrimSpace(u.Username)
	_, err := s.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateUsername
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("mongodb: create user: %w", err)
	}
	return nil
}

func (s *UserStore) Update(ctx context.Context, u *models.UserAccount) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("mongodb: update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.UserAccount, error) {
	return s.findOne(ctx, bson.M{"_id": id, "isDeleted": false})
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.UserAccount, error) {
	return s.findOne(ctx, bson.M{"username": strings.TrimSpace(username), "isDeleted": false})
}

func (s *UserStore) findOne(ctx context.Context, query bson.M) (*models.UserAccount, error) {
	var u models.UserAccount
	err := s.coll.FindOne(ctx, query).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("mongodb: get user: %w", err)
	}
	return &u, nil
}
