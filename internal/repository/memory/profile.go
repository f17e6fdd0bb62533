package memory

import (
	"context"
	"sync"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// ProfileStore keeps profiles keyed by id with a userID secondary lookup.
type ProfileStore struct {
	mu       sync.RWMutex
	byID     map[string]models.UserProfile
	idByUser map[string]string
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		byID:     make(map[string]models.UserProfile),
		idByUser: make(map[string]string),
	}
}

var _ repository.ProfileRepository = (*ProfileStore)(nil)

func (s *ProfileStore) Upsert(ctx context.Context, p *models.UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[p.ID] = *p
	s.idByUser[p.UserID] = p.ID
	return nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok || p.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (s *ProfileStore) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.idByUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p, ok := s.byID[id]
	if !ok || p.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := p
	return &copied, nil
}
