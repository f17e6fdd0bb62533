package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// UserStore keeps credential accounts keyed by id with a lowercased
// username index for uniqueness checks.
type UserStore struct {
	mu        sync.RWMutex
	byID      map[string]models.UserAccount
	idByLogin map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:      make(map[string]models.UserAccount),
		idByLogin: make(map[string]string),
	}
}

var _ repository.UserRepository = (*UserStore)(nil)

func loginKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *UserStore) Create(ctx context.Context, u *models.UserAccount) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := loginKey(u.Username)
	if _, taken := s.idByLogin[key]; taken {
		return repository.ErrDuplicateUsername
	}
	s.byID[u.ID] = *u
	s.idByLogin[key] = u.ID
	return nil
}

func (s *UserStore) Update(ctx context.Context, u *models.UserAccount) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	s.byID[u.ID] = *u
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.UserAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok || u.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.UserAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.idByLogin[loginKey(username)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u, ok := s.byID[id]
	if !ok || u.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := u
	return &copied, nil
}
