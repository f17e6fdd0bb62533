package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// DateMarkStore keeps Date Marks in a map keyed by id with a per-user
// index for efficient GetByUser scans.
type DateMarkStore struct {
	mu     sync.RWMutex
	byID   map[string]models.DateMark
	byUser map[string][]string // userID -> mark ids, insertion order
}

func NewDateMarkStore() *DateMarkStore {
	return &DateMarkStore{
		byID:   make(map[string]models.DateMark),
		byUser: make(map[string][]string),
	}
}

var _ repository.DateMarkRepository = (*DateMarkStore)(nil)

func (s *DateMarkStore) Upsert(ctx context.Context, mark *models.DateMark) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[mark.ID]; !exists {
		s.byUser[mark.UserID] = append(s.byUser[mark.UserID], mark.ID)
	}
	s.byID[mark.ID] = *mark
	return nil
}

func (s *DateMarkStore) GetByID(ctx context.Context, userID, id string) (*models.DateMark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byID[id]
	if !ok || m.UserID != userID || m.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := m
	return &copied, nil
}

// GetByUser snapshots the user's matching marks under the read lock, sorts
// by CreatedAt descending, and hands out a forward-only sequence over the
// snapshot. Unknown users yield an empty sequence, not an error.
func (s *DateMarkStore) GetByUser(ctx context.Context, userID string, f repository.Filter) (repository.DateMarkSeq, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	ids := s.byUser[userID]
	matched := make([]models.DateMark, 0, len(ids))
	for _, id := range ids {
		m, ok := s.byID[id]
		if !ok {
			continue
		}
		if f.Matches(&m) {
			matched = append(matched, m)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return &sliceSeq{items: matched}, nil
}
