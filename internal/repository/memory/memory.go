// Package memory implements the repository contract on plain maps guarded
// by RW mutexes. It backs local development and tests when no MongoDB URI
// is configured. Reads following a concurrent write may or may not observe
// it; callers must not assume snapshot isolation across calls.
package memory

import (
	"context"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// Store bundles all in-memory repositories.
type Store struct {
	DateMarks *DateMarkStore
	Profiles  *ProfileStore
	Users     *UserStore
	Messages  *MessageStore
}

// NewStore constructs an empty in-memory store set.
func NewStore() *Store {
	return &Store{
		DateMarks: NewDateMarkStore(),
		Profiles:  NewProfileStore(),
		Users:     NewUserStore(),
		Messages:  NewMessageStore(),
	}
}

// sliceSeq adapts an already-materialized, ordered slice to the
// forward-only sequence contract.
type sliceSeq struct {
	items []models.DateMark
	pos   int
	cur   *models.DateMark
	err   error
}

func (s *sliceSeq) Next(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		s.err = err
		return false
	}
	if s.pos >= len(s.items) {
		return false
	}
	item := s.items[s.pos]
	s.cur = &item
	s.pos++
	return true
}

func (s *sliceSeq) Current() *models.DateMark { return s.cur }
func (s *sliceSeq) Err() error                { return s.err }
func (s *sliceSeq) Close(ctx context.Context) error {
	return nil
}

var _ repository.DateMarkSeq = (*sliceSeq)(nil)
