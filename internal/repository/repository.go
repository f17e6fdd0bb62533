// Package repository defines the storage contract for MapMe entities.
// Handlers and services only ever talk to these interfaces; the in-memory
// and MongoDB backends must behave identically behind them, including
// filter semantics and result ordering.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/xenm/MapMe-sub002/internal/models"
)

// ErrNotFound is returned when a lookup matches no record. It is not a
// backend fault; callers distinguish the two with errors.Is.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicateUsername is returned when account creation collides with an
// existing username.
var ErrDuplicateUsername = errors.New("repository: username already taken")

// DateMarkSeq is a forward-only, non-restartable sequence of Date Marks,
// ordered by CreatedAt descending. Modeled after mongo.Cursor so the
// document backend can stream straight off the wire.
type DateMarkSeq interface {
	// Next advances the sequence. Returns false at the end or on error;
	// check Err after a false return.
	Next(ctx context.Context) bool
	Current() *models.DateMark
	Err() error
	Close(ctx context.Context) error
}

// DateMarkRepository stores one user's place memories.
// Upsert is all-or-nothing: a cancelled call must not leave a record
// half-written. Duplicate prevention lives in the datemark service, not
// here; backends store whatever they are given.
type DateMarkRepository interface {
	Upsert(ctx context.Context, mark *models.DateMark) error
	GetByID(ctx context.Context, userID, id string) (*models.DateMark, error)
	GetByUser(ctx context.Context, userID string, f Filter) (DateMarkSeq, error)
}

// ProfileRepository stores display profiles, one per user.
type ProfileRepository interface {
	Upsert(ctx context.Context, p *models.UserProfile) error
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
}

// UserRepository stores credential accounts.
type UserRepository interface {
	Create(ctx context.Context, u *models.UserAccount) error
	Update(ctx context.Context, u *models.UserAccount) error
	GetByID(ctx context.Context, id string) (*models.UserAccount, error)
	GetByUsername(ctx context.Context, username string) (*models.UserAccount, error)
}

// MessageRepository stores chat messages.
type MessageRepository interface {
	Append(ctx context.Context, msg *models.ChatMessage) error
	// ListByConversation returns up to limit messages created before
	// `before` (zero time = from the newest), newest first.
	ListByConversation(ctx context.Context, conversationID string, before time.Time, limit int) ([]models.ChatMessage, error)
	// MarkRead stamps ReadAt on every unread message addressed to userID
	// in the conversation.
	MarkRead(ctx context.Context, conversationID, userID string, at time.Time) error
	// Conversations lists the conversation ids the user participates in,
	// most recently active first.
	Conversations(ctx context.Context, userID string) ([]string, error)
}

// Collect drains a sequence into a slice. Intended for handlers that
// paginate small per-user result sets; streaming consumers should iterate
// the sequence directly.
func Collect(ctx context.Context, seq DateMarkSeq) ([]models.DateMark, error) {
	defer seq.Close(ctx)
	var out []models.DateMark
	for seq.Next(ctx) {
		out = append(out, *seq.Current())
	}
	if err := seq.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
