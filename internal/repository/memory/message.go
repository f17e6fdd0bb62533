package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// MessageStore keeps chat messages grouped by conversation.
type MessageStore struct {
	mu     sync.RWMutex
	byConv map[string][]models.ChatMessage
}

func NewMessageStore() *MessageStore {
	return &MessageStore{byConv: make(map[string][]models.ChatMessage)}
}

var _ repository.MessageRepository = (*MessageStore)(nil)

func (s *MessageStore) Append(ctx context.Context, msg *models.ChatMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byConv[msg.ConversationID] = append(s.byConv[msg.ConversationID], *msg)
	return nil
}

func (s *MessageStore) ListByConversation(ctx context.Context, conversationID string, before time.Time, limit int) ([]models.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	msgs := append([]models.ChatMessage(nil), s.byConv[conversationID]...)
	s.mu.RUnlock()

	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	out := make([]models.ChatMessage, 0, limit)
	for _, m := range msgs {
		if m.IsDeleted {
			continue
		}
		if !before.IsZero() && !m.CreatedAt.Before(before) {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *MessageStore) MarkRead(ctx context.Context, conversationID, userID string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.byConv[conversationID]
	for i := range msgs {
		if msgs[i].RecipientID == userID && msgs[i].ReadAt == nil {
			stamp := at
			msgs[i].ReadAt = &stamp
			msgs[i].UpdatedAt = at
		}
	}
	return nil
}

func (s *MessageStore) Conversations(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	type convActivity struct {
		id   string
		last time.Time
	}
	var convs []convActivity
	for id, msgs := range s.byConv {
		var last time.Time
		participates := false
		for _, m := range msgs {
			if m.SenderID == userID || m.RecipientID == userID {
				participates = true
				if m.CreatedAt.After(last) {
					last = m.CreatedAt
				}
			}
		}
		if participates {
			convs = append(convs, convActivity{id: id, last: last})
		}
	}
	sort.Slice(convs, func(i, j int) bool { return convs[i].last.After(convs[j].last) })
	out := make([]string, len(convs))
	for i, c := range convs {
		out[i] = c.id
	}
	return out, nil
}
