package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// Service persists chat messages and enforces the conversation rules:
// two distinct existing users, non-empty bounded text.
type Service struct {
	messages repository.MessageRepository
	users    repository.UserRepository

	maxMessageLen   int
	historyPageSize int
	now             func() time.Time
}

func NewService(messages repository.MessageRepository, users repository.UserRepository, maxMessageLen, historyPageSize int) *Service {
	return &Service{
		messages:        messages,
		users:           users,
		maxMessageLen:   maxMessageLen,
		historyPageSize: historyPageSize,
		now:             time.Now,
	}
}

// Send validates and persists one message, returning the stored record.
func (s *Service) Send(ctx context.Context, senderID, recipientID, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errEmptyMessage
	}
	if len(text) > s.maxMessageLen {
		return nil, errMessageTooLong
	}
	if senderID == recipientID {
		return nil, errSelfMessage
	}
	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errRecipientNotFound
		}
		return nil, err
	}

	msg := &models.ChatMessage{
		ConversationID: models.ConversationID(senderID, recipientID),
		SenderID:       senderID,
		RecipientID:    recipientID,
		Text:           text,
	}
	msg.Stamp(s.now())

	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// History returns messages between the caller and another user, newest
// first, up to limit (capped at the configured page size).
func (s *Service) History(ctx context.Context, userID, withUserID string, before time.Time, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > s.historyPageSize {
		limit = s.historyPageSize
	}
	convID := models.ConversationID(userID, withUserID)
	return s.messages.ListByConversation(ctx, convID, before, limit)
}

// MarkRead stamps every unread message the other user sent to the caller.
func (s *Service) MarkRead(ctx context.Context, userID, withUserID string) error {
	convID := models.ConversationID(userID, withUserID)
	return s.messages.MarkRead(ctx, convID, userID, s.now())
}

// Conversations lists the caller's conversations, most recently active
// first.
func (s *Service) Conversations(ctx context.Context, userID string) ([]string, error) {
	return s.messages.Conversations(ctx, userID)
}
