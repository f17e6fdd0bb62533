package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository/memory"
)

func newTestChat(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, id := range []string{"alice", "bob", "carol"} {
		u := &models.UserAccount{Username: id}
		u.ID = id
		u.Stamp(time.Now())
		if err := store.Users.Create(context.Background(), u); err != nil {
			t.Fatalf("seed user %s: %v", id, err)
		}
	}
	return NewService(store.Messages, store.Users, 200, 10), store
}

func TestConversationIDIsOrderIndependent(t *testing.T) {
	if models.ConversationID("alice", "bob") != models.ConversationID("bob", "alice") {
		t.Error("conversation id depends on argument order")
	}
	if got := models.ConversationID("bob", "alice"); got != "alice:bob" {
		t.Errorf("ConversationID = %q, want alice:bob", got)
	}
}

func TestSendValidation(t *testing.T) {
	svc, _ := newTestChat(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		sender    string
		recipient string
		text      string
		wantErr   error
	}{
		{"empty text", "alice", "bob", "   ", errEmptyMessage},
		{"too long", "alice", "bob", string(make([]byte, 201)), errMessageTooLong},
		{"self message", "alice", "alice", "hi me", errSelfMessage},
		{"unknown recipient", "alice", "nobody", "hello?", errRecipientNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Send(ctx, tt.sender, tt.recipient, tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Send() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSendStoresMessage(t *testing.T) {
	svc, _ := newTestChat(t)
	ctx := context.Background()

	msg, err := svc.Send(ctx, "alice", "bob", "  see you at eight  ")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.Text != "see you at eight" {
		t.Errorf("Text = %q, want trimmed", msg.Text)
	}
	if msg.ConversationID != models.ConversationID("alice", "bob") {
		t.Errorf("ConversationID = %q", msg.ConversationID)
	}
	if msg.ID == "" || msg.CreatedAt.IsZero() {
		t.Error("message was not stamped")
	}

	history, err := svc.History(ctx, "bob", "alice", time.Time{}, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].ID != msg.ID {
		t.Errorf("History = %v, want the sent message", history)
	}
}

func TestHistoryNewestFirstAndCapped(t *testing.T) {
	svc, _ := newTestChat(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		if _, err := svc.Send(ctx, "alice", "bob", fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("Send %d: %v", i, err)
		}
	}

	// Page size is 10; asking for more gets capped.
	history, err := svc.History(ctx, "alice", "bob", time.Time{}, 50)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 10 {
		t.Fatalf("len(history) = %d, want 10", len(history))
	}
	if history[0].Text != "msg 14" {
		t.Errorf("first = %q, want newest", history[0].Text)
	}

	// Paging backwards from the oldest of the first page.
	older, err := svc.History(ctx, "alice", "bob", history[len(history)-1].CreatedAt, 10)
	if err != nil {
		t.Fatalf("History page 2: %v", err)
	}
	if len(older) != 5 {
		t.Errorf("len(older) = %d, want 5", len(older))
	}
}

func TestMarkReadStampsOnlyRecipientUnread(t *testing.T) {
	svc, store := newTestChat(t)
	ctx := context.Background()

	if _, err := svc.Send(ctx, "alice", "bob", "one"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := svc.Send(ctx, "bob", "alice", "two"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if err := svc.MarkRead(ctx, "bob", "alice"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	convID := models.ConversationID("alice", "bob")
	msgs, err := store.Messages.ListByConversation(ctx, convID, time.Time{}, 0)
	if err != nil {
		t.Fatalf("ListByConversation: %v", err)
	}
	for _, m := range msgs {
		switch m.RecipientID {
		case "bob":
			if m.ReadAt == nil {
				t.Errorf("message to bob %q still unread", m.Text)
			}
		case "alice":
			if m.ReadAt != nil {
				t.Errorf("message to alice %q wrongly marked read", m.Text)
			}
		}
	}
}

func TestConversationsMostRecentFirst(t *testing.T) {
	svc, _ := newTestChat(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	if _, err := svc.Send(ctx, "alice", "bob", "hey bob"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	svc.now = func() time.Time { return base.Add(time.Hour) }
	if _, err := svc.Send(ctx, "alice", "carol", "hey carol"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	convs, err := svc.Conversations(ctx, "alice")
	if err != nil {
		t.Fatalf("Conversations: %v", err)
	}
	want := []string{
		models.ConversationID("alice", "carol"),
		models.ConversationID("alice", "bob"),
	}
	if len(convs) != 2 || convs[0] != want[0] || convs[1] != want[1] {
		t.Errorf("Conversations = %v, want %v", convs, want)
	}

	if convs, _ := svc.Conversations(ctx, "carol"); len(convs) != 1 {
		t.Errorf("carol conversations = %v, want 1", convs)
	}
}

func TestOtherParticipant(t *testing.T) {
	convID := models.ConversationID("alice", "bob")
	if got := otherParticipant(convID, "alice"); got != "bob" {
		t.Errorf("otherParticipant = %q, want bob", got)
	}
	if got := otherParticipant(convID, "bob"); got != "alice" {
		t.Errorf("otherParticipant = %q, want alice", got)
	}
	if got := otherParticipant("malformed", "alice"); got != "" {
		t.Errorf("otherParticipant on malformed id = %q, want empty", got)
	}
}
