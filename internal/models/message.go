package models

import (
	"sort"
	"strings"
	"time"
)

// ChatMessage is one message inside a two-party conversation.
type ChatMessage struct {
	Base           `bson:",inline"`
	ConversationID string     `json:"conversationId"   bson:"conversationId"`
	SenderID       string     `json:"senderId"         bson:"senderId"`
	RecipientID    string     `json:"recipientId"      bson:"recipientId"`
	Text           string     `json:"text"             bson:"text"`
	ReadAt         *time.Time `json:"readAt,omitempty" bson:"readAt,omitempty"`
}

// ConversationID derives the stable id for a two-party conversation.
// Order-independent so both participants compute the same id.
func ConversationID(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}
