package models

import (
	"time"

	"github.com/google/uuid"
)

// Base carries identity and lifecycle fields shared by all stored entities.
// IDs are UUID strings so the in-memory and document backends agree on the
// key format. Records are never physically removed; IsDeleted marks them.
type Base struct {
	ID        string    `json:"id"        bson:"_id"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
	IsDeleted bool      `json:"isDeleted" bson:"isDeleted"`
}

// Stamp assigns a fresh ID when missing and sets both lifecycle timestamps.
// Call exactly once, at creation.
func (b *Base) Stamp(now time.Time) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch updates the modification timestamp.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}

// GeoPoint represents a geographic coordinate.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"  bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Visibility controls who may see a record.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityFriends Visibility = "friends"
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is one of the three known visibility levels.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	}
	return false
}
