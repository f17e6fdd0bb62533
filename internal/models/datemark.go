package models

import "time"

// DateMark is one user's recorded memory of a place: where it is, what it
// was like, and how it rated. Owned exclusively by UserID.
type DateMark struct {
	Base   `bson:",inline"`
	UserID string   `json:"userId" bson:"userId"`
	Point  GeoPoint `json:"point"  bson:"point"`

	// PlaceID is the external place identifier (e.g. a Places API id).
	// When present it is the dedup key: at most one non-deleted mark per
	// (user, place). Free-form map points leave it empty.
	PlaceID string         `json:"placeId,omitempty" bson:"placeId,omitempty"`
	Place   *PlaceSnapshot `json:"place,omitempty"   bson:"place,omitempty"`

	// Raw lists hold the user's text as typed; the *Norm lists hold the
	// canonical forms used for matching. Norm lists are derived, deduped
	// and never edited directly.
	Categories     []string `json:"categories,omitempty"     bson:"categories,omitempty"`
	CategoriesNorm []string `json:"categoriesNorm,omitempty" bson:"categoriesNorm,omitempty"`
	Tags           []string `json:"tags,omitempty"           bson:"tags,omitempty"`
	TagsNorm       []string `json:"tagsNorm,omitempty"       bson:"tagsNorm,omitempty"`
	Qualities      []string `json:"qualities,omitempty"      bson:"qualities,omitempty"`
	QualitiesNorm  []string `json:"qualitiesNorm,omitempty"  bson:"qualitiesNorm,omitempty"`

	Note       string     `json:"note,omitempty"      bson:"note,omitempty"`
	Rating     *int       `json:"rating,omitempty"    bson:"rating,omitempty"` // 1-5
	Recommend  *bool      `json:"recommend,omitempty" bson:"recommend,omitempty"`
	VisitDate  *time.Time `json:"visitDate,omitempty" bson:"visitDate,omitempty"` // date-only, UTC midnight
	Visibility Visibility `json:"visibility"          bson:"visibility"`
}

// PlaceSnapshot captures the external place data as it looked when the mark
// was created. It is a copy, not a live reference.
type PlaceSnapshot struct {
	Name       string   `json:"name,omitempty"       bson:"name,omitempty"`
	Types      []string `json:"types,omitempty"      bson:"types,omitempty"`
	Rating     *float64 `json:"rating,omitempty"     bson:"rating,omitempty"`
	PriceLevel *int     `json:"priceLevel,omitempty" bson:"priceLevel,omitempty"`
}
