package datemark

import (
	"time"

	"github.com/xenm/MapMe-sub002/internal/models"
)

// CreateDateMarkDTO is the draft a client submits. Normalized lists and
// lifecycle fields are computed server-side.
type CreateDateMarkDTO struct {
	Latitude   float64               `json:"latitude"  binding:"required,gte=-90,lte=90"`
	Longitude  float64               `json:"longitude" binding:"required,gte=-180,lte=180"`
	PlaceID    string                `json:"placeId"`
	Place      *models.PlaceSnapshot `json:"place"`
	Categories []string              `json:"categories"`
	Tags       []string              `json:"tags"`
	Qualities  []string              `json:"qualities"`
	Note       string                `json:"note"`
	Rating     *int                  `json:"rating"    binding:"omitempty,gte=1,lte=5"`
	Recommend  *bool                 `json:"recommend"`
	VisitDate  *string               `json:"visitDate"` // "2006-01-02"
	Visibility models.Visibility     `json:"visibility"`
}

// UpdateDateMarkDTO carries partial updates; nil fields stay untouched.
type UpdateDateMarkDTO struct {
	Categories *[]string          `json:"categories"`
	Tags       *[]string          `json:"tags"`
	Qualities  *[]string          `json:"qualities"`
	Note       *string            `json:"note"`
	Rating     *int               `json:"rating"    binding:"omitempty,gte=1,lte=5"`
	Recommend  *bool              `json:"recommend"`
	VisitDate  *string            `json:"visitDate"`
	Visibility *models.Visibility `json:"visibility"`
}

// CreateResult reports the create outcome. Existed is true when a
// non-deleted mark for the same place already existed; Mark then holds
// that original record, untouched.
type CreateResult struct {
	Mark    *models.DateMark
	Existed bool
}

// ParseVisitDate parses the wire date-only format into UTC midnight.
func ParseVisitDate(s string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
