package datemark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/pkg/normalize"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// ErrInvalidVisitDate reports an unparseable visitDate value.
var ErrInvalidVisitDate = errors.New("visitDate must be YYYY-MM-DD")

// Service implements Date Mark business rules on top of the repository:
// normalization of descriptive lists, the one-mark-per-place rule, and
// soft deletion.
type Service struct {
	repo  repository.DateMarkRepository
	locks keyedMutex
	now   func() time.Time
}

func NewService(repo repository.DateMarkRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create runs the duplicate-aware create. When the draft carries a
// PlaceID and the user already has a non-deleted mark for that place, the
// existing record is returned with Existed=true and nothing is written.
// Marks without a PlaceID are always created; free-form map points cannot
// be deduplicated reliably.
//
// The check-then-insert pair is serialized per (user, place) with an
// in-process lock so two concurrent creates from the same user cannot
// both pass the existence check.
func (s *Service) Create(ctx context.Context, userID string, dto *CreateDateMarkDTO) (*CreateResult, error) {
	visitDate, err := parseOptionalVisitDate(dto.VisitDate)
	if err != nil {
		return nil, err
	}
	visibility := dto.Visibility
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}
	if !visibility.Valid() {
		return nil, fmt.Errorf("invalid visibility %q", dto.Visibility)
	}

	if dto.PlaceID != "" {
		unlock := s.locks.lock(userID + "\x00" + dto.PlaceID)
		defer unlock()

		existing, err := s.findByPlace(ctx, userID, dto.PlaceID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &CreateResult{Mark: existing, Existed: true}, nil
		}
	}

	mark := &models.DateMark{
		UserID:         userID,
		Point:          models.GeoPoint{Latitude: dto.Latitude, Longitude: dto.Longitude},
		PlaceID:        dto.PlaceID,
		Place:          dto.Place,
		Categories:     dto.Categories,
		CategoriesNorm: normalize.List(dto.Categories),
		Tags:           dto.Tags,
		TagsNorm:       normalize.List(dto.Tags),
		Qualities:      dto.Qualities,
		QualitiesNorm:  normalize.List(dto.Qualities),
		Note:           dto.Note,
		Rating:         dto.Rating,
		Recommend:      dto.Recommend,
		VisitDate:      visitDate,
		Visibility:     visibility,
	}
	mark.Stamp(s.now())

	if err := s.repo.Upsert(ctx, mark); err != nil {
		return nil, err
	}
	return &CreateResult{Mark: mark}, nil
}

// findByPlace scans the user's non-deleted marks for an ordinal PlaceID
// match. Per-user partitions are small; the scan streams and stops at the
// first hit.
func (s *Service) findByPlace(ctx context.Context, userID, placeID string) (*models.DateMark, error) {
	seq, err := s.repo.GetByUser(ctx, userID, repository.Filter{})
	if err != nil {
		return nil, err
	}
	defer seq.Close(ctx)
	for seq.Next(ctx) {
		if m := seq.Current(); m.PlaceID == placeID {
			found := *m
			return &found, nil
		}
	}
	return nil, seq.Err()
}

func (s *Service) GetByID(ctx context.Context, userID, id string) (*models.DateMark, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List returns the user's marks matching f, newest creation first.
func (s *Service) List(ctx context.Context, userID string, f repository.Filter) ([]models.DateMark, error) {
	seq, err := s.repo.GetByUser(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	return repository.Collect(ctx, seq)
}

// Update applies a partial update to a mark the user owns. Raw list edits
// recompute the corresponding normalized list.
func (s *Service) Update(ctx context.Context, userID, id string, dto *UpdateDateMarkDTO) (*models.DateMark, error) {
	mark, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if dto.Categories != nil {
		mark.Categories = *dto.Categories
		mark.CategoriesNorm = normalize.List(*dto.Categories)
	}
	if dto.Tags != nil {
		mark.Tags = *dto.Tags
		mark.TagsNorm = normalize.List(*dto.Tags)
	}
	if dto.Qualities != nil {
		mark.Qualities = *dto.Qualities
		mark.QualitiesNorm = normalize.List(*dto.Qualities)
	}
	if dto.Note != nil {
		mark.Note = *dto.Note
	}
	if dto.Rating != nil {
		mark.Rating = dto.Rating
	}
	if dto.Recommend != nil {
		mark.Recommend = dto.Recommend
	}
	if dto.VisitDate != nil {
		if *dto.VisitDate == "" {
			mark.VisitDate = nil
		} else {
			vd, err := ParseVisitDate(*dto.VisitDate)
			if err != nil {
				return nil, ErrInvalidVisitDate
			}
			mark.VisitDate = vd
		}
	}
	if dto.Visibility != nil {
		if !dto.Visibility.Valid() {
			return nil, fmt.Errorf("invalid visibility %q", *dto.Visibility)
		}
		mark.Visibility = *dto.Visibility
	}

	mark.Touch(s.now())
	if err := s.repo.Upsert(ctx, mark); err != nil {
		return nil, err
	}
	return mark, nil
}

// Delete soft-deletes a mark the user owns. The record stays in storage
// with IsDeleted set; every read path excludes it from then on.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	mark, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	mark.IsDeleted = true
	mark.Touch(s.now())
	return s.repo.Upsert(ctx, mark)
}

func parseOptionalVisitDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	vd, err := ParseVisitDate(*s)
	if err != nil {
		return nil, ErrInvalidVisitDate
	}
	return vd, nil
}
