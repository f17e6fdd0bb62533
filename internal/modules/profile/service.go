package profile

import (
	"context"
	"errors"
	"time"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// Service manages display profiles. Only the owner mutates their profile;
// reads by other users go through the visibility gate.
type Service struct {
	repo repository.ProfileRepository
	now  func() time.Time
}

func NewService(repo repository.ProfileRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// GetOwn returns the caller's profile, creating an empty one if the
// account predates profile auto-creation.
func (s *Service) GetOwn(ctx context.Context, userID string) (*models.UserProfile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	p = &models.UserProfile{UserID: userID, Visibility: models.VisibilityPublic}
	p.Stamp(s.now())
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByUserID returns another user's profile if its visibility allows.
// The friends level currently behaves like private for non-owners; the
// friend graph lives outside this service.
func (s *Service) GetByUserID(ctx context.Context, viewerID, userID string) (*models.UserProfile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.UserID != viewerID && p.Visibility != models.VisibilityPublic {
		return nil, errHiddenProfile
	}
	return p, nil
}

// Update applies a partial edit to the caller's own profile.
func (s *Service) Update(ctx context.Context, userID string, dto *UpdateProfileDTO) (*models.UserProfile, error) {
	p, err := s.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}

	if dto.DisplayName != nil {
		p.DisplayName = *dto.DisplayName
	}
	if dto.Bio != nil {
		p.Bio = *dto.Bio
	}
	if dto.Age != nil {
		p.Age = dto.Age
	}
	if dto.Gender != nil {
		p.Gender = *dto.Gender
	}
	if dto.LookingFor != nil {
		p.LookingFor = *dto.LookingFor
	}
	if dto.Interests != nil {
		p.Interests = *dto.Interests
	}
	if dto.Visibility != nil {
		if !dto.Visibility.Valid() {
			return nil, errInvalidVisibility
		}
		p.Visibility = *dto.Visibility
	}

	p.Touch(s.now())
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddPhoto appends a photo reference. Marking it primary clears the flag
// on every other photo.
func (s *Service) AddPhoto(ctx context.Context, userID string, dto *AddPhotoDTO) (*models.UserProfile, error) {
	p, err := s.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}

	if dto.IsPrimary {
		for i := range p.Photos {
			p.Photos[i].IsPrimary = false
		}
	}
	p.Photos = append(p.Photos, models.Photo{Key: dto.Key, URL: dto.URL, IsPrimary: dto.IsPrimary})

	p.Touch(s.now())
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemovePhoto deletes the photo with the given key from the profile.
func (s *Service) RemovePhoto(ctx context.Context, userID, key string) (*models.UserProfile, error) {
	p, err := s.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := p.Photos[:0]
	for _, photo := range p.Photos {
		if photo.Key != key {
			kept = append(kept, photo)
		}
	}
	if len(kept) == len(p.Photos) {
		return nil, repository.ErrNotFound
	}
	p.Photos = kept

	p.Touch(s.now())
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
