package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/xenm/MapMe-sub002/internal/models"
	pkgjwt "github.com/xenm/MapMe-sub002/internal/pkg/jwt"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// Service handles registration and login. Registration creates both the
// credential account and an empty profile so the map UI always has
// something to render for a logged-in user.
type Service struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	tokenTTL time.Duration
	now      func() time.Time
}

func NewService(users repository.UserRepository, profiles repository.ProfileRepository, tokenTTL time.Duration) *Service {
	return &Service{users: users, profiles: profiles, tokenTTL: tokenTTL, now: time.Now}
}

func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (*models.UserAccount, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.UserAccount{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: string(hash),
	}
	u.Stamp(s.now())

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, errUsernameTaken
		}
		return nil, err
	}

	displayName := dto.DisplayName
	if displayName == "" {
		displayName = dto.Username
	}
	p := &models.UserProfile{
		UserID:      u.ID,
		DisplayName: displayName,
		Visibility:  models.VisibilityPublic,
	}
	p.Stamp(s.now())
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Login(ctx context.Context, dto *LoginDTO, ip string) (string, error) {
	u, err := s.users.GetByUsername(ctx, dto.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Burn roughly the same time as a bcrypt compare so missing
			// users are not distinguishable by response latency.
			_, _ = bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
			return "", errBadCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return "", errBadCredentials
	}

	now := s.now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.Touch(now)
	if err := s.users.Update(ctx, u); err != nil {
		return "", err
	}

	return pkgjwt.Sign(u.ID, s.tokenTTL)
}

func (s *Service) Me(ctx context.Context, userID string) (*models.UserAccount, error) {
	return s.users.GetByID(ctx, userID)
}
