package photo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenm/MapMe-sub002/internal/config"
)

const maxPhotoSize = 5 << 20 // 5 MiB

var allowedContentTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

var (
	errPhotoTooLarge   = errors.New("photo exceeds the 5 MiB limit")
	errUnsupportedType = errors.New("photo must be jpeg, png or webp")
	// ErrDisabled means no object storage is configured.
	ErrDisabled = errors.New("photo storage is not configured")
)

// UploadResult identifies a stored photo object.
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Service stores profile photos in S3-compatible object storage. With no
// storage configured every call fails with ErrDisabled.
type Service struct {
	s3     *s3Client
	logger *zap.Logger
}

func NewService(cfg config.S3Config, logger *zap.Logger) *Service {
	svc := &Service{logger: logger}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return svc
	}
	client, err := newS3Client(cfg)
	if err != nil {
		if logger != nil {
			logger.Warn("photo storage disabled", zap.Error(err))
		}
		return svc
	}
	svc.s3 = client
	return svc
}

// Enabled reports whether object storage is configured.
func (s *Service) Enabled() bool { return s.s3 != nil }

// Upload validates and stores one photo, returning its object key and
// public URL. The key embeds the owner id so deletes can be verified.
func (s *Service) Upload(ctx context.Context, userID string, data []byte, contentType string) (*UploadResult, error) {
	if s.s3 == nil {
		return nil, ErrDisabled
	}
	if len(data) == 0 || len(data) > maxPhotoSize {
		return nil, errPhotoTooLarge
	}
	ext, ok := allowedContentTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, errUnsupportedType
	}

	key := fmt.Sprintf("photos/%s/%s.%s", userID, uuid.New().String(), ext)
	url, err := s.s3.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}
	return &UploadResult{Key: key, URL: url}, nil
}

// Remove deletes a stored photo. Only keys owned by userID are accepted.
func (s *Service) Remove(ctx context.Context, userID, key string) error {
	if s.s3 == nil {
		return ErrDisabled
	}
	if !strings.HasPrefix(key, "photos/"+userID+"/") {
		return fmt.Errorf("photo key does not belong to this user")
	}
	return s.s3.Delete(ctx, key)
}
