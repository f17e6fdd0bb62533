package profile

import (
	"errors"

	"github.com/xenm/MapMe-sub002/internal/models"
)

// UpdateProfileDTO carries partial profile edits; nil fields stay untouched.
type UpdateProfileDTO struct {
	DisplayName *string            `json:"displayName" binding:"omitempty,max=64"`
	Bio         *string            `json:"bio"         binding:"omitempty,max=2048"`
	Age         *int               `json:"age"         binding:"omitempty,gte=18,lte=120"`
	Gender      *string            `json:"gender"`
	LookingFor  *string            `json:"lookingFor"`
	Interests   *[]string          `json:"interests"`
	Visibility  *models.Visibility `json:"visibility"`
}

// AddPhotoDTO registers an uploaded photo on the profile.
type AddPhotoDTO struct {
	Key       string `json:"key" binding:"required"`
	URL       string `json:"url" binding:"required,url"`
	IsPrimary bool   `json:"isPrimary"`
}

var (
	errInvalidVisibility = errors.New("visibility must be public, friends or private")
	errHiddenProfile     = errors.New("profile is not visible")
)
