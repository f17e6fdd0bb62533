package photo

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xenm/MapMe-sub002/internal/middleware"
	"github.com/xenm/MapMe-sub002/internal/modules/profile"
	"github.com/xenm/MapMe-sub002/internal/pkg/response"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// Handler exposes photo upload and removal. Uploads go to object storage
// first and are then attached to the caller's profile.
type Handler struct {
	svc      *Service
	profiles *profile.Service
}

func NewHandler(svc *Service, profiles *profile.Service) *Handler {
	return &Handler{svc: svc, profiles: profiles}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/profile/photos", authMW)
	g.POST("/upload", h.upload)
	g.DELETE("/*key", h.remove)
}

// POST /profile/photos/upload (multipart: file, isPrimary)
func (h *Handler) upload(c *gin.Context) {
	if !h.svc.Enabled() {
		response.NotImplemented(c, ErrDisabled.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "multipart field 'file' is required")
		return
	}
	if fileHeader.Size > maxPhotoSize {
		response.UnprocessableEntity(c, errPhotoTooLarge.Error())
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPhotoSize+1))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	userID := middleware.CurrentUserID(c)
	result, err := h.svc.Upload(c.Request.Context(), userID, data, contentType)
	if err != nil {
		switch {
		case errors.Is(err, errPhotoTooLarge), errors.Is(err, errUnsupportedType):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}

	isPrimary := c.PostForm("isPrimary") == "true"
	p, err := h.profiles.AddPhoto(c.Request.Context(), userID, &profile.AddPhotoDTO{
		Key:       result.Key,
		URL:       result.URL,
		IsPrimary: isPrimary,
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"photo": result, "profile": p})
}

// DELETE /profile/photos/*key
func (h *Handler) remove(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		response.BadRequest(c, "photo key is required")
		return
	}

	p, err := h.profiles.RemovePhoto(c.Request.Context(), userID, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	// Object removal is best effort; the profile reference is already gone.
	if h.svc.Enabled() {
		_ = h.svc.Remove(c.Request.Context(), userID, key)
	}
	response.OK(c, p)
}
