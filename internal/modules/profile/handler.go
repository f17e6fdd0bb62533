package profile

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/xenm/MapMe-sub002/internal/middleware"
	"github.com/xenm/MapMe-sub002/internal/pkg/response"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/profile", authMW)
	g.GET("", h.getOwn)
	g.PATCH("", h.update)
	g.POST("/photos", h.addPhoto)

	rg.GET("/profiles/:userId", authMW, h.getByUser)
}

// GET /profile
func (h *Handler) getOwn(c *gin.Context) {
	p, err := h.svc.GetOwn(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}

// GET /profiles/:userId
func (h *Handler) getByUser(c *gin.Context) {
	p, err := h.svc.GetByUserID(c.Request.Context(), middleware.CurrentUserID(c), c.Param("userId"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.NotFound(c)
		case errors.Is(err, errHiddenProfile):
			response.Forbidden(c)
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, p)
}

// PATCH /profile
func (h *Handler) update(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, errInvalidVisibility) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}

// POST /profile/photos
func (h *Handler) addPhoto(c *gin.Context) {
	var dto AddPhotoDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.svc.AddPhoto(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}
