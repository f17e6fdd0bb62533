package datemark

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xenm/MapMe-sub002/internal/middleware"
	"github.com/xenm/MapMe-sub002/internal/pkg/normalize"
	"github.com/xenm/MapMe-sub002/internal/pkg/pagination"
	"github.com/xenm/MapMe-sub002/internal/pkg/response"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/marks", authMW)

	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

// POST /marks
func (h *Handler) create(c *gin.Context) {
	var dto CreateDateMarkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, ErrInvalidVisitDate) || strings.Contains(err.Error(), "invalid visibility") {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	if result.Existed {
		// Idempotent create: the original record comes back untouched.
		response.OK(c, gin.H{"existed": true, "mark": result.Mark})
		return
	}
	response.Created(c, result.Mark)
}

// GET /marks?from=2024-01-01&to=2024-06-30&categories=cafe,bar&tags=...&qualities=...
func (h *Handler) list(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	marks, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c), f)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	page, pag := pagination.Slice(marks, pagination.FromContext(c))
	response.Paged(c, page, pag)
}

// GET /marks/:id
func (h *Handler) get(c *gin.Context) {
	mark, err := h.svc.GetByID(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, mark)
}

// PATCH /marks/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateDateMarkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	mark, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.NotFound(c)
		case errors.Is(err, ErrInvalidVisitDate), strings.Contains(err.Error(), "invalid visibility"):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, mark)
}

// DELETE /marks/:id
func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// filterFromQuery parses the list filters. Label filters are normalized
// here so both backends match against canonical forms.
func filterFromQuery(c *gin.Context) (repository.Filter, error) {
	var f repository.Filter

	if from := c.Query("from"); from != "" {
		t, err := ParseVisitDate(from)
		if err != nil {
			return f, ErrInvalidVisitDate
		}
		f.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := ParseVisitDate(to)
		if err != nil {
			return f, ErrInvalidVisitDate
		}
		f.To = t
	}
	f.Categories = normalize.List(splitCSV(c.Query("categories")))
	f.Tags = normalize.List(splitCSV(c.Query("tags")))
	f.Qualities = normalize.List(splitCSV(c.Query("qualities")))
	return f, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
