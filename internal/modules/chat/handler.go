package chat

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xenm/MapMe-sub002/internal/middleware"
	"github.com/xenm/MapMe-sub002/internal/pkg/response"
)

type Handler struct {
	svc *Service
	hub *Hub
}

func NewHandler(svc *Service, hub *Hub) *Handler {
	return &Handler{svc: svc, hub: hub}
}

// RegisterRoutes mounts socket.io plus the REST side of chat.
func (h *Handler) RegisterRoutes(root *gin.Engine, rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	sio := gin.WrapH(h.hub.Handler())
	root.Any("/socket.io", sio)
	root.Any("/socket.io/*any", sio)

	g := rg.Group("/chat", authMW)
	g.GET("/conversations", h.conversations)
	g.GET("/with/:userId", h.history)
	g.POST("/with/:userId/read", h.markRead)
	g.POST("/messages", h.send)
	g.GET("/stats", h.stats)
}

// GET /chat/conversations
func (h *Handler) conversations(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	convs, err := h.svc.Conversations(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	type conversation struct {
		ID   string `json:"id"`
		With string `json:"with"`
	}
	out := make([]conversation, 0, len(convs))
	for _, id := range convs {
		out = append(out, conversation{ID: id, With: otherParticipant(id, userID)})
	}
	response.OK(c, out)
}

// GET /chat/with/:userId?before=RFC3339&limit=N
func (h *Handler) history(c *gin.Context) {
	var before time.Time
	if raw := c.Query("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, "before must be RFC3339")
			return
		}
		before = t
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	msgs, err := h.svc.History(c.Request.Context(), middleware.CurrentUserID(c), c.Param("userId"), before, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, msgs)
}

// POST /chat/with/:userId/read
func (h *Handler) markRead(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	withUser := c.Param("userId")
	if err := h.svc.MarkRead(c.Request.Context(), userID, withUser); err != nil {
		response.InternalError(c, err)
		return
	}
	h.hub.PushRead(userID, withUser)
	response.NoContent(c)
}

// POST /chat/messages
func (h *Handler) send(c *gin.Context) {
	var dto SendMessageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), middleware.CurrentUserID(c), dto.To, dto.Text)
	if err != nil {
		switch {
		case errors.Is(err, errEmptyMessage), errors.Is(err, errMessageTooLong), errors.Is(err, errSelfMessage):
			response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, errRecipientNotFound):
			response.NotFoundMsg(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	h.hub.PushMessage(msg)
	response.Created(c, msg)
}

// GET /chat/stats
func (h *Handler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"online": h.hub.OnlineCount()})
}

// otherParticipant extracts the peer's user id from a conversation id.
func otherParticipant(conversationID, userID string) string {
	parts := strings.SplitN(conversationID, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	if parts[0] == userID {
		return parts[1]
	}
	return parts[0]
}
