package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"

	"github.com/xenm/MapMe-sub002/internal/models"
	pkgredis "github.com/xenm/MapMe-sub002/internal/pkg/redis"
)

// NewHub builds the chat gateway. rc may be nil, in which case delivery
// is single-instance only (no cross-instance fan-out).
func NewHub(svc *Service, rc *pkgredis.Client, logger *zap.Logger, tokenValidator func(string) (string, error)) *Hub {
	sio := socketio.NewServer(nil, nil)
	h := &Hub{
		sidUser:        make(map[string]string),
		userSIDs:       make(map[string]map[string]struct{}),
		broadcast:      make(chan envelope, 256),
		register:       make(chan clientMeta, 256),
		unregister:     make(chan clientMeta, 256),
		instanceID:     uuid.New().String(),
		rc:             rc,
		logger:         logger,
		sio:            sio,
		svc:            svc,
		tokenValidator: tokenValidator,
	}
	h.registerNamespace()
	return h
}

// Run starts the hub loop and, when Redis is available, the cross-instance
// subscriber.
func (h *Hub) Run(ctx context.Context) {
	if h.rc != nil {
		go h.subscribeRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.sio.Close(nil)
			return

		case c := <-h.register:
			h.registerClient(ctx, c)

		case c := <-h.unregister:
			h.unregisterClient(ctx, c)

		case env := <-h.broadcast:
			h.deliver(env)
			if h.rc == nil {
				continue
			}
			env.Origin = h.instanceID
			data, err := json.Marshal(env)
			if err != nil {
				continue
			}
			if err := h.rc.Publish(ctx, redisChanChat, string(data)); err != nil && h.logger != nil {
				h.logger.Warn("chat publish failed", zap.Error(err))
			}
		}
	}
}

// PushMessage fans a stored message out to both participants.
func (h *Hub) PushMessage(msg *models.ChatMessage) {
	h.broadcast <- envelope{
		Event:   eventNewMessage,
		Payload: msg,
		Users:   []string{msg.SenderID, msg.RecipientID},
	}
}

// PushRead notifies the other participant that the caller read the
// conversation.
func (h *Hub) PushRead(readerID, withUserID string) {
	h.broadcast <- envelope{
		Event: eventRead,
		Payload: map[string]interface{}{
			"conversationId": models.ConversationID(readerID, withUserID),
			"readerId":       readerID,
		},
		Users: []string{withUserID},
	}
}

// OnlineCount reports connected users on this instance.
func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userSIDs)
}

// Handler returns the socket.io HTTP handler mounted at /socket.io.
func (h *Hub) Handler() http.Handler {
	return h.sio.ServeHandler(nil)
}

func (h *Hub) registerClient(ctx context.Context, c clientMeta) {
	firstSocket := false

	h.mu.Lock()
	h.sidUser[c.sid] = c.userID
	set, ok := h.userSIDs[c.userID]
	if !ok {
		set = make(map[string]struct{})
		h.userSIDs[c.userID] = set
		firstSocket = true
	}
	set[c.sid] = struct{}{}
	h.mu.Unlock()

	if firstSocket {
		h.trackPresence(ctx, c.userID, true)
	}
}

func (h *Hub) unregisterClient(ctx context.Context, c clientMeta) {
	lastSocket := false

	h.mu.Lock()
	delete(h.sidUser, c.sid)
	if set, ok := h.userSIDs[c.userID]; ok {
		delete(set, c.sid)
		if len(set) == 0 {
			delete(h.userSIDs, c.userID)
			lastSocket = true
		}
	}
	h.mu.Unlock()

	if lastSocket {
		h.trackPresence(ctx, c.userID, false)
	}
}

// trackPresence keeps the shared online-user set in Redis and tells the
// user's chat partners.
func (h *Hub) trackPresence(ctx context.Context, userID string, online bool) {
	if h.rc != nil {
		var err error
		if online {
			err = h.rc.Raw().SAdd(ctx, redisKeyOnlineUsers, userID).Err()
		} else {
			err = h.rc.Raw().SRem(ctx, redisKeyOnlineUsers, userID).Err()
		}
		if err != nil && h.logger != nil {
			h.logger.Warn("chat presence update failed", zap.Error(err))
		}
	}

	partners, err := h.svc.Conversations(ctx, userID)
	if err != nil {
		return
	}
	users := make([]string, 0, len(partners))
	for _, convID := range partners {
		if other := otherParticipant(convID, userID); other != "" {
			users = append(users, other)
		}
	}
	if len(users) == 0 {
		return
	}
	h.broadcast <- envelope{
		Event:   eventPresence,
		Payload: map[string]interface{}{"userId": userID, "online": online},
		Users:   users,
	}
}

// deliver emits the envelope to every local socket of the target users.
func (h *Hub) deliver(env envelope) {
	payload := chatPayload{Type: env.Event, Data: env.Payload}
	ns := h.sio.Of(namespaceChat, nil)
	for _, userID := range env.Users {
		ns.To(socketio.Room(roomOfUser(userID))).Emit("message", payload)
	}
}

// subscribeRedis listens for broadcasts from other server instances.
func (h *Hub) subscribeRedis(ctx context.Context) {
	pubsub := h.rc.Subscribe(ctx, redisChanChat)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
				continue
			}
			if env.Origin == h.instanceID {
				continue
			}
			h.deliver(env)
		}
	}
}

func roomOfUser(userID string) string { return "user:" + userID }
