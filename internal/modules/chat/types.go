package chat

import (
	"errors"
	"sync"

	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"

	pkgredis "github.com/xenm/MapMe-sub002/internal/pkg/redis"
)

const (
	namespaceChat = "/chat"
	redisChanChat = "mapme:chat:fanout"

	eventNewMessage = "CHAT_MESSAGE"
	eventRead       = "CHAT_READ"
	eventPresence   = "CHAT_PRESENCE"
	eventConnectAck = "CHAT_CONNECT"
	eventAuthFailed = "AUTH_FAILED"
	eventSendFailed = "CHAT_SEND_FAILED"

	redisKeyOnlineUsers = "mapme:chat:online"
)

// envelope is the wire format for hub emits and Redis fan-out. Origin
// carries the emitting instance id so subscribers skip their own
// publications.
type envelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	// Users receiving this envelope.
	Users  []string `json:"users,omitempty"`
	Origin string   `json:"origin,omitempty"`
}

type chatPayload struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type clientMeta struct {
	sid    string
	userID string
}

// Hub manages the /chat socket.io namespace and cross-instance fan-out.
type Hub struct {
	mu       sync.RWMutex
	sidUser  map[string]string
	userSIDs map[string]map[string]struct{}

	broadcast  chan envelope
	register   chan clientMeta
	unregister chan clientMeta

	instanceID     string
	rc             *pkgredis.Client // nil when Redis is not configured
	logger         *zap.Logger
	sio            *socketio.Server
	svc            *Service
	tokenValidator func(token string) (userID string, err error)
}

// SendMessageDTO is the REST body for sending a chat message.
type SendMessageDTO struct {
	To   string `json:"to"   binding:"required"`
	Text string `json:"text" binding:"required"`
}

var (
	errEmptyMessage      = errors.New("message text is empty")
	errMessageTooLong    = errors.New("message text is too long")
	errSelfMessage       = errors.New("cannot message yourself")
	errRecipientNotFound = errors.New("recipient not found")
)
