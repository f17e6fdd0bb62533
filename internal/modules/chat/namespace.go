package chat

import (
	"context"
	"strings"
	"time"

	socketio "github.com/zishang520/socket.io/v2/socket"
)

const sendTimeout = 10 * time.Second

type inboundChatMessage struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

func (h *Hub) registerNamespace() {
	ns := h.sio.Of(namespaceChat, nil)
	_ = ns.On("connection", func(args ...any) {
		client, ok := args[0].(*socketio.Socket)
		if !ok {
			return
		}

		token := normalizeToken(extractToken(client))
		userID, err := h.tokenValidator(token)
		if err != nil || userID == "" {
			_ = client.Emit("message", chatPayload{Type: eventAuthFailed, Data: "auth failed"})
			client.Disconnect(true)
			return
		}

		sid := string(client.Id())
		client.Join(socketio.Room(roomOfUser(userID)))
		h.register <- clientMeta{sid: sid, userID: userID}
		_ = client.Emit("message", chatPayload{Type: eventConnectAck, Data: "chat connected"})

		_ = client.On("send", func(eventArgs ...any) {
			msg, ok := parseInboundChatMessage(eventArgs...)
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			defer cancel()

			stored, err := h.svc.Send(ctx, userID, msg.To, msg.Text)
			if err != nil {
				_ = client.Emit("message", chatPayload{Type: eventSendFailed, Data: err.Error()})
				return
			}
			h.PushMessage(stored)
		})

		_ = client.On("read", func(eventArgs ...any) {
			withUser := firstStringArg(eventArgs...)
			if withUser == "" {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			defer cancel()

			if err := h.svc.MarkRead(ctx, userID, withUser); err != nil {
				return
			}
			h.PushRead(userID, withUser)
		})

		_ = client.On("disconnect", func(_ ...any) {
			h.unregister <- clientMeta{sid: sid, userID: userID}
		})
	})
}

func extractToken(client *socketio.Socket) string {
	handshake := client.Handshake()
	if handshake == nil {
		return ""
	}
	if token := firstValueFromMultiMap(handshake.Query, "token"); token != "" {
		return token
	}
	return firstValueFromMultiMap(handshake.Headers, "authorization")
}

func parseInboundChatMessage(args ...any) (inboundChatMessage, bool) {
	if len(args) == 0 {
		return inboundChatMessage{}, false
	}
	raw, ok := args[0].(map[string]interface{})
	if !ok {
		return inboundChatMessage{}, false
	}
	msg := inboundChatMessage{
		To:   strFromAny(raw["to"]),
		Text: strFromAny(raw["text"]),
	}
	if msg.To == "" || msg.Text == "" {
		return inboundChatMessage{}, false
	}
	return msg, true
}

func firstStringArg(args ...any) string {
	if len(args) == 0 {
		return ""
	}
	return strFromAny(args[0])
}

func strFromAny(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}

func firstValueFromMultiMap(m map[string][]string, key string) string {
	if m == nil {
		return ""
	}
	for k, values := range m {
		if strings.EqualFold(k, key) && len(values) > 0 {
			return strings.TrimSpace(values[0])
		}
	}
	return ""
}
