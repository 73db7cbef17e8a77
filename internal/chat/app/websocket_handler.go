package app

import (
	"context"
	"time"

	"devcollab/internal/chat/domain"
	"devcollab/pkg/logger"
	"devcollab/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
	guardWait  = 5 * time.Second
)

// WSHandler bridges websocket connections and the hub. The credential was
// already checked by the JWT middleware on the upgrade request; the handler
// only deals with room subscriptions and typing relays. Messages are never
// accepted over the socket, sending goes through the REST path.
type WSHandler struct {
	hub   *Hub
	guard *Guard
}

// NewWSHandler create a websocket handler bound to a hub
func NewWSHandler(hub *Hub, guard *Guard) *WSHandler {
	return &WSHandler{hub: hub, guard: guard}
}

// Serve run one connection until it closes
func (h *WSHandler) Serve(conn *websocket.Conn) {
	userID, _ := conn.Locals(middlewares.TokenUserID).(string)
	if userID == "" {
		conn.Close()
		return
	}

	client := NewClient(userID)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	go h.writePump(conn, client)
	h.readLoop(conn, client)
}

func (h *WSHandler) readLoop(conn *websocket.Conn, client *Client) {
	for {
		var req domain.WSRequest
		if err := conn.ReadJSON(&req); err != nil {
			logger.Log.Debug("ws read ended",
				zap.String("user_id", client.UserID), zap.String("err", err.Error()))
			return
		}

		switch req.Event {
		case domain.EventJoinChat:
			h.joinChat(client, req.ChatID)
		case domain.EventLeaveChat:
			h.hub.LeaveChat(req.ChatID, client)
		case domain.EventTyping:
			h.relayTyping(client, req.ChatID, domain.EventUserTyping)
		case domain.EventStopTyping:
			h.relayTyping(client, req.ChatID, domain.EventUserStoppedTyping)
		default:
			h.hub.SendToUser(client.UserID, domain.WSEvent{
				Event:   domain.EventError,
				Payload: map[string]interface{}{"error": "unknown event: " + req.Event},
			})
		}
	}
}

// joinChat subscribe after a membership check so a socket cannot listen in on
// a chat it does not belong to.
func (h *WSHandler) joinChat(client *Client, chatID string) {
	ctx, cancel := context.WithTimeout(context.Background(), guardWait)
	defer cancel()

	if _, err := h.guard.Participant(ctx, chatID, client.UserID); err != nil {
		h.hub.SendToUser(client.UserID, domain.WSEvent{
			Event:   domain.EventError,
			Payload: map[string]interface{}{"error": err.Error(), "chatId": chatID},
		})
		return
	}
	h.hub.JoinChat(chatID, client)
}

// relayTyping fan a typing indicator out to the room, excluding the origin.
// Nothing is persisted.
func (h *WSHandler) relayTyping(client *Client, chatID, event string) {
	if !h.hub.InRoom(chatID, client) {
		return
	}
	payload := map[string]interface{}{
		"chatId": chatID,
		"userId": client.UserID,
	}
	if event == domain.EventUserTyping {
		payload["isTyping"] = true
	}
	h.hub.BroadcastToChat(chatID, client, domain.WSEvent{
		Event:   event,
		Payload: payload,
	})
}

// writePump drain the send channel onto the socket, pinging on an interval so
// dead peers get detected. Exits when the hub closes the channel.
func (h *WSHandler) writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
