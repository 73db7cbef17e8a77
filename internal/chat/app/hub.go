package app

import (
	"encoding/json"
	"sync"

	"devcollab/internal/chat/domain"
	"devcollab/pkg/logger"

	"go.uber.org/zap"
)

const sendBuffer = 64

// Client one websocket connection. The hub never touches the socket itself;
// it only feeds the Send channel, which the connection's write pump drains.
type Client struct {
	UserID string
	Send   chan []byte
}

// NewClient create a client with a buffered send channel
func NewClient(userID string) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan []byte, sendBuffer),
	}
}

// Hub in-process connection registry and room-based fan-out. All state lives
// in memory; nothing survives a restart and clients re-join rooms after a
// reconnect. Construct one per process and inject it where needed.
type Hub struct {
	mu    sync.RWMutex
	users map[string]map[*Client]struct{}
	rooms map[string]map[*Client]struct{}
}

// NewHub create an empty hub
func NewHub() *Hub {
	return &Hub{
		users: make(map[string]map[*Client]struct{}),
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// Register track a connection under its user id
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[c.UserID] == nil {
		h.users[c.UserID] = make(map[*Client]struct{})
	}
	h.users[c.UserID][c] = struct{}{}
	logger.Log.Debug("ws client registered", zap.String("user_id", c.UserID))
}

// Unregister drop a connection from the user registry and every room it
// joined, then close its send channel so the write pump exits.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.users[c.UserID]; ok {
		if _, tracked := conns[c]; !tracked {
			return
		}
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.users, c.UserID)
		}
	} else {
		return
	}
	for roomID, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	close(c.Send)
	logger.Log.Debug("ws client unregistered", zap.String("user_id", c.UserID))
}

// JoinChat subscribe the connection to a chat room
func (h *Hub) JoinChat(chatID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[chatID] == nil {
		h.rooms[chatID] = make(map[*Client]struct{})
	}
	h.rooms[chatID][c] = struct{}{}
}

// LeaveChat unsubscribe the connection from a chat room
func (h *Hub) LeaveChat(chatID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[chatID]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, chatID)
		}
	}
}

// BroadcastToChat push an event to every connection in the room, skipping the
// except connection when set. Exclusion is per connection, not per user, so a
// typing user's other devices still see their indicator. Delivery is best
// effort: a client whose send buffer is full misses the event rather than
// blocking the hub.
func (h *Hub) BroadcastToChat(chatID string, except *Client, event domain.WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("marshal ws event failed", zap.String("err", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[chatID] {
		if c == except {
			continue
		}
		select {
		case c.Send <- data:
		default:
			logger.Log.Warn("ws send buffer full, dropping event",
				zap.String("user_id", c.UserID), zap.String("event", event.Event))
		}
	}
}

// SendToUser push an event to every connection of one user
func (h *Hub) SendToUser(userID string, event domain.WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("marshal ws event failed", zap.String("err", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.users[userID] {
		select {
		case c.Send <- data:
		default:
		}
	}
}

// InRoom report whether the connection currently belongs to the room
func (h *Hub) InRoom(chatID string, c *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[chatID][c]
	return ok
}
