package domain

// Client-to-server websocket events.
const (
	// EventJoinChat join a chat room
	EventJoinChat = "join_chat"
	// EventLeaveChat leave a chat room
	EventLeaveChat = "leave_chat"
	// EventTyping typing indicator start
	EventTyping = "typing"
	// EventStopTyping typing indicator stop
	EventStopTyping = "stop_typing"
)

// Server-to-client websocket events.
const (
	// EventMessageReceived a persisted message fanned out to a chat room
	EventMessageReceived = "message_received"
	// EventUserTyping another participant started typing
	EventUserTyping = "user_typing"
	// EventUserStoppedTyping another participant stopped typing
	EventUserStoppedTyping = "user_stopped_typing"
	// EventError the request could not be handled
	EventError = "error"
)

// WSRequest websocket request from a client
type WSRequest struct {
	Event    string `json:"event"`
	ChatID   string `json:"chatId"`
	IsTyping bool   `json:"isTyping,omitempty"`
}

// WSEvent websocket event pushed to clients
type WSEvent struct {
	Event   string                 `json:"event"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}
