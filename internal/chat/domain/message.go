package domain

import identity "devcollab/internal/identity/domain"

// Message is a single chat message. ReadBy starts as {sender} and only ever
// grows; read receipts never retract.
type Message struct {
	ID        string   `bson:"_id,omitempty" json:"id"`
	Sender    string   `bson:"sender" json:"sender"`
	Chat      string   `bson:"chat" json:"chat"`
	Content   string   `bson:"content" json:"content"`
	ReadBy    []string `bson:"read_by" json:"readBy"`
	CreatedAt int64    `bson:"created_at" json:"createdAt"`
}

// MessageView is a message with sender and reader identities resolved.
type MessageView struct {
	ID        string                 `json:"id"`
	Sender    identity.UserSummary   `json:"sender"`
	Chat      string                 `json:"chat"`
	Content   string                 `json:"content"`
	ReadBy    []identity.UserSummary `json:"readBy"`
	CreatedAt int64                  `json:"createdAt"`
}
