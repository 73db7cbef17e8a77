package domain

import identity "devcollab/internal/identity/domain"

// Chat is a conversation record. Direct and group chats share one entity with
// a discriminant flag; ChatName and GroupAdmin are only meaningful for groups.
type Chat struct {
	ID            string   `bson:"_id,omitempty" json:"id"`
	IsGroupChat   bool     `bson:"is_group_chat" json:"isGroupChat"`
	ChatName      string   `bson:"chat_name,omitempty" json:"chatName,omitempty"`
	Users         []string `bson:"users" json:"users"`
	GroupAdmin    string   `bson:"group_admin,omitempty" json:"groupAdmin,omitempty"`
	LatestMessage string   `bson:"latest_message,omitempty" json:"latestMessage,omitempty"`
	CreatedAt     int64    `bson:"created_at" json:"createdAt"`
	UpdatedAt     int64    `bson:"updated_at" json:"updatedAt"`
}

// HasUser check the user belongs to the chat
func (c *Chat) HasUser(userID string) bool {
	for _, u := range c.Users {
		if u == userID {
			return true
		}
	}
	return false
}

// ChatView is a chat with its member identities and latest message resolved,
// the shape returned to clients.
type ChatView struct {
	ID            string                 `json:"id"`
	IsGroupChat   bool                   `json:"isGroupChat"`
	ChatName      string                 `json:"chatName,omitempty"`
	Users         []identity.UserSummary `json:"users"`
	GroupAdmin    *identity.UserSummary  `json:"groupAdmin,omitempty"`
	LatestMessage *MessageView           `json:"latestMessage,omitempty"`
	CreatedAt     int64                  `json:"createdAt"`
	UpdatedAt     int64                  `json:"updatedAt"`
}
