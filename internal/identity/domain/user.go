package domain

import (
	"time"

	"devcollab/pkg/encrypt"
)

// UserStatus account state
type UserStatus int

const (
	// UserStatusOffline account exists, no live session
	UserStatusOffline UserStatus = iota
	// UserStatusOnline account has a live session
	UserStatusOnline
	// UserStatusBanned account blocked by an operator
	UserStatusBanned
	// UserStatusDeleted account soft-deleted
	UserStatusDeleted
)

// User account record
type User struct {
	ID       int64
	UserID   string
	Name     string
	Email    string
	Password string
	Status   UserStatus
}

// UserSummary the projection attached to chats, messages, posts and comments
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserSession session record kept in redis for the lifetime of a login
type UserSession struct {
	Token        string    `json:"Token"`
	UserID       string    `json:"UserID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsPasswordMatch verify a plain password against the stored hash
func (u *User) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(u.Password, inputPwd)
}

// Summary project the account to its public shape
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.UserID, Name: u.Name, Email: u.Email}
}

// IsExpired check the session is past its deadline
func (s *UserSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// UserQuery join conditions used to query users
type UserQuery struct {
	ID     *int64  `db:"id"`
	UserID *string `db:"user_id"`
	Email  *string `db:"email"`
}
