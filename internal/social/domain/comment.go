package domain

import identity "devcollab/internal/identity/domain"

// Comment a comment on a post
type Comment struct {
	ID        string   `bson:"_id,omitempty" json:"id"`
	Post      string   `bson:"post" json:"post"`
	Author    string   `bson:"author" json:"author"`
	Content   string   `bson:"content" json:"content"`
	Likes     []string `bson:"likes" json:"-"`
	CreatedAt int64    `bson:"created_at" json:"createdAt"`
	UpdatedAt int64    `bson:"updated_at" json:"updatedAt"`
}

// HasLike check the user already liked the comment
func (c *Comment) HasLike(userID string) bool {
	for _, u := range c.Likes {
		if u == userID {
			return true
		}
	}
	return false
}

// CommentView comment with the author resolved and the viewer's like state
type CommentView struct {
	ID            string               `json:"id"`
	Post          string               `json:"post"`
	Author        identity.UserSummary `json:"author"`
	Content       string               `json:"content"`
	LikeCount     int                  `json:"likeCount"`
	LikedByViewer bool                 `json:"likedByViewer"`
	CreatedAt     int64                `json:"createdAt"`
	UpdatedAt     int64                `json:"updatedAt"`
}
