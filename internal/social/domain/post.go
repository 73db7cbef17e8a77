package domain

import identity "devcollab/internal/identity/domain"

// Post visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// MediaRef a stored media object attached to a post
type MediaRef struct {
	URL       string `bson:"url" json:"url"`
	ObjectKey string `bson:"object_key" json:"objectKey"`
}

// Post a feed post. Likes is a user-id set maintained with $addToSet/$pull.
type Post struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	Author       string     `bson:"author" json:"author"`
	Content      string     `bson:"content" json:"content"`
	Media        []MediaRef `bson:"media,omitempty" json:"media,omitempty"`
	Likes        []string   `bson:"likes" json:"-"`
	CommentCount int64      `bson:"comment_count" json:"commentCount"`
	Visibility   string     `bson:"visibility" json:"visibility"`
	CreatedAt    int64      `bson:"created_at" json:"createdAt"`
}

// HasLike check the user already liked the post
func (p *Post) HasLike(userID string) bool {
	for _, u := range p.Likes {
		if u == userID {
			return true
		}
	}
	return false
}

// PostView post with the author resolved and the viewer's like state
type PostView struct {
	ID            string               `json:"id"`
	Author        identity.UserSummary `json:"author"`
	Content       string               `json:"content"`
	Media         []MediaRef           `json:"media,omitempty"`
	LikeCount     int                  `json:"likeCount"`
	LikedByViewer bool                 `json:"likedByViewer"`
	CommentCount  int64                `json:"commentCount"`
	Visibility    string               `json:"visibility"`
	CreatedAt     int64                `json:"createdAt"`
}
