package domain

import identity "devcollab/internal/identity/domain"

// Profile public developer profile, keyed by the owning user id. Username is
// unique and is what profile URLs address.
type Profile struct {
	UserID      string            `bson:"_id" json:"userId"`
	Username    string            `bson:"username" json:"username"`
	Avatar      string            `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio         string            `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills      []string          `bson:"skills,omitempty" json:"skills,omitempty"`
	SocialLinks map[string]string `bson:"social_links,omitempty" json:"socialLinks,omitempty"`
	Followers   []string          `bson:"followers" json:"-"`
	Following   []string          `bson:"following" json:"-"`
	CreatedAt   int64             `bson:"created_at" json:"createdAt"`
	UpdatedAt   int64             `bson:"updated_at" json:"updatedAt"`
}

// ProfileView profile with follower counts and the viewer's follow state
type ProfileView struct {
	Profile
	FollowerCount  int  `json:"followerCount"`
	FollowingCount int  `json:"followingCount"`
	ViewerFollows  bool `json:"viewerFollows"`
}

// ProfileUpdate fields a user may change on their own profile. Nil means keep.
type ProfileUpdate struct {
	Username    *string            `json:"username,omitempty"`
	Avatar      *string            `json:"avatar,omitempty"`
	Bio         *string            `json:"bio,omitempty"`
	Skills      *[]string          `json:"skills,omitempty"`
	SocialLinks *map[string]string `json:"socialLinks,omitempty"`
}

// FollowListing one page of follower or following identities
type FollowListing struct {
	Users []identity.UserSummary `json:"users"`
	Total int                    `json:"total"`
}
