package app

import (
	"context"
	"strings"

	identity "devcollab/internal/identity/domain"
	"devcollab/internal/social/domain"
	"devcollab/internal/social/repository"
	errprocess "devcollab/pkg/err"
	"devcollab/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserDirectory resolves user ids to public summaries
type UserDirectory interface {
	FindUsers(ctx context.Context, userIDs []string) ([]identity.UserSummary, error)
}

// ProfileUseCase application services around developer profiles and the
// follow graph
type ProfileUseCase interface {
	GetOwnProfile(ctx context.Context, userID string) (*domain.ProfileView, error)
	GetProfile(ctx context.Context, username, viewerID string) (*domain.ProfileView, error)
	UpdateProfile(ctx context.Context, userID string, update *domain.ProfileUpdate) (*domain.ProfileView, error)
	EnsureProfile(ctx context.Context, userID, username string) error
	Follow(ctx context.Context, username, followerID string) error
	Unfollow(ctx context.Context, username, followerID string) error
	Followers(ctx context.Context, username string) (*domain.FollowListing, error)
	Following(ctx context.Context, username string) (*domain.FollowListing, error)
}

type profileUseCase struct {
	profileRepo repository.ProfileRepository
	users       UserDirectory
}

// NewProfileUseCase create a new ProfileUseCase
func NewProfileUseCase(profileRepo repository.ProfileRepository, users UserDirectory) ProfileUseCase {
	return &profileUseCase{profileRepo: profileRepo, users: users}
}

// EnsureProfile create the empty profile that backs a fresh account. Called
// on registration; a second call is a harmless overwrite of an empty doc.
func (u *profileUseCase) EnsureProfile(ctx context.Context, userID, username string) error {
	if _, err := u.profileRepo.FindByUserID(ctx, userID); err == nil {
		return nil
	}
	return u.profileRepo.Upsert(ctx, &domain.Profile{
		UserID:    userID,
		Username:  username,
		Followers: []string{},
		Following: []string{},
	})
}

func (u *profileUseCase) GetOwnProfile(ctx context.Context, userID string) (*domain.ProfileView, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errprocess.NotFound("profile not found")
		}
		return nil, err
	}
	return view(profile, userID), nil
}

func (u *profileUseCase) GetProfile(ctx context.Context, username, viewerID string) (*domain.ProfileView, error) {
	profile, err := u.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return view(profile, viewerID), nil
}

func (u *profileUseCase) UpdateProfile(ctx context.Context, userID string, update *domain.ProfileUpdate) (*domain.ProfileView, error) {
	if _, err := u.profileRepo.FindByUserID(ctx, userID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errprocess.NotFound("profile not found")
		}
		return nil, err
	}

	set := bson.M{}
	if update.Username != nil {
		name := strings.TrimSpace(*update.Username)
		if name == "" {
			return nil, errprocess.BadRequest("username cannot be empty")
		}
		if other, err := u.profileRepo.FindByUsername(ctx, name); err == nil && other.UserID != userID {
			return nil, errprocess.BadRequest("username is already taken")
		}
		set["username"] = name
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Skills != nil {
		set["skills"] = *update.Skills
	}
	if update.SocialLinks != nil {
		set["social_links"] = *update.SocialLinks
	}
	if len(set) == 0 {
		return nil, errprocess.BadRequest("nothing to update")
	}

	if err := u.profileRepo.UpdateFields(ctx, userID, set); err != nil {
		return nil, err
	}
	return u.GetOwnProfile(ctx, userID)
}

func (u *profileUseCase) Follow(ctx context.Context, username, followerID string) error {
	target, err := u.findByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target.UserID == followerID {
		return errprocess.BadRequest("cannot follow yourself")
	}

	if err := u.profileRepo.AddFollower(ctx, target.UserID, followerID); err != nil {
		return err
	}
	logger.Log.Info("follow", zap.String("target", target.UserID), zap.String("follower", followerID))
	return nil
}

func (u *profileUseCase) Unfollow(ctx context.Context, username, followerID string) error {
	target, err := u.findByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target.UserID == followerID {
		return errprocess.BadRequest("cannot unfollow yourself")
	}
	return u.profileRepo.RemoveFollower(ctx, target.UserID, followerID)
}

func (u *profileUseCase) Followers(ctx context.Context, username string) (*domain.FollowListing, error) {
	profile, err := u.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.listing(ctx, profile.Followers)
}

func (u *profileUseCase) Following(ctx context.Context, username string) (*domain.FollowListing, error) {
	profile, err := u.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.listing(ctx, profile.Following)
}

func (u *profileUseCase) findByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	profile, err := u.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errprocess.NotFound("profile not found")
		}
		return nil, err
	}
	return profile, nil
}

func (u *profileUseCase) listing(ctx context.Context, ids []string) (*domain.FollowListing, error) {
	users, err := u.users.FindUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &domain.FollowListing{Users: users, Total: len(ids)}, nil
}

func view(p *domain.Profile, viewerID string) *domain.ProfileView {
	follows := false
	for _, f := range p.Followers {
		if f == viewerID {
			follows = true
			break
		}
	}
	return &domain.ProfileView{
		Profile:        *p,
		FollowerCount:  len(p.Followers),
		FollowingCount: len(p.Following),
		ViewerFollows:  follows,
	}
}
