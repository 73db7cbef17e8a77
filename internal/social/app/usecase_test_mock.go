package app

import (
	"context"
	"io"
	"time"

	identity "devcollab/internal/identity/domain"
	"devcollab/internal/media"
	"devcollab/internal/social/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// MockProfileRepo Mock ProfileRepository
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockProfileRepo) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockProfileRepo) FindByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockProfileRepo) UpdateFields(ctx context.Context, userID string, set bson.M) error {
	args := m.Called(ctx, userID, set)
	return args.Error(0)
}
func (m *MockProfileRepo) AddFollower(ctx context.Context, targetID, followerID string) error {
	args := m.Called(ctx, targetID, followerID)
	return args.Error(0)
}
func (m *MockProfileRepo) RemoveFollower(ctx context.Context, targetID, followerID string) error {
	args := m.Called(ctx, targetID, followerID)
	return args.Error(0)
}

// MockPostRepo Mock PostRepository
type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) Create(ctx context.Context, post *domain.Post) (string, error) {
	args := m.Called(ctx, post)
	if post.ID == "" {
		post.ID = args.String(0)
	}
	return args.String(0), args.Error(1)
}
func (m *MockPostRepo) FindByID(ctx context.Context, postID string) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Post), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockPostRepo) FindPublicFeed(ctx context.Context, page, limit int64) ([]domain.Post, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Post), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockPostRepo) FindByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Post), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockPostRepo) AddLike(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}
func (m *MockPostRepo) RemoveLike(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}
func (m *MockPostRepo) AdjustCommentCount(ctx context.Context, postID string, delta int64) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}
func (m *MockPostRepo) Delete(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

// MockCommentRepo Mock CommentRepository
type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, comment *domain.Comment) (string, error) {
	args := m.Called(ctx, comment)
	if comment.ID == "" {
		comment.ID = args.String(0)
	}
	return args.String(0), args.Error(1)
}
func (m *MockCommentRepo) FindByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockCommentRepo) FindForPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockCommentRepo) UpdateContent(ctx context.Context, commentID, content string) error {
	args := m.Called(ctx, commentID, content)
	return args.Error(0)
}
func (m *MockCommentRepo) AddLike(ctx context.Context, commentID, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}
func (m *MockCommentRepo) RemoveLike(ctx context.Context, commentID, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}
func (m *MockCommentRepo) Delete(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}
func (m *MockCommentRepo) DeleteForPost(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

// MockMediaStore Mock of the media store
type MockMediaStore struct {
	mock.Mock
}

var _ media.Store = (*MockMediaStore)(nil)

func (m *MockMediaStore) Upload(ctx context.Context, ownerID, fileName, contentType string, reader io.Reader, size int64) (*media.Object, error) {
	args := m.Called(ctx, ownerID, fileName, contentType, reader, size)
	if args.Get(0) != nil {
		return args.Get(0).(*media.Object), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMediaStore) Remove(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}
func (m *MockMediaStore) PresignURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expiry)
	return args.String(0), args.Error(1)
}

// stubDirectory resolves every id to a deterministic summary
type stubDirectory struct{}

func (stubDirectory) FindUsers(ctx context.Context, userIDs []string) ([]identity.UserSummary, error) {
	seen := make(map[string]bool)
	var out []identity.UserSummary
	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, identity.UserSummary{ID: id, Name: "user " + id, Email: id + "@devcollab.test"})
	}
	return out, nil
}
