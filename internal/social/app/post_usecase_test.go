package app

import (
	"context"
	"errors"
	"testing"

	"devcollab/internal/social/domain"
	errprocess "devcollab/pkg/err"
	"devcollab/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
)

func newPostUC(postRepo *MockPostRepo, commentRepo *MockCommentRepo, store *MockMediaStore) PostUseCase {
	if store == nil {
		return NewPostUseCase(postRepo, commentRepo, stubDirectory{}, nil, nil)
	}
	return NewPostUseCase(postRepo, commentRepo, stubDirectory{}, store, nil)
}

func TestPostUseCase_CreatePost(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("needs content or media", func(t *testing.T) {
		uc := newPostUC(new(MockPostRepo), new(MockCommentRepo), nil)
		_, err := uc.CreatePost(ctx, "alice", "", "public", nil)
		assert.True(t, errors.Is(err, errprocess.ErrBadRequest))
	})

	t.Run("rejects unknown visibility", func(t *testing.T) {
		uc := newPostUC(new(MockPostRepo), new(MockCommentRepo), nil)
		_, err := uc.CreatePost(ctx, "alice", "hi", "friends-only", nil)
		assert.True(t, errors.Is(err, errprocess.ErrBadRequest))
	})

	t.Run("defaults to public and resolves the author", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		postRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Post) bool {
			return p.Author == "alice" && p.Visibility == domain.VisibilityPublic
		})).Return("p1", nil)

		uc := newPostUC(postRepo, new(MockCommentRepo), nil)
		view, err := uc.CreatePost(ctx, "alice", "hello world", "", nil)

		assert.NoError(t, err)
		assert.Equal(t, "p1", view.ID)
		assert.Equal(t, "alice", view.Author.ID)
		postRepo.AssertExpectations(t)
	})
}

func TestPostUseCase_GetPost(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("unknown post is not found", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		postRepo.On("FindByID", ctx, "ghost").Return(nil, mongo.ErrNoDocuments)

		uc := newPostUC(postRepo, new(MockCommentRepo), nil)
		_, err := uc.GetPost(ctx, "ghost", "alice")
		assert.True(t, errors.Is(err, errprocess.ErrNotFound))
	})

	t.Run("private post is hidden from others", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		postRepo.On("FindByID", ctx, "p1").
			Return(&domain.Post{ID: "p1", Author: "alice", Visibility: domain.VisibilityPrivate}, nil)

		uc := newPostUC(postRepo, new(MockCommentRepo), nil)
		_, err := uc.GetPost(ctx, "p1", "bob")
		assert.True(t, errors.Is(err, errprocess.ErrForbidden))

		view, err := uc.GetPost(ctx, "p1", "alice")
		assert.NoError(t, err)
		assert.Equal(t, "p1", view.ID)
	})
}

func TestPostUseCase_Feed(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	postRepo := new(MockPostRepo)
	postRepo.On("FindPublicFeed", ctx, int64(1), int64(defaultFeedLimit)).Return([]domain.Post{
		{ID: "p2", Author: "bob", Content: "newer", Likes: []string{"alice", "carol"}, Visibility: domain.VisibilityPublic},
		{ID: "p1", Author: "alice", Content: "older", Likes: []string{}, Visibility: domain.VisibilityPublic},
	}, nil)

	uc := newPostUC(postRepo, new(MockCommentRepo), nil)
	views, err := uc.Feed(ctx, "alice", 1, 0)

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, 2, views[0].LikeCount)
	assert.True(t, views[0].LikedByViewer)
	assert.False(t, views[1].LikedByViewer)
}

func TestPostUseCase_PostsByAuthor(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	authored := []domain.Post{
		{ID: "p1", Author: "alice", Content: "shipped", Visibility: domain.VisibilityPublic},
		{ID: "p2", Author: "alice", Content: "draft", Visibility: domain.VisibilityPrivate},
	}

	t.Run("the author sees private posts", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		postRepo.On("FindByAuthor", ctx, "alice").Return(authored, nil)

		uc := newPostUC(postRepo, new(MockCommentRepo), nil)
		views, err := uc.PostsByAuthor(ctx, "alice", "alice")

		assert.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("other viewers only see public posts", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		postRepo.On("FindByAuthor", ctx, "alice").Return(authored, nil)

		uc := newPostUC(postRepo, new(MockCommentRepo), nil)
		views, err := uc.PostsByAuthor(ctx, "alice", "bob")

		assert.NoError(t, err)
		assert.Len(t, views, 1)
		assert.Equal(t, "p1", views[0].ID)
	})
}

func TestPostUseCase_ToggleLike(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("first toggle likes", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		postRepo.On("FindByID", ctx, "p1").
			Return(&domain.Post{ID: "p1", Author: "alice", Visibility: domain.VisibilityPublic}, nil)
		postRepo.On("AddLike", ctx, "p1", "bob").Return(nil)

		uc := newPostUC(postRepo, new(MockCommentRepo), nil)
		liked, err := uc.ToggleLike(ctx, "p1", "bob")

		assert.NoError(t, err)
		assert.True(t, liked)
	})

	t.Run("second toggle unlikes", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		postRepo.On("FindByID", ctx, "p1").
			Return(&domain.Post{ID: "p1", Author: "alice", Likes: []string{"bob"}, Visibility: domain.VisibilityPublic}, nil)
		postRepo.On("RemoveLike", ctx, "p1", "bob").Return(nil)

		uc := newPostUC(postRepo, new(MockCommentRepo), nil)
		liked, err := uc.ToggleLike(ctx, "p1", "bob")

		assert.NoError(t, err)
		assert.False(t, liked)
	})
}

func TestPostUseCase_DeletePost(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	post := &domain.Post{ID: "p1", Author: "alice", Visibility: domain.VisibilityPublic,
		Media: []domain.MediaRef{{URL: "http://x/o1", ObjectKey: "o1"}}}

	t.Run("only the author may delete", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		postRepo.On("FindByID", ctx, "p1").Return(post, nil)

		uc := newPostUC(postRepo, new(MockCommentRepo), nil)
		err := uc.DeletePost(ctx, "p1", "bob")
		assert.True(t, errors.Is(err, errprocess.ErrForbidden))
	})

	t.Run("cascades comments and media", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		commentRepo := new(MockCommentRepo)
		store := new(MockMediaStore)
		postRepo.On("FindByID", ctx, "p1").Return(post, nil)
		commentRepo.On("DeleteForPost", ctx, "p1").Return(nil)
		postRepo.On("Delete", ctx, "p1").Return(nil)
		store.On("Remove", ctx, "o1").Return(nil)

		uc := newPostUC(postRepo, commentRepo, store)
		assert.NoError(t, uc.DeletePost(ctx, "p1", "alice"))
		commentRepo.AssertExpectations(t)
		store.AssertExpectations(t)
	})
}

func TestPostUseCase_Comments(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	post := &domain.Post{ID: "p1", Author: "alice", Visibility: domain.VisibilityPublic}

	t.Run("comment bumps the count", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		commentRepo := new(MockCommentRepo)
		postRepo.On("FindByID", ctx, "p1").Return(post, nil)
		commentRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.Post == "p1" && c.Author == "bob" && c.Content == "nice"
		})).Return("cm1", nil)
		postRepo.On("AdjustCommentCount", ctx, "p1", int64(1)).Return(nil)

		uc := newPostUC(postRepo, commentRepo, nil)
		view, err := uc.AddComment(ctx, "p1", "bob", "nice")

		assert.NoError(t, err)
		assert.Equal(t, "cm1", view.ID)
		postRepo.AssertExpectations(t)
	})

	t.Run("empty comment is rejected", func(t *testing.T) {
		uc := newPostUC(new(MockPostRepo), new(MockCommentRepo), nil)
		_, err := uc.AddComment(ctx, "p1", "bob", "")
		assert.True(t, errors.Is(err, errprocess.ErrBadRequest))
	})

	t.Run("delete decrements the count and is author only", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		commentRepo := new(MockCommentRepo)
		commentRepo.On("FindByID", ctx, "cm1").
			Return(&domain.Comment{ID: "cm1", Post: "p1", Author: "bob"}, nil)
		commentRepo.On("Delete", ctx, "cm1").Return(nil)
		postRepo.On("AdjustCommentCount", ctx, "p1", int64(-1)).Return(nil)

		uc := newPostUC(postRepo, commentRepo, nil)
		assert.True(t, errors.Is(uc.DeleteComment(ctx, "cm1", "mallory"), errprocess.ErrForbidden))
		assert.NoError(t, uc.DeleteComment(ctx, "cm1", "bob"))
		postRepo.AssertExpectations(t)
	})

	t.Run("edit is author only", func(t *testing.T) {
		commentRepo := new(MockCommentRepo)
		commentRepo.On("FindByID", ctx, "cm1").
			Return(&domain.Comment{ID: "cm1", Post: "p1", Author: "bob", Content: "old"}, nil)
		commentRepo.On("UpdateContent", ctx, "cm1", "new").Return(nil)

		uc := newPostUC(new(MockPostRepo), commentRepo, nil)
		_, err := uc.UpdateComment(ctx, "cm1", "mallory", "new")
		assert.True(t, errors.Is(err, errprocess.ErrForbidden))

		view, err := uc.UpdateComment(ctx, "cm1", "bob", "new")
		assert.NoError(t, err)
		assert.Equal(t, "new", view.Content)
	})
}
