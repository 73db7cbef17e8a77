package app

import (
	"context"

	identity "devcollab/internal/identity/domain"
	"devcollab/internal/media"
	"devcollab/internal/social/domain"
	"devcollab/internal/social/repository"
	errprocess "devcollab/pkg/err"
	"devcollab/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const defaultFeedLimit = 20

// ActivityRecorder emits best-effort activity records
type ActivityRecorder interface {
	Record(ctx context.Context, eventType string, payload map[string]interface{})
}

// PostUseCase application services around posts and comments
type PostUseCase interface {
	CreatePost(ctx context.Context, authorID, content, visibility string, mediaRefs []domain.MediaRef) (*domain.PostView, error)
	Feed(ctx context.Context, viewerID string, page, limit int64) ([]domain.PostView, error)
	GetPost(ctx context.Context, postID, viewerID string) (*domain.PostView, error)
	PostsByAuthor(ctx context.Context, authorID, viewerID string) ([]domain.PostView, error)
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
	DeletePost(ctx context.Context, postID, actorID string) error
	AddComment(ctx context.Context, postID, authorID, content string) (*domain.CommentView, error)
	ListComments(ctx context.Context, postID, viewerID string) ([]domain.CommentView, error)
	UpdateComment(ctx context.Context, commentID, actorID, content string) (*domain.CommentView, error)
	DeleteComment(ctx context.Context, commentID, actorID string) error
	ToggleCommentLike(ctx context.Context, commentID, userID string) (bool, error)
}

type postUseCase struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	users       UserDirectory
	mediaStore  media.Store
	activity    ActivityRecorder
}

// NewPostUseCase create a new PostUseCase. mediaStore and activity may be nil.
func NewPostUseCase(postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	users UserDirectory,
	mediaStore media.Store,
	activity ActivityRecorder,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		users:       users,
		mediaStore:  mediaStore,
		activity:    activity,
	}
}

// CreatePost a post needs text or at least one media attachment
func (u *postUseCase) CreatePost(ctx context.Context, authorID, content, visibility string, mediaRefs []domain.MediaRef) (*domain.PostView, error) {
	if content == "" && len(mediaRefs) == 0 {
		return nil, errprocess.BadRequest("a post needs content or media")
	}
	if visibility == "" {
		visibility = domain.VisibilityPublic
	}
	if visibility != domain.VisibilityPublic && visibility != domain.VisibilityPrivate {
		return nil, errprocess.BadRequest("visibility must be public or private")
	}

	post := &domain.Post{
		Author:     authorID,
		Content:    content,
		Media:      mediaRefs,
		Visibility: visibility,
	}
	if _, err := u.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	logger.Log.Info("post created", zap.String("post_id", post.ID), zap.String("author", authorID))

	if u.activity != nil {
		u.activity.Record(ctx, "post_created", map[string]interface{}{
			"post_id": post.ID,
			"author":  authorID,
		})
	}

	return u.postView(ctx, post, authorID)
}

func (u *postUseCase) Feed(ctx context.Context, viewerID string, page, limit int64) ([]domain.PostView, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultFeedLimit
	}
	posts, err := u.postRepo.FindPublicFeed(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return u.postViews(ctx, posts, viewerID)
}

func (u *postUseCase) GetPost(ctx context.Context, postID, viewerID string) (*domain.PostView, error) {
	post, err := u.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Visibility == domain.VisibilityPrivate && post.Author != viewerID {
		return nil, errprocess.Forbidden("this post is private")
	}
	return u.postView(ctx, post, viewerID)
}

func (u *postUseCase) PostsByAuthor(ctx context.Context, authorID, viewerID string) ([]domain.PostView, error) {
	posts, err := u.postRepo.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if authorID != viewerID {
		visible := posts[:0]
		for _, p := range posts {
			if p.Visibility == domain.VisibilityPublic {
				visible = append(visible, p)
			}
		}
		posts = visible
	}
	return u.postViews(ctx, posts, viewerID)
}

// ToggleLike flip the viewer's like. Returns the resulting liked state.
func (u *postUseCase) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	post, err := u.findPost(ctx, postID)
	if err != nil {
		return false, err
	}

	if post.HasLike(userID) {
		return false, u.postRepo.RemoveLike(ctx, postID, userID)
	}
	return true, u.postRepo.AddLike(ctx, postID, userID)
}

// DeletePost author only. Cascades comments and stored media objects; media
// removal is best effort, orphaned objects only cost storage.
func (u *postUseCase) DeletePost(ctx context.Context, postID, actorID string) error {
	post, err := u.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.Author != actorID {
		return errprocess.Forbidden("only the author can delete a post")
	}

	if err := u.commentRepo.DeleteForPost(ctx, postID); err != nil {
		return err
	}
	if err := u.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if u.mediaStore != nil {
		for _, ref := range post.Media {
			if err := u.mediaStore.Remove(ctx, ref.ObjectKey); err != nil {
				logger.Log.Warn("remove post media failed",
					zap.String("object_key", ref.ObjectKey), zap.String("err", err.Error()))
			}
		}
	}
	logger.Log.Info("post deleted", zap.String("post_id", postID), zap.String("actor", actorID))
	return nil
}

func (u *postUseCase) AddComment(ctx context.Context, postID, authorID, content string) (*domain.CommentView, error) {
	if content == "" {
		return nil, errprocess.BadRequest("comment content is required")
	}
	if _, err := u.findPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Post:    postID,
		Author:  authorID,
		Content: content,
	}
	if _, err := u.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	if err := u.postRepo.AdjustCommentCount(ctx, postID, 1); err != nil {
		logger.Log.Warn("bump comment count failed",
			zap.String("post_id", postID), zap.String("err", err.Error()))
	}

	return u.commentView(ctx, comment, authorID)
}

func (u *postUseCase) ListComments(ctx context.Context, postID, viewerID string) ([]domain.CommentView, error) {
	if _, err := u.findPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := u.commentRepo.FindForPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(comments))
	for i := range comments {
		ids = append(ids, comments[i].Author)
	}
	byID, err := u.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]domain.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, *commentViewFrom(&comments[i], byID, viewerID))
	}
	return views, nil
}

func (u *postUseCase) UpdateComment(ctx context.Context, commentID, actorID, content string) (*domain.CommentView, error) {
	if content == "" {
		return nil, errprocess.BadRequest("comment content is required")
	}
	comment, err := u.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Author != actorID {
		return nil, errprocess.Forbidden("only the author can edit a comment")
	}

	if err := u.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}
	comment.Content = content
	return u.commentView(ctx, comment, actorID)
}

func (u *postUseCase) DeleteComment(ctx context.Context, commentID, actorID string) error {
	comment, err := u.findComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.Author != actorID {
		return errprocess.Forbidden("only the author can delete a comment")
	}

	if err := u.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	if err := u.postRepo.AdjustCommentCount(ctx, comment.Post, -1); err != nil {
		logger.Log.Warn("decrement comment count failed",
			zap.String("post_id", comment.Post), zap.String("err", err.Error()))
	}
	return nil
}

func (u *postUseCase) ToggleCommentLike(ctx context.Context, commentID, userID string) (bool, error) {
	comment, err := u.findComment(ctx, commentID)
	if err != nil {
		return false, err
	}

	if comment.HasLike(userID) {
		return false, u.commentRepo.RemoveLike(ctx, commentID, userID)
	}
	return true, u.commentRepo.AddLike(ctx, commentID, userID)
}

func (u *postUseCase) findPost(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := u.postRepo.FindByID(ctx, postID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errprocess.NotFound("post not found")
		}
		return nil, err
	}
	return post, nil
}

func (u *postUseCase) findComment(ctx context.Context, commentID string) (*domain.Comment, error) {
	comment, err := u.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errprocess.NotFound("comment not found")
		}
		return nil, err
	}
	return comment, nil
}

func (u *postUseCase) summaries(ctx context.Context, ids []string) (map[string]identity.UserSummary, error) {
	found, err := u.users.FindUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]identity.UserSummary, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	return byID, nil
}

func (u *postUseCase) postView(ctx context.Context, post *domain.Post, viewerID string) (*domain.PostView, error) {
	byID, err := u.summaries(ctx, []string{post.Author})
	if err != nil {
		return nil, err
	}
	return postViewFrom(post, byID, viewerID), nil
}

func (u *postUseCase) postViews(ctx context.Context, posts []domain.Post, viewerID string) ([]domain.PostView, error) {
	ids := make([]string, 0, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].Author)
	}
	byID, err := u.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]domain.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, *postViewFrom(&posts[i], byID, viewerID))
	}
	return views, nil
}

func (u *postUseCase) commentView(ctx context.Context, comment *domain.Comment, viewerID string) (*domain.CommentView, error) {
	byID, err := u.summaries(ctx, []string{comment.Author})
	if err != nil {
		return nil, err
	}
	return commentViewFrom(comment, byID, viewerID), nil
}

func postViewFrom(post *domain.Post, byID map[string]identity.UserSummary, viewerID string) *domain.PostView {
	return &domain.PostView{
		ID:            post.ID,
		Author:        byID[post.Author],
		Content:       post.Content,
		Media:         post.Media,
		LikeCount:     len(post.Likes),
		LikedByViewer: post.HasLike(viewerID),
		CommentCount:  post.CommentCount,
		Visibility:    post.Visibility,
		CreatedAt:     post.CreatedAt,
	}
}

func commentViewFrom(comment *domain.Comment, byID map[string]identity.UserSummary, viewerID string) *domain.CommentView {
	return &domain.CommentView{
		ID:            comment.ID,
		Post:          comment.Post,
		Author:        byID[comment.Author],
		Content:       comment.Content,
		LikeCount:     len(comment.Likes),
		LikedByViewer: comment.HasLike(viewerID),
		CreatedAt:     comment.CreatedAt,
		UpdatedAt:     comment.UpdatedAt,
	}
}
