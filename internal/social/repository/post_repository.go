package repository

import (
	"context"
	"time"

	"devcollab/internal/social/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository persistence for feed posts
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (string, error)
	FindByID(ctx context.Context, postID string) (*domain.Post, error)
	FindPublicFeed(ctx context.Context, page, limit int64) ([]domain.Post, error)
	FindByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	AdjustCommentCount(ctx context.Context, postID string, delta int64) error
	Delete(ctx context.Context, postID string) error
}

type postRepository struct {
	posts *mongo.Collection
}

// NewPostRepository create post repository on the posts collection
func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{posts: db.Collection("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) (string, error) {
	post.ID = primitive.NewObjectID().Hex()
	post.CreatedAt = time.Now().UnixMilli()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if _, err := r.posts.InsertOne(ctx, post); err != nil {
		return "", err
	}
	return post.ID, nil
}

func (r *postRepository) FindByID(ctx context.Context, postID string) (*domain.Post, error) {
	var p domain.Post
	if err := r.posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPublicFeed public posts, newest first, page starting at 1
func (r *postRepository) FindPublicFeed(ctx context.Context, page, limit int64) ([]domain.Post, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := r.posts.Find(ctx, bson.M{"visibility": domain.VisibilityPublic}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []domain.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) FindByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.posts.Find(ctx, bson.M{"author": authorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []domain.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID string) error {
	_, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	return err
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	_, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	return err
}

func (r *postRepository) AdjustCommentCount(ctx context.Context, postID string, delta int64) error {
	_, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$inc": bson.M{"comment_count": delta}},
	)
	return err
}

func (r *postRepository) Delete(ctx context.Context, postID string) error {
	_, err := r.posts.DeleteOne(ctx, bson.M{"_id": postID})
	return err
}
