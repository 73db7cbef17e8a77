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

// CommentRepository persistence for post comments
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (string, error)
	FindByID(ctx context.Context, commentID string) (*domain.Comment, error)
	FindForPost(ctx context.Context, postID string) ([]domain.Comment, error)
	UpdateContent(ctx context.Context, commentID, content string) error
	AddLike(ctx context.Context, commentID, userID string) error
	RemoveLike(ctx context.Context, commentID, userID string) error
	Delete(ctx context.Context, commentID string) error
	DeleteForPost(ctx context.Context, postID string) error
}

type commentRepository struct {
	comments *mongo.Collection
}

// NewCommentRepository create comment repository on the comments collection
func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{comments: db.Collection("comments")}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) (string, error) {
	now := time.Now().UnixMilli()
	comment.ID = primitive.NewObjectID().Hex()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	if _, err := r.comments.InsertOne(ctx, comment); err != nil {
		return "", err
	}
	return comment.ID, nil
}

func (r *commentRepository) FindByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	var c domain.Comment
	if err := r.comments.FindOne(ctx, bson.M{"_id": commentID}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) FindForPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.comments.Find(ctx, bson.M{"post": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []domain.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, commentID, content string) error {
	_, err := r.comments.UpdateOne(ctx,
		bson.M{"_id": commentID},
		bson.M{"$set": bson.M{"content": content, "updated_at": time.Now().UnixMilli()}},
	)
	return err
}

func (r *commentRepository) AddLike(ctx context.Context, commentID, userID string) error {
	_, err := r.comments.UpdateOne(ctx,
		bson.M{"_id": commentID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	return err
}

func (r *commentRepository) RemoveLike(ctx context.Context, commentID, userID string) error {
	_, err := r.comments.UpdateOne(ctx,
		bson.M{"_id": commentID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	return err
}

func (r *commentRepository) Delete(ctx context.Context, commentID string) error {
	_, err := r.comments.DeleteOne(ctx, bson.M{"_id": commentID})
	return err
}

func (r *commentRepository) DeleteForPost(ctx context.Context, postID string) error {
	_, err := r.comments.DeleteMany(ctx, bson.M{"post": postID})
	return err
}
