package repository

import (
	"context"
	"time"

	"devcollab/internal/chat/domain"
	"devcollab/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MessageRepository persistence for chat messages
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) (string, error)
	FindByID(ctx context.Context, messageID string) (*domain.Message, error)
	FindForChat(ctx context.Context, chatID string) ([]domain.Message, error)
	MarkRead(ctx context.Context, messageID, userID string) error
	MarkAllReadForChat(ctx context.Context, chatID, userID string) (int64, error)
	Delete(ctx context.Context, messageID string) error
	FindLatestForChat(ctx context.Context, chatID string) (*domain.Message, error)
}

type messageRepository struct {
	messages *mongo.Collection
}

// NewMessageRepository create message repository on the messages collection
func NewMessageRepository(db *mongo.Database) MessageRepository {
	return &messageRepository{messages: db.Collection("messages")}
}

func (r *messageRepository) Insert(ctx context.Context, msg *domain.Message) (string, error) {
	msg.ID = primitive.NewObjectID().Hex()
	msg.CreatedAt = time.Now().UnixMilli()
	if len(msg.ReadBy) == 0 {
		msg.ReadBy = []string{msg.Sender}
	}
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		logger.Log.Error("insert message failed", zap.String("err", err.Error()))
		return "", err
	}
	return msg.ID, nil
}

func (r *messageRepository) FindByID(ctx context.Context, messageID string) (*domain.Message, error) {
	var msg domain.Message
	if err := r.messages.FindOne(ctx, bson.M{"_id": messageID}).Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) FindForChat(ctx context.Context, chatID string) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.messages.Find(ctx, bson.M{"chat": chatID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []domain.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead add the user to read_by. $addToSet keeps the receipt idempotent.
func (r *messageRepository) MarkRead(ctx context.Context, messageID, userID string) error {
	_, err := r.messages.UpdateOne(ctx,
		bson.M{"_id": messageID},
		bson.M{"$addToSet": bson.M{"read_by": userID}},
	)
	return err
}

// MarkAllReadForChat add the user to read_by on every message of the chat that
// does not carry the receipt yet. Returns the number of updated messages.
func (r *messageRepository) MarkAllReadForChat(ctx context.Context, chatID, userID string) (int64, error) {
	res, err := r.messages.UpdateMany(ctx,
		bson.M{"chat": chatID, "read_by": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"read_by": userID}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *messageRepository) Delete(ctx context.Context, messageID string) error {
	_, err := r.messages.DeleteOne(ctx, bson.M{"_id": messageID})
	return err
}

// FindLatestForChat newest remaining message of the chat, nil when the chat is
// empty.
func (r *messageRepository) FindLatestForChat(ctx context.Context, chatID string) (*domain.Message, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var msg domain.Message
	err := r.messages.FindOne(ctx, bson.M{"chat": chatID}, opts).Decode(&msg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}
