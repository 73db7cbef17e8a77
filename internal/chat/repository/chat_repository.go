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

// ChatRepository persistence for chats
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (string, error)
	FindByID(ctx context.Context, chatID string) (*domain.Chat, error)
	FindDirectChat(ctx context.Context, userA, userB string) (*domain.Chat, error)
	FindForUser(ctx context.Context, userID string) ([]domain.Chat, error)
	Rename(ctx context.Context, chatID, name string) error
	AddMember(ctx context.Context, chatID, userID string) error
	RemoveMember(ctx context.Context, chatID, userID string) error
	SetLatestMessage(ctx context.Context, chatID, messageID string) error
	DeleteCascade(ctx context.Context, chatID string) error
}

type chatRepository struct {
	client   *mongo.Client
	chats    *mongo.Collection
	messages *mongo.Collection
}

// NewChatRepository create chat repository on the chats and messages collections
func NewChatRepository(client *mongo.Client, db *mongo.Database) ChatRepository {
	return &chatRepository{
		client:   client,
		chats:    db.Collection("chats"),
		messages: db.Collection("messages"),
	}
}

func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat) (string, error) {
	now := time.Now().UnixMilli()
	chat.ID = primitive.NewObjectID().Hex()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	if _, err := r.chats.InsertOne(ctx, chat); err != nil {
		logger.Log.Error("insert chat failed", zap.String("err", err.Error()))
		return "", err
	}
	return chat.ID, nil
}

func (r *chatRepository) FindByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	var chat domain.Chat
	if err := r.chats.FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindDirectChat find the one non-group chat whose users set is exactly the pair.
// Returns mongo.ErrNoDocuments when the pair has never chatted.
func (r *chatRepository) FindDirectChat(ctx context.Context, userA, userB string) (*domain.Chat, error) {
	filter := bson.M{
		"is_group_chat": false,
		"users": bson.M{
			"$all":  bson.A{userA, userB},
			"$size": 2,
		},
	}
	var chat domain.Chat
	if err := r.chats.FindOne(ctx, filter).Decode(&chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) FindForUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := r.chats.Find(ctx, bson.M{"users": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var chats []domain.Chat
	if err := cur.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *chatRepository) Rename(ctx context.Context, chatID, name string) error {
	_, err := r.chats.UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{"$set": bson.M{"chat_name": name}},
	)
	return err
}

func (r *chatRepository) AddMember(ctx context.Context, chatID, userID string) error {
	_, err := r.chats.UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{"$addToSet": bson.M{"users": userID}},
	)
	return err
}

func (r *chatRepository) RemoveMember(ctx context.Context, chatID, userID string) error {
	_, err := r.chats.UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{"$pull": bson.M{"users": userID}},
	)
	return err
}

// SetLatestMessage repoint latest_message and bump updated_at so chat listings
// sort by recent activity. Empty messageID clears the pointer.
func (r *chatRepository) SetLatestMessage(ctx context.Context, chatID, messageID string) error {
	set := bson.M{"updated_at": time.Now().UnixMilli()}
	update := bson.M{"$set": set}
	if messageID == "" {
		update["$unset"] = bson.M{"latest_message": ""}
	} else {
		set["latest_message"] = messageID
	}
	_, err := r.chats.UpdateOne(ctx, bson.M{"_id": chatID}, update)
	return err
}

// DeleteCascade remove the chat and every message in it. Runs inside a session
// transaction when the deployment supports one (replica set); standalone mongo
// rejects transactions, so fall back to a messages-first sequential sweep.
// The fallback is at least once: a crash between the two deletes leaves the
// chat without messages, which a retry of the delete cleans up.
func (r *chatRepository) DeleteCascade(ctx context.Context, chatID string) error {
	session, err := r.client.StartSession()
	if err == nil {
		defer session.EndSession(ctx)
		_, txErr := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			if _, err := r.messages.DeleteMany(sc, bson.M{"chat": chatID}); err != nil {
				return nil, err
			}
			if _, err := r.chats.DeleteOne(sc, bson.M{"_id": chatID}); err != nil {
				return nil, err
			}
			return nil, nil
		})
		if txErr == nil {
			return nil
		}
		logger.Log.Warn("cascade delete transaction failed, falling back to sequential sweep",
			zap.String("chat_id", chatID), zap.String("err", txErr.Error()))
	}

	if _, err := r.messages.DeleteMany(ctx, bson.M{"chat": chatID}); err != nil {
		return err
	}
	_, err = r.chats.DeleteOne(ctx, bson.M{"_id": chatID})
	return err
}
