package app

import (
	"context"

	"devcollab/internal/chat/domain"
	"devcollab/internal/chat/repository"
	"devcollab/pkg"
	errprocess "devcollab/pkg/err"
	"devcollab/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ChatUseCase application services around the chat directory
type ChatUseCase interface {
	AccessChat(ctx context.Context, selfID, otherID string) (*domain.ChatView, error)
	ListChats(ctx context.Context, userID string) ([]domain.ChatView, error)
	CreateGroupChat(ctx context.Context, creatorID, name string, memberIDs []string) (*domain.ChatView, error)
	RenameGroup(ctx context.Context, chatID, actorID, name string) (*domain.ChatView, error)
	AddMember(ctx context.Context, chatID, actorID, userID string) (*domain.ChatView, error)
	RemoveMember(ctx context.Context, chatID, actorID, userID string) (*domain.ChatView, error)
	DeleteChat(ctx context.Context, chatID, actorID string) error
}

type chatUseCase struct {
	chatRepo repository.ChatRepository
	guard    *Guard
	resolver *resolver
}

// NewChatUseCase create a new ChatUseCase
func NewChatUseCase(chatRepo repository.ChatRepository,
	msgRepo repository.MessageRepository,
	guard *Guard,
	users UserDirectory,
) ChatUseCase {
	return &chatUseCase{
		chatRepo: chatRepo,
		guard:    guard,
		resolver: &resolver{users: users, msgRepo: msgRepo},
	}
}

// AccessChat open the 1:1 chat with the other user, creating it on first
// contact. A user pair has at most one direct chat.
func (u *chatUseCase) AccessChat(ctx context.Context, selfID, otherID string) (*domain.ChatView, error) {
	if otherID == "" {
		return nil, errprocess.BadRequest("user id is required")
	}
	if otherID == selfID {
		return nil, errprocess.BadRequest("cannot open a chat with yourself")
	}

	chat, err := u.chatRepo.FindDirectChat(ctx, selfID, otherID)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
		chat = &domain.Chat{
			IsGroupChat: false,
			Users:       []string{selfID, otherID},
		}
		if _, err := u.chatRepo.Create(ctx, chat); err != nil {
			return nil, err
		}
		logger.Log.Info("direct chat created",
			zap.String("chat_id", chat.ID), zap.String("self", selfID), zap.String("other", otherID))
	}

	return u.resolver.chatView(ctx, chat)
}

func (u *chatUseCase) ListChats(ctx context.Context, userID string) ([]domain.ChatView, error) {
	chats, err := u.chatRepo.FindForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.ChatView, 0, len(chats))
	for i := range chats {
		view, err := u.resolver.chatView(ctx, &chats[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (u *chatUseCase) CreateGroupChat(ctx context.Context, creatorID, name string, memberIDs []string) (*domain.ChatView, error) {
	if name == "" {
		return nil, errprocess.BadRequest("group name is required")
	}

	users := []string{creatorID}
	for _, id := range memberIDs {
		if id == "" || pkg.Contains(users, id) {
			continue
		}
		users = append(users, id)
	}
	if len(users) < 3 {
		return nil, errprocess.BadRequest("a group chat needs at least two other members")
	}

	chat := &domain.Chat{
		IsGroupChat: true,
		ChatName:    name,
		Users:       users,
		GroupAdmin:  creatorID,
	}
	if _, err := u.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	logger.Log.Info("group chat created",
		zap.String("chat_id", chat.ID), zap.String("admin", creatorID), zap.Int("members", len(users)))

	return u.resolver.chatView(ctx, chat)
}

// RenameGroup set a new group name. Any participant may rename; concurrent
// renames are last write wins.
func (u *chatUseCase) RenameGroup(ctx context.Context, chatID, actorID, name string) (*domain.ChatView, error) {
	if name == "" {
		return nil, errprocess.BadRequest("group name is required")
	}

	chat, err := u.guard.Participant(ctx, chatID, actorID)
	if err != nil {
		return nil, err
	}
	if !chat.IsGroupChat {
		return nil, errprocess.BadRequest("direct chats cannot be renamed")
	}

	if err := u.chatRepo.Rename(ctx, chatID, name); err != nil {
		return nil, err
	}
	chat.ChatName = name

	return u.resolver.chatView(ctx, chat)
}

func (u *chatUseCase) AddMember(ctx context.Context, chatID, actorID, userID string) (*domain.ChatView, error) {
	if userID == "" {
		return nil, errprocess.BadRequest("user id is required")
	}

	chat, err := u.guard.Participant(ctx, chatID, actorID)
	if err != nil {
		return nil, err
	}
	if !chat.IsGroupChat {
		return nil, errprocess.BadRequest("members can only be managed on group chats")
	}
	if chat.GroupAdmin != actorID {
		return nil, errprocess.Forbidden("only the group admin can manage members")
	}

	if err := u.chatRepo.AddMember(ctx, chatID, userID); err != nil {
		return nil, err
	}
	if !chat.HasUser(userID) {
		chat.Users = append(chat.Users, userID)
	}

	return u.resolver.chatView(ctx, chat)
}

func (u *chatUseCase) RemoveMember(ctx context.Context, chatID, actorID, userID string) (*domain.ChatView, error) {
	if userID == "" {
		return nil, errprocess.BadRequest("user id is required")
	}

	chat, err := u.guard.Participant(ctx, chatID, actorID)
	if err != nil {
		return nil, err
	}
	if !chat.IsGroupChat {
		return nil, errprocess.BadRequest("members can only be managed on group chats")
	}
	if chat.GroupAdmin != actorID {
		return nil, errprocess.Forbidden("only the group admin can manage members")
	}
	if userID == chat.GroupAdmin {
		return nil, errprocess.BadRequest("the group admin cannot be removed")
	}

	if err := u.chatRepo.RemoveMember(ctx, chatID, userID); err != nil {
		return nil, err
	}
	chat.Users = pkg.Remove(chat.Users, userID)

	return u.resolver.chatView(ctx, chat)
}

// DeleteChat remove the chat and all its messages. Any participant may delete.
func (u *chatUseCase) DeleteChat(ctx context.Context, chatID, actorID string) error {
	if _, err := u.guard.Participant(ctx, chatID, actorID); err != nil {
		return err
	}

	if err := u.chatRepo.DeleteCascade(ctx, chatID); err != nil {
		return err
	}
	logger.Log.Info("chat deleted", zap.String("chat_id", chatID), zap.String("actor", actorID))
	return nil
}
