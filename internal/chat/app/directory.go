package app

import (
	"context"

	"devcollab/internal/chat/domain"
	"devcollab/internal/chat/repository"
	identity "devcollab/internal/identity/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

// UserDirectory resolves user ids to public summaries. The identity use case
// satisfies it; tests plug a fake.
type UserDirectory interface {
	FindUsers(ctx context.Context, userIDs []string) ([]identity.UserSummary, error)
}

// resolver turns raw chat and message documents into client-facing views with
// identities and latest messages attached.
type resolver struct {
	users   UserDirectory
	msgRepo repository.MessageRepository
}

func (r *resolver) summaries(ctx context.Context, ids []string) (map[string]identity.UserSummary, error) {
	found, err := r.users.FindUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]identity.UserSummary, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	return byID, nil
}

func pick(byID map[string]identity.UserSummary, ids []string) []identity.UserSummary {
	out := make([]identity.UserSummary, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

func messageView(msg *domain.Message, byID map[string]identity.UserSummary) *domain.MessageView {
	if msg == nil {
		return nil
	}
	return &domain.MessageView{
		ID:        msg.ID,
		Sender:    byID[msg.Sender],
		Chat:      msg.Chat,
		Content:   msg.Content,
		ReadBy:    pick(byID, msg.ReadBy),
		CreatedAt: msg.CreatedAt,
	}
}

// chatView resolve one chat. latest may be nil when the chat has no messages
// or the pointer dangles; any other lookup failure propagates.
func (r *resolver) chatView(ctx context.Context, chat *domain.Chat) (*domain.ChatView, error) {
	var latest *domain.Message
	if chat.LatestMessage != "" {
		msg, err := r.msgRepo.FindByID(ctx, chat.LatestMessage)
		switch {
		case err == nil:
			latest = msg
		case err != mongo.ErrNoDocuments:
			return nil, err
		}
	}

	ids := append([]string{}, chat.Users...)
	if chat.GroupAdmin != "" {
		ids = append(ids, chat.GroupAdmin)
	}
	if latest != nil {
		ids = append(ids, latest.Sender)
		ids = append(ids, latest.ReadBy...)
	}
	byID, err := r.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &domain.ChatView{
		ID:            chat.ID,
		IsGroupChat:   chat.IsGroupChat,
		ChatName:      chat.ChatName,
		Users:         pick(byID, chat.Users),
		LatestMessage: messageView(latest, byID),
		CreatedAt:     chat.CreatedAt,
		UpdatedAt:     chat.UpdatedAt,
	}
	if chat.GroupAdmin != "" {
		if admin, ok := byID[chat.GroupAdmin]; ok {
			view.GroupAdmin = &admin
		}
	}
	return view, nil
}
