package app

import (
	"context"

	"devcollab/internal/chat/domain"
	"devcollab/internal/chat/repository"
	errprocess "devcollab/pkg/err"

	"go.mongodb.org/mongo-driver/mongo"
)

// Guard answers the single authorization question of the messaging core:
// is this user a participant of this chat. Every read and mutation that
// targets an existing chat goes through it.
type Guard struct {
	chatRepo repository.ChatRepository
}

// NewGuard create a membership guard over the chat repository
func NewGuard(chatRepo repository.ChatRepository) *Guard {
	return &Guard{chatRepo: chatRepo}
}

// Participant load the chat and verify membership. Not-found and not-a-member
// are distinct failures so handlers can answer 404 vs 403.
func (g *Guard) Participant(ctx context.Context, chatID, userID string) (*domain.Chat, error) {
	chat, err := g.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errprocess.NotFound("chat not found")
		}
		return nil, err
	}
	if !chat.HasUser(userID) {
		return nil, errprocess.Forbidden("user is not a participant of this chat")
	}
	return chat, nil
}
