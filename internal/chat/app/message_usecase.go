package app

import (
	"context"

	"devcollab/internal/chat/domain"
	"devcollab/internal/chat/repository"
	errprocess "devcollab/pkg/err"

	"go.mongodb.org/mongo-driver/mongo"
)

// Broadcaster pushes events to every connection in a chat room except the one
// given. The hub satisfies it; tests plug a recorder.
type Broadcaster interface {
	BroadcastToChat(chatID string, except *Client, event domain.WSEvent)
}

// ActivityRecorder emits best-effort activity records for offline consumers.
type ActivityRecorder interface {
	Record(ctx context.Context, eventType string, payload map[string]interface{})
}

// MessageUseCase application services around the message store
type MessageUseCase interface {
	Send(ctx context.Context, chatID, senderID, content string) (*domain.MessageView, error)
	ListForChat(ctx context.Context, chatID, requesterID string) ([]domain.MessageView, error)
	MarkRead(ctx context.Context, messageID, readerID string) error
	MarkAllRead(ctx context.Context, chatID, readerID string) (int64, error)
	DeleteMessage(ctx context.Context, messageID, actorID string) error
}

type messageUseCase struct {
	chatRepo  repository.ChatRepository
	msgRepo   repository.MessageRepository
	guard     *Guard
	resolver  *resolver
	broadcast Broadcaster
	activity  ActivityRecorder
}

// NewMessageUseCase create a new MessageUseCase. activity may be nil when no
// event pipeline is configured.
func NewMessageUseCase(chatRepo repository.ChatRepository,
	msgRepo repository.MessageRepository,
	guard *Guard,
	users UserDirectory,
	broadcast Broadcaster,
	activity ActivityRecorder,
) MessageUseCase {
	return &messageUseCase{
		chatRepo:  chatRepo,
		msgRepo:   msgRepo,
		guard:     guard,
		resolver:  &resolver{users: users, msgRepo: msgRepo},
		broadcast: broadcast,
		activity:  activity,
	}
}

// Send persist a message, repoint the chat's latest message and fan the
// resolved message out to the chat room. The broadcast is best effort and
// happens only after the write succeeded.
func (u *messageUseCase) Send(ctx context.Context, chatID, senderID, content string) (*domain.MessageView, error) {
	if content == "" {
		return nil, errprocess.BadRequest("message content is required")
	}

	if _, err := u.guard.Participant(ctx, chatID, senderID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		Sender:  senderID,
		Chat:    chatID,
		Content: content,
		ReadBy:  []string{senderID},
	}
	if _, err := u.msgRepo.Insert(ctx, msg); err != nil {
		return nil, err
	}

	// the latest-message pointer must track the newest message, so a failed
	// repoint fails the whole send
	if err := u.chatRepo.SetLatestMessage(ctx, chatID, msg.ID); err != nil {
		return nil, err
	}

	view, err := u.resolveMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	if u.broadcast != nil {
		u.broadcast.BroadcastToChat(chatID, nil, domain.WSEvent{
			Event: domain.EventMessageReceived,
			Payload: map[string]interface{}{
				"chatId":  chatID,
				"message": view,
			},
		})
	}
	if u.activity != nil {
		u.activity.Record(ctx, "message_sent", map[string]interface{}{
			"chat_id":    chatID,
			"message_id": msg.ID,
			"sender":     senderID,
		})
	}

	return view, nil
}

func (u *messageUseCase) ListForChat(ctx context.Context, chatID, requesterID string) ([]domain.MessageView, error) {
	if _, err := u.guard.Participant(ctx, chatID, requesterID); err != nil {
		return nil, err
	}

	msgs, err := u.msgRepo.FindForChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(msgs)*2)
	for i := range msgs {
		ids = append(ids, msgs[i].Sender)
		ids = append(ids, msgs[i].ReadBy...)
	}
	byID, err := u.resolver.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]domain.MessageView, 0, len(msgs))
	for i := range msgs {
		views = append(views, *messageView(&msgs[i], byID))
	}
	return views, nil
}

func (u *messageUseCase) MarkRead(ctx context.Context, messageID, readerID string) error {
	msg, err := u.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return errprocess.NotFound("message not found")
		}
		return err
	}

	if _, err := u.guard.Participant(ctx, msg.Chat, readerID); err != nil {
		return err
	}

	return u.msgRepo.MarkRead(ctx, messageID, readerID)
}

func (u *messageUseCase) MarkAllRead(ctx context.Context, chatID, readerID string) (int64, error) {
	if _, err := u.guard.Participant(ctx, chatID, readerID); err != nil {
		return 0, err
	}
	return u.msgRepo.MarkAllReadForChat(ctx, chatID, readerID)
}

// DeleteMessage remove a message the actor sent. When the deleted message was
// the chat's latest, the pointer moves to the chronologically previous
// remaining message, or clears for an emptied chat.
func (u *messageUseCase) DeleteMessage(ctx context.Context, messageID, actorID string) error {
	msg, err := u.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return errprocess.NotFound("message not found")
		}
		return err
	}

	chat, err := u.guard.Participant(ctx, msg.Chat, actorID)
	if err != nil {
		return err
	}
	if msg.Sender != actorID {
		return errprocess.Forbidden("only the sender can delete a message")
	}

	if err := u.msgRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	if chat.LatestMessage == messageID {
		latest, err := u.msgRepo.FindLatestForChat(ctx, msg.Chat)
		if err != nil {
			return err
		}
		latestID := ""
		if latest != nil {
			latestID = latest.ID
		}
		if err := u.chatRepo.SetLatestMessage(ctx, msg.Chat, latestID); err != nil {
			return err
		}
	}
	return nil
}

func (u *messageUseCase) resolveMessage(ctx context.Context, msg *domain.Message) (*domain.MessageView, error) {
	ids := append([]string{msg.Sender}, msg.ReadBy...)
	byID, err := u.resolver.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	return messageView(msg, byID), nil
}
