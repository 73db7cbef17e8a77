package app

import (
	"context"
	"errors"
	"testing"

	"devcollab/internal/chat/domain"
	errprocess "devcollab/pkg/err"
	"devcollab/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
)

func newMessageUC(chatRepo *MockChatRepo, msgRepo *MockMessageRepo, b Broadcaster) MessageUseCase {
	return NewMessageUseCase(chatRepo, msgRepo, NewGuard(chatRepo), stubDirectory{}, b, nil)
}

func directChat() *domain.Chat {
	return &domain.Chat{ID: "c1", Users: []string{"alice", "bob"}, LatestMessage: "m1"}
}

func TestMessageUseCase_Send(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("rejects empty content", func(t *testing.T) {
		uc := newMessageUC(new(MockChatRepo), new(MockMessageRepo), nil)
		_, err := uc.Send(ctx, "c1", "alice", "")
		assert.True(t, errors.Is(err, errprocess.ErrBadRequest))
	})

	t.Run("outsider cannot send", func(t *testing.T) {
		chatRepo := new(MockChatRepo)
		chatRepo.On("FindByID", ctx, "c1").Return(directChat(), nil)

		uc := newMessageUC(chatRepo, new(MockMessageRepo), nil)
		_, err := uc.Send(ctx, "c1", "mallory", "hi")
		assert.True(t, errors.Is(err, errprocess.ErrForbidden))
	})

	t.Run("persists, repoints latest and broadcasts", func(t *testing.T) {
		chatRepo := new(MockChatRepo)
		msgRepo := new(MockMessageRepo)
		broadcaster := &recordBroadcaster{}

		chatRepo.On("FindByID", ctx, "c1").Return(directChat(), nil)
		msgRepo.On("Insert", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.Chat == "c1" && m.Sender == "alice" && m.Content == "hello bob"
		})).Return("m2", nil)
		chatRepo.On("SetLatestMessage", ctx, "c1", "m2").Return(nil)

		uc := newMessageUC(chatRepo, msgRepo, broadcaster)
		view, err := uc.Send(ctx, "c1", "alice", "hello bob")

		assert.NoError(t, err)
		assert.Equal(t, "m2", view.ID)
		assert.Equal(t, "alice", view.Sender.ID)
		// the sender has read their own message from the start
		assert.Len(t, view.ReadBy, 1)
		assert.Equal(t, "alice", view.ReadBy[0].ID)

		assert.Len(t, broadcaster.events, 1)
		assert.Equal(t, domain.EventMessageReceived, broadcaster.events[0].Event)
		assert.Equal(t, "c1", broadcaster.chats[0])
		chatRepo.AssertExpectations(t)
		msgRepo.AssertExpectations(t)
	})

	t.Run("failed repoint fails the send and nothing is broadcast", func(t *testing.T) {
		chatRepo := new(MockChatRepo)
		msgRepo := new(MockMessageRepo)
		broadcaster := &recordBroadcaster{}

		chatRepo.On("FindByID", ctx, "c1").Return(directChat(), nil)
		msgRepo.On("Insert", ctx, mock.Anything).Return("m2", nil)
		chatRepo.On("SetLatestMessage", ctx, "c1", "m2").Return(errors.New("write failed"))

		uc := newMessageUC(chatRepo, msgRepo, broadcaster)
		_, err := uc.Send(ctx, "c1", "alice", "hello bob")

		assert.Error(t, err)
		assert.Empty(t, broadcaster.events)
	})
}

func TestMessageUseCase_ListForChat(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	chatRepo := new(MockChatRepo)
	msgRepo := new(MockMessageRepo)
	chatRepo.On("FindByID", ctx, "c1").Return(directChat(), nil)
	msgRepo.On("FindForChat", ctx, "c1").Return([]domain.Message{
		{ID: "m1", Sender: "alice", Chat: "c1", Content: "hi", ReadBy: []string{"alice", "bob"}, CreatedAt: 1},
		{ID: "m2", Sender: "bob", Chat: "c1", Content: "hey", ReadBy: []string{"bob"}, CreatedAt: 2},
	}, nil)

	uc := newMessageUC(chatRepo, msgRepo, nil)
	views, err := uc.ListForChat(ctx, "c1", "bob")

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, "m1", views[0].ID)
	assert.Len(t, views[0].ReadBy, 2)
	assert.Equal(t, "bob", views[1].Sender.ID)
}

func TestMessageUseCase_MarkRead(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("unknown message is not found", func(t *testing.T) {
		msgRepo := new(MockMessageRepo)
		msgRepo.On("FindByID", ctx, "ghost").Return(nil, mongo.ErrNoDocuments)

		uc := newMessageUC(new(MockChatRepo), msgRepo, nil)
		err := uc.MarkRead(ctx, "ghost", "bob")
		assert.True(t, errors.Is(err, errprocess.ErrNotFound))
	})

	t.Run("participant records a receipt", func(t *testing.T) {
		chatRepo := new(MockChatRepo)
		msgRepo := new(MockMessageRepo)
		msgRepo.On("FindByID", ctx, "m1").
			Return(&domain.Message{ID: "m1", Sender: "alice", Chat: "c1", ReadBy: []string{"alice"}}, nil)
		chatRepo.On("FindByID", ctx, "c1").Return(directChat(), nil)
		msgRepo.On("MarkRead", ctx, "m1", "bob").Return(nil)

		uc := newMessageUC(chatRepo, msgRepo, nil)
		assert.NoError(t, uc.MarkRead(ctx, "m1", "bob"))
		msgRepo.AssertExpectations(t)
	})

	t.Run("outsider cannot record a receipt", func(t *testing.T) {
		chatRepo := new(MockChatRepo)
		msgRepo := new(MockMessageRepo)
		msgRepo.On("FindByID", ctx, "m1").
			Return(&domain.Message{ID: "m1", Sender: "alice", Chat: "c1", ReadBy: []string{"alice"}}, nil)
		chatRepo.On("FindByID", ctx, "c1").Return(directChat(), nil)

		uc := newMessageUC(chatRepo, msgRepo, nil)
		err := uc.MarkRead(ctx, "m1", "mallory")
		assert.True(t, errors.Is(err, errprocess.ErrForbidden))
	})
}

func TestMessageUseCase_MarkAllRead(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	chatRepo := new(MockChatRepo)
	msgRepo := new(MockMessageRepo)
	chatRepo.On("FindByID", ctx, "c1").Return(directChat(), nil)
	msgRepo.On("MarkAllReadForChat", ctx, "c1", "bob").Return(int64(4), nil)

	uc := newMessageUC(chatRepo, msgRepo, nil)
	updated, err := uc.MarkAllRead(ctx, "c1", "bob")

	assert.NoError(t, err)
	assert.Equal(t, int64(4), updated)
}

func TestMessageUseCase_DeleteMessage(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("only the sender can delete", func(t *testing.T) {
		chatRepo := new(MockChatRepo)
		msgRepo := new(MockMessageRepo)
		msgRepo.On("FindByID", ctx, "m1").
			Return(&domain.Message{ID: "m1", Sender: "alice", Chat: "c1"}, nil)
		chatRepo.On("FindByID", ctx, "c1").Return(directChat(), nil)

		uc := newMessageUC(chatRepo, msgRepo, nil)
		err := uc.DeleteMessage(ctx, "m1", "bob")
		assert.True(t, errors.Is(err, errprocess.ErrForbidden))
		msgRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deleting the latest message repoints the chat", func(t *testing.T) {
		chatRepo := new(MockChatRepo)
		msgRepo := new(MockMessageRepo)
		msgRepo.On("FindByID", ctx, "m1").
			Return(&domain.Message{ID: "m1", Sender: "alice", Chat: "c1"}, nil)
		chatRepo.On("FindByID", ctx, "c1").Return(directChat(), nil)
		msgRepo.On("Delete", ctx, "m1").Return(nil)
		msgRepo.On("FindLatestForChat", ctx, "c1").
			Return(&domain.Message{ID: "m0", Sender: "bob", Chat: "c1"}, nil)
		chatRepo.On("SetLatestMessage", ctx, "c1", "m0").Return(nil)

		uc := newMessageUC(chatRepo, msgRepo, nil)
		assert.NoError(t, uc.DeleteMessage(ctx, "m1", "alice"))
		chatRepo.AssertExpectations(t)
	})

	t.Run("deleting the last message clears the pointer", func(t *testing.T) {
		chatRepo := new(MockChatRepo)
		msgRepo := new(MockMessageRepo)
		msgRepo.On("FindByID", ctx, "m1").
			Return(&domain.Message{ID: "m1", Sender: "alice", Chat: "c1"}, nil)
		chatRepo.On("FindByID", ctx, "c1").Return(directChat(), nil)
		msgRepo.On("Delete", ctx, "m1").Return(nil)
		msgRepo.On("FindLatestForChat", ctx, "c1").Return(nil, nil)
		chatRepo.On("SetLatestMessage", ctx, "c1", "").Return(nil)

		uc := newMessageUC(chatRepo, msgRepo, nil)
		assert.NoError(t, uc.DeleteMessage(ctx, "m1", "alice"))
		chatRepo.AssertExpectations(t)
	})

	t.Run("deleting an older message leaves the pointer alone", func(t *testing.T) {
		chatRepo := new(MockChatRepo)
		msgRepo := new(MockMessageRepo)
		msgRepo.On("FindByID", ctx, "m0").
			Return(&domain.Message{ID: "m0", Sender: "alice", Chat: "c1"}, nil)
		chatRepo.On("FindByID", ctx, "c1").Return(directChat(), nil)
		msgRepo.On("Delete", ctx, "m0").Return(nil)

		uc := newMessageUC(chatRepo, msgRepo, nil)
		assert.NoError(t, uc.DeleteMessage(ctx, "m0", "alice"))
		chatRepo.AssertNotCalled(t, "SetLatestMessage", mock.Anything, mock.Anything, mock.Anything)
	})
}
