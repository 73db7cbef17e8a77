package app

import (
	"context"
	"sync"

	"devcollab/internal/chat/domain"
	identity "devcollab/internal/identity/domain"

	"github.com/stretchr/testify/mock"
)

// MockChatRepo Mock ChatRepository
type MockChatRepo struct {
	mock.Mock
}

func (m *MockChatRepo) Create(ctx context.Context, chat *domain.Chat) (string, error) {
	args := m.Called(ctx, chat)
	if chat.ID == "" {
		chat.ID = args.String(0)
	}
	return args.String(0), args.Error(1)
}
func (m *MockChatRepo) FindByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockChatRepo) FindDirectChat(ctx context.Context, userA, userB string) (*domain.Chat, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockChatRepo) FindForUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockChatRepo) Rename(ctx context.Context, chatID, name string) error {
	args := m.Called(ctx, chatID, name)
	return args.Error(0)
}
func (m *MockChatRepo) AddMember(ctx context.Context, chatID, userID string) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}
func (m *MockChatRepo) RemoveMember(ctx context.Context, chatID, userID string) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}
func (m *MockChatRepo) SetLatestMessage(ctx context.Context, chatID, messageID string) error {
	args := m.Called(ctx, chatID, messageID)
	return args.Error(0)
}
func (m *MockChatRepo) DeleteCascade(ctx context.Context, chatID string) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

// MockMessageRepo Mock MessageRepository
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Insert(ctx context.Context, msg *domain.Message) (string, error) {
	args := m.Called(ctx, msg)
	if msg.ID == "" {
		msg.ID = args.String(0)
	}
	if len(msg.ReadBy) == 0 {
		msg.ReadBy = []string{msg.Sender}
	}
	return args.String(0), args.Error(1)
}
func (m *MockMessageRepo) FindByID(ctx context.Context, messageID string) (*domain.Message, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMessageRepo) FindForChat(ctx context.Context, chatID string) ([]domain.Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMessageRepo) MarkRead(ctx context.Context, messageID, userID string) error {
	args := m.Called(ctx, messageID, userID)
	return args.Error(0)
}
func (m *MockMessageRepo) MarkAllReadForChat(ctx context.Context, chatID, userID string) (int64, error) {
	args := m.Called(ctx, chatID, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMessageRepo) Delete(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}
func (m *MockMessageRepo) FindLatestForChat(ctx context.Context, chatID string) (*domain.Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// stubDirectory resolves every id to a deterministic summary
type stubDirectory struct{}

func (stubDirectory) FindUsers(ctx context.Context, userIDs []string) ([]identity.UserSummary, error) {
	seen := make(map[string]bool)
	var out []identity.UserSummary
	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, identity.UserSummary{ID: id, Name: "user " + id, Email: id + "@devcollab.test"})
	}
	return out, nil
}

// recordBroadcaster captures broadcasts for assertions
type recordBroadcaster struct {
	mu     sync.Mutex
	events []domain.WSEvent
	chats  []string
}

func (r *recordBroadcaster) BroadcastToChat(chatID string, except *Client, event domain.WSEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats = append(r.chats, chatID)
	r.events = append(r.events, event)
}
