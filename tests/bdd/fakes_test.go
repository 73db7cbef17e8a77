package bdd

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	chatdomain "devcollab/internal/chat/domain"
	identity "devcollab/internal/identity/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

// store in-memory stand-in for the chats and messages collections
type store struct {
	mu       sync.Mutex
	seq      int
	chats    map[string]*chatdomain.Chat
	messages map[string]*chatdomain.Message
}

func newStore() *store {
	return &store{
		chats:    make(map[string]*chatdomain.Chat),
		messages: make(map[string]*chatdomain.Message),
	}
}

func (s *store) nextID(prefix string) string {
	s.seq++
	return prefix + strconv.Itoa(s.seq)
}

type memChatRepo struct{ s *store }

func (r *memChatRepo) Create(ctx context.Context, chat *chatdomain.Chat) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	chat.ID = r.s.nextID("chat-")
	now := time.Now().UnixMilli()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	cp := *chat
	r.s.chats[chat.ID] = &cp
	return chat.ID, nil
}

func (r *memChatRepo) FindByID(ctx context.Context, chatID string) (*chatdomain.Chat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	chat, ok := r.s.chats[chatID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *chat
	return &cp, nil
}

func (r *memChatRepo) FindDirectChat(ctx context.Context, userA, userB string) (*chatdomain.Chat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, chat := range r.s.chats {
		if chat.IsGroupChat || len(chat.Users) != 2 {
			continue
		}
		if chat.HasUser(userA) && chat.HasUser(userB) {
			cp := *chat
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memChatRepo) FindForUser(ctx context.Context, userID string) ([]chatdomain.Chat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []chatdomain.Chat
	for _, chat := range r.s.chats {
		if chat.HasUser(userID) {
			out = append(out, *chat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt > out[j].UpdatedAt })
	return out, nil
}

func (r *memChatRepo) Rename(ctx context.Context, chatID, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if chat, ok := r.s.chats[chatID]; ok {
		chat.ChatName = name
	}
	return nil
}

func (r *memChatRepo) AddMember(ctx context.Context, chatID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if chat, ok := r.s.chats[chatID]; ok && !chat.HasUser(userID) {
		chat.Users = append(chat.Users, userID)
	}
	return nil
}

func (r *memChatRepo) RemoveMember(ctx context.Context, chatID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if chat, ok := r.s.chats[chatID]; ok {
		kept := chat.Users[:0]
		for _, u := range chat.Users {
			if u != userID {
				kept = append(kept, u)
			}
		}
		chat.Users = kept
	}
	return nil
}

func (r *memChatRepo) SetLatestMessage(ctx context.Context, chatID, messageID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if chat, ok := r.s.chats[chatID]; ok {
		chat.LatestMessage = messageID
		chat.UpdatedAt = time.Now().UnixMilli()
	}
	return nil
}

func (r *memChatRepo) DeleteCascade(ctx context.Context, chatID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, msg := range r.s.messages {
		if msg.Chat == chatID {
			delete(r.s.messages, id)
		}
	}
	delete(r.s.chats, chatID)
	return nil
}

type memMessageRepo struct{ s *store }

func (r *memMessageRepo) Insert(ctx context.Context, msg *chatdomain.Message) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	msg.ID = r.s.nextID("msg-")
	msg.CreatedAt = time.Now().UnixMilli()
	if len(msg.ReadBy) == 0 {
		msg.ReadBy = []string{msg.Sender}
	}
	cp := *msg
	r.s.messages[msg.ID] = &cp
	return msg.ID, nil
}

func (r *memMessageRepo) FindByID(ctx context.Context, messageID string) (*chatdomain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	msg, ok := r.s.messages[messageID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *msg
	return &cp, nil
}

func (r *memMessageRepo) FindForChat(ctx context.Context, chatID string) ([]chatdomain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []chatdomain.Message
	for _, msg := range r.s.messages {
		if msg.Chat == chatID {
			out = append(out, *msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return idLess(out[i].ID, out[j].ID) })
	return out, nil
}

func (r *memMessageRepo) MarkRead(ctx context.Context, messageID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if msg, ok := r.s.messages[messageID]; ok {
		for _, u := range msg.ReadBy {
			if u == userID {
				return nil
			}
		}
		msg.ReadBy = append(msg.ReadBy, userID)
	}
	return nil
}

func (r *memMessageRepo) MarkAllReadForChat(ctx context.Context, chatID, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var updated int64
	for _, msg := range r.s.messages {
		if msg.Chat != chatID {
			continue
		}
		seen := false
		for _, u := range msg.ReadBy {
			if u == userID {
				seen = true
				break
			}
		}
		if !seen {
			msg.ReadBy = append(msg.ReadBy, userID)
			updated++
		}
	}
	return updated, nil
}

func (r *memMessageRepo) Delete(ctx context.Context, messageID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.messages, messageID)
	return nil
}

func (r *memMessageRepo) FindLatestForChat(ctx context.Context, chatID string) (*chatdomain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *chatdomain.Message
	for _, msg := range r.s.messages {
		if msg.Chat != chatID {
			continue
		}
		if latest == nil || msg.CreatedAt > latest.CreatedAt ||
			(msg.CreatedAt == latest.CreatedAt && idLess(latest.ID, msg.ID)) {
			latest = msg
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

// idLess sequence order for the store's generated ids
func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// directory resolves every id to a deterministic summary
type directory struct{}

func (directory) FindUsers(ctx context.Context, userIDs []string) ([]identity.UserSummary, error) {
	seen := make(map[string]bool)
	var out []identity.UserSummary
	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, identity.UserSummary{ID: id, Name: id, Email: id + "@devcollab.test"})
	}
	return out, nil
}
