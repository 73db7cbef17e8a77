package app

import (
	"encoding/json"
	"testing"
	"time"

	"devcollab/internal/chat/domain"
	"devcollab/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func recv(t *testing.T, c *Client) domain.WSEvent {
	t.Helper()
	select {
	case data := <-c.Send:
		var event domain.WSEvent
		assert.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no event arrived")
		return domain.WSEvent{}
	}
}

func TestHub_BroadcastToChat(t *testing.T) {
	logger.SetNewNop()
	hub := NewHub()

	alice := NewClient("alice")
	bob := NewClient("bob")
	carol := NewClient("carol")
	for _, c := range []*Client{alice, bob, carol} {
		hub.Register(c)
	}
	hub.JoinChat("c1", alice)
	hub.JoinChat("c1", bob)
	// carol never joins c1

	hub.BroadcastToChat("c1", nil, domain.WSEvent{Event: domain.EventMessageReceived})

	assert.Equal(t, domain.EventMessageReceived, recv(t, alice).Event)
	assert.Equal(t, domain.EventMessageReceived, recv(t, bob).Event)
	assert.Empty(t, carol.Send)
}

func TestHub_BroadcastExcludesOrigin(t *testing.T) {
	logger.SetNewNop()
	hub := NewHub()

	alice := NewClient("alice")
	bob := NewClient("bob")
	hub.Register(alice)
	hub.Register(bob)
	hub.JoinChat("c1", alice)
	hub.JoinChat("c1", bob)

	hub.BroadcastToChat("c1", alice, domain.WSEvent{Event: domain.EventUserTyping})

	assert.Equal(t, domain.EventUserTyping, recv(t, bob).Event)
	assert.Empty(t, alice.Send)
}

func TestHub_BroadcastExcludesOnlyTheOriginConnection(t *testing.T) {
	logger.SetNewNop()
	hub := NewHub()

	laptop := NewClient("alice")
	phone := NewClient("alice")
	bob := NewClient("bob")
	for _, c := range []*Client{laptop, phone, bob} {
		hub.Register(c)
		hub.JoinChat("c1", c)
	}

	hub.BroadcastToChat("c1", laptop, domain.WSEvent{Event: domain.EventUserTyping})

	// the typing user's other device still sees the indicator
	assert.Equal(t, domain.EventUserTyping, recv(t, phone).Event)
	assert.Equal(t, domain.EventUserTyping, recv(t, bob).Event)
	assert.Empty(t, laptop.Send)
}

func TestHub_LeaveChatStopsDelivery(t *testing.T) {
	logger.SetNewNop()
	hub := NewHub()

	alice := NewClient("alice")
	hub.Register(alice)
	hub.JoinChat("c1", alice)
	assert.True(t, hub.InRoom("c1", alice))

	hub.LeaveChat("c1", alice)
	assert.False(t, hub.InRoom("c1", alice))

	hub.BroadcastToChat("c1", nil, domain.WSEvent{Event: domain.EventMessageReceived})
	assert.Empty(t, alice.Send)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	logger.SetNewNop()
	hub := NewHub()

	alice := NewClient("alice")
	hub.Register(alice)
	hub.JoinChat("c1", alice)

	hub.Unregister(alice)

	_, open := <-alice.Send
	assert.False(t, open)
	assert.False(t, hub.InRoom("c1", alice))

	// a second unregister of the same client is a no-op
	hub.Unregister(alice)
}

func TestHub_SendToUserReachesAllConnections(t *testing.T) {
	logger.SetNewNop()
	hub := NewHub()

	laptop := NewClient("alice")
	phone := NewClient("alice")
	hub.Register(laptop)
	hub.Register(phone)

	hub.SendToUser("alice", domain.WSEvent{Event: domain.EventError})

	assert.Equal(t, domain.EventError, recv(t, laptop).Event)
	assert.Equal(t, domain.EventError, recv(t, phone).Event)
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	logger.SetNewNop()
	hub := NewHub()

	slow := NewClient("slow")
	hub.Register(slow)
	hub.JoinChat("c1", slow)

	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBuffer+10; i++ {
			hub.BroadcastToChat("c1", nil, domain.WSEvent{Event: domain.EventMessageReceived})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
	assert.Len(t, slow.Send, sendBuffer)
}
