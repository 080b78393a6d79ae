package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetyconnect_backend/internal/models"
)

// allowOwn grants room-1 to partner p1 only.
func allowOwn(ctx context.Context, roomID, userID string, role models.UserRole) bool {
	return roomID == "room-1" && userID == "p1"
}

func testClient(m *Manager, userID string, role models.UserRole, rooms ...string) *Client {
	c := &Client{
		UserID:  userID,
		Role:    role,
		send:    make(chan interface{}, 4),
		manager: m,
		rooms:   make(map[string]bool),
	}
	for _, r := range rooms {
		c.subscribe(r)
	}
	return c
}

func subscribeFrame(roomID string) incomingMessage {
	return incomingMessage{
		Action: "subscribe",
		Data:   json.RawMessage(`{"roomId":"` + roomID + `"}`),
	}
}

func TestBroadcastToRoomReachesSubscribersAndAdmins(t *testing.T) {
	m := NewManager(allowOwn)

	subscriber := testClient(m, "p1", models.UserRolePartner, "room-1")
	stranger := testClient(m, "p2", models.UserRolePartner, "room-2")
	admin := testClient(m, "a1", models.UserRoleAdmin)

	m.clients[subscriber] = true
	m.clients[stranger] = true
	m.clients[admin] = true

	m.BroadcastToRoom("room-1", map[string]string{"text": "hello"})

	require.Len(t, subscriber.send, 1)
	event := (<-subscriber.send).(RoomEvent)
	assert.Equal(t, "message", event.Type)
	assert.Equal(t, "room-1", event.RoomID)

	assert.Len(t, admin.send, 1, "admins see every room")
	assert.Empty(t, stranger.send)
}

func TestSubscribeChecksRoomOwnership(t *testing.T) {
	m := NewManager(allowOwn)

	owner := testClient(m, "p1", models.UserRolePartner)
	owner.handleMessage(subscribeFrame("room-1"))
	assert.True(t, owner.Subscribed("room-1"))

	intruder := testClient(m, "p2", models.UserRolePartner)
	intruder.handleMessage(subscribeFrame("room-1"))
	assert.False(t, intruder.Subscribed("room-1"), "foreign partner must not join the room")

	m.clients[owner] = true
	m.clients[intruder] = true
	m.BroadcastToRoom("room-1", "event")
	assert.Len(t, owner.send, 1)
	assert.Empty(t, intruder.send)
}

func TestSubscribeAdminBypassesAuthorizer(t *testing.T) {
	m := NewManager(nil)

	admin := testClient(m, "a1", models.UserRoleAdmin)
	admin.handleMessage(subscribeFrame("room-9"))
	assert.True(t, admin.Subscribed("room-9"))
}

func TestSubscribeFailsClosedWithoutAuthorizer(t *testing.T) {
	m := NewManager(nil)

	partner := testClient(m, "p1", models.UserRolePartner)
	partner.handleMessage(subscribeFrame("room-1"))
	assert.False(t, partner.Subscribed("room-1"))
}

func TestBroadcastToUserTargetsSingleUser(t *testing.T) {
	m := NewManager(allowOwn)

	one := testClient(m, "p1", models.UserRolePartner)
	two := testClient(m, "p2", models.UserRolePartner)
	m.clients[one] = true
	m.clients[two] = true

	m.BroadcastToUser("p1", "ping")

	assert.Len(t, one.send, 1)
	assert.Empty(t, two.send)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	m := NewManager(allowOwn)

	c := testClient(m, "p1", models.UserRolePartner, "room-1")
	m.clients[c] = true

	c.unsubscribe("room-1")
	m.BroadcastToRoom("room-1", "event")

	assert.Empty(t, c.send)
}
