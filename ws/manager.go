// Package ws pushes live chat events to connected partner and admin
// browsers. Delivery is best effort: a slow or dead socket is dropped,
// the durable copy of every message lives in the database.
package ws

import (
	"context"
	"sync"

	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/models"
)

// RoomEvent is the envelope written to sockets subscribed to a room.
type RoomEvent struct {
	Type   string      `json:"type"`
	RoomID string      `json:"roomId"`
	Data   interface{} `json:"data"`
}

// RoomAuthorizer reports whether a user may receive events of a room.
// The application wires this to the chat service's room ownership check.
type RoomAuthorizer func(ctx context.Context, roomID, userID string, role models.UserRole) bool

type Manager struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	authorize  RoomAuthorizer
	mu         sync.RWMutex
}

// NewManager builds the hub. A nil authorizer fails closed: only admin
// sockets receive room events.
func NewManager(authorize RoomAuthorizer) *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		authorize:  authorize,
	}
}

// canSubscribe vets a subscription request against room ownership.
func (m *Manager) canSubscribe(roomID string, c *Client) bool {
	if c.Role == models.UserRoleAdmin {
		return true
	}
	if m.authorize == nil {
		return false
	}
	return m.authorize(context.Background(), roomID, c.UserID, c.Role)
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			total := len(m.clients)
			m.mu.Unlock()
			logger.Info("ws client connected", "userID", client.UserID, "role", client.Role, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				close(client.send)
				delete(m.clients, client)
			}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Info("ws client disconnected", "userID", client.UserID, "total", total)
		}
	}
}

// BroadcastToRoom delivers an event to every socket that subscribed to the
// room. Admin sockets receive events for all rooms.
func (m *Manager) BroadcastToRoom(roomID string, event interface{}) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	envelope := RoomEvent{Type: "message", RoomID: roomID, Data: event}

	for client := range m.clients {
		if client.Role != models.UserRoleAdmin && !client.Subscribed(roomID) {
			continue
		}
		select {
		case client.send <- envelope:
		default:
			// Full send buffer; the client is stuck, let it reconnect.
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
}

// BroadcastToUser delivers an event to every socket of a single user.
func (m *Manager) BroadcastToUser(userID string, event interface{}) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.send <- event:
		default:
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
}

// ClientCount reports the number of open sockets.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
