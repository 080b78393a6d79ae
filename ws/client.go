package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// incomingMessage is the client-to-server frame. Clients only manage their
// room subscriptions over the socket; messages are sent over HTTP.
type incomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type subscribePayload struct {
	RoomID string `json:"roomId"`
}

type Client struct {
	UserID string
	Role   models.UserRole

	conn    *websocket.Conn
	send    chan interface{}
	manager *Manager

	mu    sync.RWMutex
	rooms map[string]bool
}

// Subscribed reports whether the client asked for events of the room.
func (c *Client) Subscribed(roomID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rooms[roomID]
}

func (c *Client) subscribe(roomID string) {
	c.mu.Lock()
	c.rooms[roomID] = true
	c.mu.Unlock()
}

func (c *Client) unsubscribe(roomID string) {
	c.mu.Lock()
	delete(c.rooms, roomID)
	c.mu.Unlock()
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "userID", c.UserID, "error", err.Error())
			}
			return
		}

		var msg incomingMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Warn("ws invalid frame", "userID", c.UserID, "error", err.Error())
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				logger.Warn("ws write error", "userID", c.UserID, "error", err.Error())
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg incomingMessage) {
	switch msg.Action {
	case "subscribe":
		var payload subscribePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.RoomID == "" {
			logger.Warn("ws invalid subscribe payload", "userID", c.UserID)
			return
		}
		if !c.manager.canSubscribe(payload.RoomID, c) {
			logger.Warn("ws subscribe denied", "userID", c.UserID, "roomID", payload.RoomID)
			return
		}
		c.subscribe(payload.RoomID)

	case "unsubscribe":
		var payload subscribePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.RoomID == "" {
			return
		}
		c.unsubscribe(payload.RoomID)

	default:
		logger.Warn("ws unhandled action", "userID", c.UserID, "action", msg.Action)
	}
}
