package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/middleware"
	"safetyconnect_backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Auth happens via the bearer token; origin is not restricted.
		return true
	},
}

type WebSocketHandler struct {
	Manager *Manager
}

func NewWebSocketHandler(manager *Manager) *WebSocketHandler {
	return &WebSocketHandler{Manager: manager}
}

// ServeWS upgrades an authenticated request to a websocket connection. The
// route sits behind AuthMiddleware, so identity is taken from the context.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var role models.UserRole
	if roleVal, ok := c.Get("role"); ok {
		switch r := roleVal.(type) {
		case models.UserRole:
			role = r
		case string:
			role = models.UserRole(r)
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "websocket upgrade failed", err)
		return
	}

	client := &Client{
		UserID:  userID,
		Role:    role,
		conn:    conn,
		send:    make(chan interface{}, 256),
		manager: h.Manager,
		rooms:   make(map[string]bool),
	}

	h.Manager.register <- client

	go client.readPump()
	go client.writePump()
}
