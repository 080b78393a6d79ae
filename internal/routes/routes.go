package routes

import (
	"github.com/gin-gonic/gin"

	"safetyconnect_backend/internal/handlers"
	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/middleware"
	"safetyconnect_backend/ws"
)

// RegisterRoutes mounts the HTTP API under /api/v1 and the websocket
// endpoint under /ws.
func RegisterRoutes(
	engine *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
) {
	api := engine.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.RequestHandler.RegisterRoutes(api)
		appHandlers.PartnerHandler.RegisterRoutes(api)
		appHandlers.QuoteHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
		appHandlers.DocumentHandler.RegisterRoutes(api)
		appHandlers.FileHandler.RegisterRoutes(api)
	}

	wsGroup := engine.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
	logger.Info("routes registered", "api", "/api/v1", "ws", "/ws")
}
