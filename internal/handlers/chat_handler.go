package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetyconnect_backend/internal/middleware"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/pkg/apperrors"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
	}
}

func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	chat := rg.Group("/chat")
	chat.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRolePartner, models.UserRoleAdmin))
	{
		chat.POST("/rooms", h.OpenRoom)
		chat.GET("/rooms", h.ListRooms)
		chat.GET("/rooms/:roomId/messages", h.ListMessages)
		chat.POST("/rooms/:roomId/messages", h.SendMessage)
		chat.POST("/rooms/:roomId/attachments", h.UploadAttachment)
		chat.PUT("/rooms/:roomId/read", h.MarkRead)
		chat.GET("/unread", h.Unread)
	}
}

// OpenRoom creates or returns the room of a (request, partner) pair.
func (h *ChatHandler) OpenRoom(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.OpenRoomRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	room, err := h.chatService.OpenRoom(c.Request.Context(), h.GetDB(c), req.RequestID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *ChatHandler) ListRooms(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	rooms, err := h.chatService.ListRooms(c.Request.Context(), h.GetDB(c), userID, h.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rooms": rooms,
		"total": len(rooms),
	})
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	messages, err := h.chatService.ListMessages(c.Request.Context(), h.GetDB(c),
		c.Param("roomId"), userID, h.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	msg, err := h.chatService.SendMessage(c.Request.Context(), h.GetDB(c),
		c.Param("roomId"), userID, h.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// UploadAttachment stores a multipart file and returns the attachment
// descriptor to embed in a follow-up message.
func (h *ChatHandler) UploadAttachment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	attachment, err := h.chatService.UploadAttachment(c.Request.Context(), h.GetDB(c),
		c.Param("roomId"), userID, h.GetUserRole(c),
		file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attachment)
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.chatService.MarkRead(c.Request.Context(), h.GetDB(c),
		c.Param("roomId"), userID, h.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room marked as read"})
}

func (h *ChatHandler) Unread(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	total, err := h.chatService.UnreadTotal(c.Request.Context(), h.GetDB(c), userID, h.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadResponse{Unread: total})
}
