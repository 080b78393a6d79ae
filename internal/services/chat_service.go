package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"safetyconnect_backend/internal/config"
	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/internal/storage"
	"safetyconnect_backend/pkg/apperrors"
)

type ChatService interface {
	// OpenRoom returns the room of a (request, partner) pair, creating it
	// on first use.
	OpenRoom(ctx context.Context, db *gorm.DB, requestID, partnerUserID string) (*models.ChatRoom, error)
	ListRooms(ctx context.Context, db *gorm.DB, userID string, role models.UserRole) ([]models.ChatRoom, error)
	ListMessages(ctx context.Context, db *gorm.DB, roomID, userID string, role models.UserRole) ([]models.ChatMessage, error)
	// SendMessage posts into a room and bumps the counterpart's unread
	// counter.
	SendMessage(ctx context.Context, db *gorm.DB, roomID, userID string, role models.UserRole, req *dto.SendMessageRequest) (*models.ChatMessage, error)
	// MarkRead zeroes the caller's unread counter for the room.
	MarkRead(ctx context.Context, db *gorm.DB, roomID, userID string, role models.UserRole) error
	UnreadTotal(ctx context.Context, db *gorm.DB, userID string, role models.UserRole) (int64, error)
	// UploadAttachment stores a file for a room and returns the attachment
	// descriptor to embed in a message.
	UploadAttachment(ctx context.Context, db *gorm.DB, roomID, userID string, role models.UserRole, file io.Reader, fileName, contentType string, size int64) (*models.ChatAttachment, error)
	// CanAccessRoom reports whether the user may read the room. Used by
	// the websocket hub to vet live subscriptions.
	CanAccessRoom(ctx context.Context, db *gorm.DB, roomID, userID string, role models.UserRole) bool
}

type chatService struct {
	repos       RepoFactory
	store       storage.Storage
	broadcaster RoomBroadcaster
}

func NewChatService(repos RepoFactory, store storage.Storage, broadcaster RoomBroadcaster) ChatService {
	return &chatService{repos: repos, store: store, broadcaster: broadcaster}
}

func (s *chatService) OpenRoom(ctx context.Context, db *gorm.DB, requestID, partnerUserID string) (*models.ChatRoom, error) {
	r := s.repos(db)

	partner, err := r.Partners.FindByUserID(ctx, partnerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if partner.Status != models.PartnerStatusApproved {
		return nil, apperrors.ErrPartnerNotApproved
	}

	request, err := r.Requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	room, err := r.Chats.FindRoom(ctx, requestID, partner.UserID)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	room = &models.ChatRoom{
		RequestID:   requestID,
		PartnerID:   partner.UserID,
		ClientID:    models.AdminChatID,
		ClientName:  request.ClientName,
		ClientEmail: request.ClientEmail,
		PartnerName: partner.DisplayName(),
	}
	if err := r.Chats.CreateRoom(ctx, room); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "chat room created", "room_id", room.ID, "request_id", requestID)
	return room, nil
}

func (s *chatService) ListRooms(ctx context.Context, db *gorm.DB, userID string, role models.UserRole) ([]models.ChatRoom, error) {
	r := s.repos(db)

	var rooms []models.ChatRoom
	var err error
	if role == models.UserRoleAdmin {
		rooms, err = r.Chats.ListAllRooms(ctx)
	} else {
		rooms, err = r.Chats.ListRoomsByPartner(ctx, userID)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return rooms, nil
}

func (s *chatService) ListMessages(ctx context.Context, db *gorm.DB, roomID, userID string, role models.UserRole) ([]models.ChatMessage, error) {
	if _, err := s.authorizeRoom(ctx, db, roomID, userID, role); err != nil {
		return nil, err
	}

	messages, err := s.repos(db).Chats.ListMessages(ctx, roomID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return messages, nil
}

func (s *chatService) SendMessage(ctx context.Context, db *gorm.DB, roomID, userID string, role models.UserRole, req *dto.SendMessageRequest) (*models.ChatMessage, error) {
	if strings.TrimSpace(req.Message) == "" && req.Attachment == nil {
		return nil, apperrors.NewBadRequestError("Message text or attachment is required")
	}

	room, err := s.authorizeRoom(ctx, db, roomID, userID, role)
	if err != nil {
		return nil, err
	}

	senderName := models.AdminChatName
	if role == models.UserRolePartner {
		senderName = room.PartnerName
	}

	msg := &models.ChatMessage{
		RoomID:     roomID,
		SenderID:   userID,
		SenderName: senderName,
		SenderRole: role,
		Message:    strings.TrimSpace(req.Message),
	}
	if req.Attachment != nil {
		err := msg.SetAttachment(&models.ChatAttachment{
			URL:  req.Attachment.URL,
			Name: req.Attachment.Name,
			Type: req.Attachment.Type,
			Size: req.Attachment.Size,
		})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	r := s.repos(db)
	if err := r.Chats.CreateMessage(ctx, msg); err != nil {
		return nil, apperrors.InternalError(err)
	}

	preview := msg.Message
	if preview == "" {
		preview = "📎 " + req.Attachment.Name
	}
	if err := r.Chats.TouchRoom(ctx, roomID, preview, time.Now(), role == models.UserRolePartner); err != nil {
		logger.CtxWithError(ctx, "failed to update room preview", err, "room_id", roomID)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(roomID, msg)
	}

	return msg, nil
}

func (s *chatService) MarkRead(ctx context.Context, db *gorm.DB, roomID, userID string, role models.UserRole) error {
	if _, err := s.authorizeRoom(ctx, db, roomID, userID, role); err != nil {
		return err
	}

	if err := s.repos(db).Chats.ResetUnread(ctx, roomID, role == models.UserRolePartner); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *chatService) UnreadTotal(ctx context.Context, db *gorm.DB, userID string, role models.UserRole) (int64, error) {
	r := s.repos(db)

	var total int64
	var err error
	if role == models.UserRoleAdmin {
		total, err = r.Chats.SumUnreadClient(ctx)
	} else {
		total, err = r.Chats.SumUnreadPartner(ctx, userID)
	}
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return total, nil
}

func (s *chatService) UploadAttachment(ctx context.Context, db *gorm.DB, roomID, userID string, role models.UserRole, file io.Reader, fileName, contentType string, size int64) (*models.ChatAttachment, error) {
	if _, err := s.authorizeRoom(ctx, db, roomID, userID, role); err != nil {
		return nil, err
	}

	cfg := config.GetConfig()
	if size > cfg.Upload.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if !allowedContentType(contentType, cfg.Upload.AllowedTypes) {
		return nil, apperrors.ErrInvalidFileType
	}

	path := fmt.Sprintf("chat/%s/%s%s", roomID, uuid.NewString(), filepath.Ext(fileName))
	if err := s.store.Save(ctx, path, file, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "chat attachment uploaded", "room_id", roomID, "size", size)

	return &models.ChatAttachment{
		URL:  url,
		Name: fileName,
		Type: attachmentCategory(contentType),
		Size: size,
	}, nil
}

func (s *chatService) CanAccessRoom(ctx context.Context, db *gorm.DB, roomID, userID string, role models.UserRole) bool {
	_, err := s.authorizeRoom(ctx, db, roomID, userID, role)
	return err == nil
}

// authorizeRoom loads the room and checks the caller belongs to it. Admins
// see every room; a partner only their own side.
func (s *chatService) authorizeRoom(ctx context.Context, db *gorm.DB, roomID, userID string, role models.UserRole) (*models.ChatRoom, error) {
	room, err := s.repos(db).Chats.FindRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if role != models.UserRoleAdmin && room.PartnerID != userID {
		return nil, apperrors.ErrRoomAccessDenied
	}
	return room, nil
}

func allowedContentType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if t == contentType {
			return true
		}
	}
	return false
}

// attachmentCategory buckets a MIME type into the chat attachment kinds.
func attachmentCategory(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case contentType == "application/pdf":
		return "pdf"
	default:
		return "document"
	}
}
