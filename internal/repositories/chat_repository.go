package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"safetyconnect_backend/internal/models"
)

type ChatRepository interface {
	FindRoom(ctx context.Context, requestID, partnerID string) (*models.ChatRoom, error)
	FindRoomByID(ctx context.Context, roomID string) (*models.ChatRoom, error)
	CreateRoom(ctx context.Context, room *models.ChatRoom) error
	ListRoomsByPartner(ctx context.Context, partnerID string) ([]models.ChatRoom, error)
	ListAllRooms(ctx context.Context) ([]models.ChatRoom, error)

	CreateMessage(ctx context.Context, msg *models.ChatMessage) error
	ListMessages(ctx context.Context, roomID string) ([]models.ChatMessage, error)

	// TouchRoom updates the room preview and bumps the unread counter of
	// the side that did not send.
	TouchRoom(ctx context.Context, roomID, lastMessage string, at time.Time, senderIsPartner bool) error
	// ResetUnread zeroes one side's counter and flags the counterpart's
	// messages as read.
	ResetUnread(ctx context.Context, roomID string, partnerSide bool) error

	SumUnreadPartner(ctx context.Context, partnerID string) (int64, error)
	SumUnreadClient(ctx context.Context) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) FindRoom(ctx context.Context, requestID, partnerID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.WithContext(ctx).
		Where("request_id = ? AND partner_id = ?", requestID, partnerID).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRepository) FindRoomByID(ctx context.Context, roomID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := r.db.WithContext(ctx).First(&room, "id = ?", roomID).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRepository) CreateRoom(ctx context.Context, room *models.ChatRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *chatRepository) ListRoomsByPartner(ctx context.Context, partnerID string) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("last_message_time DESC NULLS LAST").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *chatRepository) ListAllRooms(ctx context.Context) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.WithContext(ctx).
		Order("last_message_time DESC NULLS LAST").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepository) ListMessages(ctx context.Context, roomID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatRepository) TouchRoom(ctx context.Context, roomID, lastMessage string, at time.Time, senderIsPartner bool) error {
	unreadColumn := "unread_partner"
	if senderIsPartner {
		unreadColumn = "unread_client"
	}
	return r.db.WithContext(ctx).Model(&models.ChatRoom{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{
			"last_message":      lastMessage,
			"last_message_time": at,
			unreadColumn:        gorm.Expr(unreadColumn + " + 1"),
		}).Error
}

func (r *chatRepository) ResetUnread(ctx context.Context, roomID string, partnerSide bool) error {
	unreadColumn := "unread_client"
	senderRoles := []models.UserRole{models.UserRolePartner}
	if partnerSide {
		unreadColumn = "unread_partner"
		senderRoles = []models.UserRole{models.UserRoleClient, models.UserRoleAdmin}
	}

	err := r.db.WithContext(ctx).Model(&models.ChatRoom{}).
		Where("id = ?", roomID).
		Update(unreadColumn, 0).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&models.ChatMessage{}).
		Where("room_id = ? AND sender_role IN ? AND read = ?", roomID, senderRoles, false).
		Update("read", true).Error
}

func (r *chatRepository) SumUnreadPartner(ctx context.Context, partnerID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ChatRoom{}).
		Where("partner_id = ?", partnerID).
		Select("COALESCE(SUM(unread_partner), 0)").
		Scan(&total).Error
	return total, err
}

func (r *chatRepository) SumUnreadClient(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ChatRoom{}).
		Select("COALESCE(SUM(unread_client), 0)").
		Scan(&total).Error
	return total, err
}
