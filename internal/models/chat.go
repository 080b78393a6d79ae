package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Admin side of partner rooms is a fixed placeholder identity rather than a
// real account reference.
const (
	AdminChatID    = "admin"
	AdminChatName  = "Admin - SafetyConnect"
	AdminChatEmail = "admin@safetyconnect.vn"
)

// ChatRoom links one training request with one partner. The pair is unique;
// opening a room twice returns the existing one.
type ChatRoom struct {
	BaseModel
	RequestID   string `gorm:"type:uuid;not null;index:idx_rooms_request_partner,unique" json:"requestId"`
	PartnerID   string `gorm:"type:uuid;not null;index:idx_rooms_request_partner,unique" json:"partnerId"`
	ClientID    string `gorm:"not null" json:"clientId"`
	ClientName  string `gorm:"not null" json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	PartnerName string `gorm:"not null" json:"partnerName"`

	LastMessage     string     `json:"lastMessage"`
	LastMessageTime *time.Time `json:"lastMessageTime"`

	// Unread counters are monotonic per sent message and reset to zero
	// only when the owning side reads the room.
	UnreadClient  int `gorm:"default:0" json:"unreadClient"`
	UnreadPartner int `gorm:"default:0" json:"unreadPartner"`

	Messages []ChatMessage `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// ChatAttachment describes a file shared inside a room.
type ChatAttachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"` // image | pdf | document
	Size int64  `json:"size"`
}

type ChatMessage struct {
	BaseModel
	RoomID     string         `gorm:"type:uuid;not null;index" json:"roomId"`
	SenderID   string         `gorm:"not null" json:"senderId"`
	SenderName string         `gorm:"not null" json:"senderName"`
	SenderRole UserRole       `gorm:"type:varchar(20);not null" json:"senderRole"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	Read       bool           `gorm:"default:false" json:"read"`
	Attachment datatypes.JSON `gorm:"type:jsonb" json:"attachment,omitempty"`
}

func (m *ChatMessage) GetAttachment() *ChatAttachment {
	if len(m.Attachment) == 0 {
		return nil
	}
	var att ChatAttachment
	if err := json.Unmarshal(m.Attachment, &att); err != nil {
		return nil
	}
	return &att
}

func (m *ChatMessage) SetAttachment(att *ChatAttachment) error {
	if att == nil {
		m.Attachment = nil
		return nil
	}
	raw, err := json.Marshal(att)
	if err != nil {
		return err
	}
	m.Attachment = raw
	return nil
}
