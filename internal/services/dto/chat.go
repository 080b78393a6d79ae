package dto

// AttachmentInput describes a file already uploaded to storage.
type AttachmentInput struct {
	URL  string `json:"url" validate:"required,url"`
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=image pdf document"`
	Size int64  `json:"size" validate:"gte=0"`
}

// SendMessageRequest posts into a chat room. A message may be text,
// an attachment, or both.
type SendMessageRequest struct {
	Message    string           `json:"message"`
	Attachment *AttachmentInput `json:"attachment,omitempty"`
}

// OpenRoomRequest creates or returns the room for a request/partner pair.
type OpenRoomRequest struct {
	RequestID string `json:"requestId" validate:"required,uuid"`
}

// UnreadResponse is the caller's total unread count across rooms.
type UnreadResponse struct {
	Unread int64 `json:"unread"`
}
