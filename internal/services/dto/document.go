package dto

import (
	"time"

	"safetyconnect_backend/internal/models"
)

// CreateDocumentRequest is the metadata part of an admin upload; the file
// itself arrives as multipart form data.
type CreateDocumentRequest struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
}

type DocumentResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	FileName      string    `json:"fileName"`
	DownloadURL   string    `json:"downloadUrl"`
	ContentType   string    `json:"contentType"`
	Size          int64     `json:"size"`
	ViewCount     int64     `json:"viewCount"`
	DownloadCount int64     `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewDocumentResponse(d *models.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		FileName:      d.FileName,
		DownloadURL:   d.DownloadURL,
		ContentType:   d.ContentType,
		Size:          d.Size,
		ViewCount:     d.ViewCount,
		DownloadCount: d.DownloadCount,
		CreatedAt:     d.CreatedAt,
	}
}
