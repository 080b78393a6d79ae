package models

// Document is an entry of the public safety document library.
type Document struct {
	BaseModel
	Title         string `gorm:"not null" json:"title"`
	Description   string `gorm:"type:text" json:"description"`
	FileName      string `gorm:"not null" json:"fileName"`
	StoragePath   string `gorm:"not null" json:"-"`
	DownloadURL   string `gorm:"not null" json:"downloadUrl"`
	ContentType   string `json:"contentType"`
	Size          int64  `json:"size"`
	ViewCount     int64  `gorm:"default:0" json:"viewCount"`
	DownloadCount int64  `gorm:"default:0" json:"downloadCount"`
}
