// Package storage abstracts where uploaded files live. Chat attachments
// and library documents are written through Storage and read back either
// directly (local disk, served by the file route) or via the backend's
// public URL (S3 / Cloudflare R2).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned by Get when no file exists at the path.
var ErrNotFound = errors.New("storage: file not found")

// Storage is the file backend used by the chat and document services.
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	// GetURL returns the address clients use to fetch the file.
	GetURL(ctx context.Context, path string) (string, error)
}

type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // local: directory holding the files
	BaseURL    string // public URL prefix
	Bucket     string // s3/r2
	Region     string // s3
	AccessKey  string // s3/r2
	SecretKey  string // s3/r2
	Endpoint   string // r2 or custom s3
	UseSSL     bool   // s3/r2
	PublicRead bool   // s3/r2: objects readable without signing
}

// NewStorage builds the backend selected by cfg.Type.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
