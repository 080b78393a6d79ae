package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"safetyconnect_backend/internal/config"
	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/internal/storage"
	"safetyconnect_backend/pkg/apperrors"
)

type DocumentService interface {
	// Upload stores the file and creates the library entry.
	Upload(ctx context.Context, db *gorm.DB, meta *dto.CreateDocumentRequest, file io.Reader, fileName, contentType string, size int64) (*dto.DocumentResponse, error)
	List(ctx context.Context, db *gorm.DB) ([]*dto.DocumentResponse, error)
	// Get returns one entry and counts the view.
	Get(ctx context.Context, db *gorm.DB, id string) (*dto.DocumentResponse, error)
	// Download counts the download and returns the entry with its URL.
	Download(ctx context.Context, db *gorm.DB, id string) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type documentService struct {
	repos RepoFactory
	store storage.Storage
}

func NewDocumentService(repos RepoFactory, store storage.Storage) DocumentService {
	return &documentService{repos: repos, store: store}
}

func (s *documentService) Upload(ctx context.Context, db *gorm.DB, meta *dto.CreateDocumentRequest, file io.Reader, fileName, contentType string, size int64) (*dto.DocumentResponse, error) {
	cfg := config.GetConfig()
	if size > cfg.Upload.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if !allowedContentType(contentType, cfg.Upload.AllowedTypes) {
		return nil, apperrors.ErrInvalidFileType
	}

	path := fmt.Sprintf("documents/%s%s", uuid.NewString(), filepath.Ext(fileName))
	if err := s.store.Save(ctx, path, file, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	doc := &models.Document{
		Title:       meta.Title,
		Description: meta.Description,
		FileName:    fileName,
		StoragePath: path,
		DownloadURL: url,
		ContentType: contentType,
		Size:        size,
	}
	if err := s.repos(db).Documents.Create(ctx, doc); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "document uploaded", "document_id", doc.ID, "title", doc.Title)
	return dto.NewDocumentResponse(doc), nil
}

func (s *documentService) List(ctx context.Context, db *gorm.DB) ([]*dto.DocumentResponse, error) {
	docs, err := s.repos(db).Documents.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, dto.NewDocumentResponse(&docs[i]))
	}
	return out, nil
}

func (s *documentService) Get(ctx context.Context, db *gorm.DB, id string) (*dto.DocumentResponse, error) {
	r := s.repos(db)

	doc, err := s.findDocument(ctx, db, id)
	if err != nil {
		return nil, err
	}

	if err := r.Documents.IncrementViews(ctx, id); err != nil {
		logger.CtxWithError(ctx, "failed to count document view", err, "document_id", id)
	} else {
		doc.ViewCount++
	}
	return dto.NewDocumentResponse(doc), nil
}

func (s *documentService) Download(ctx context.Context, db *gorm.DB, id string) (*dto.DocumentResponse, error) {
	r := s.repos(db)

	doc, err := s.findDocument(ctx, db, id)
	if err != nil {
		return nil, err
	}

	if err := r.Documents.IncrementDownloads(ctx, id); err != nil {
		logger.CtxWithError(ctx, "failed to count document download", err, "document_id", id)
	} else {
		doc.DownloadCount++
	}
	return dto.NewDocumentResponse(doc), nil
}

func (s *documentService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	doc, err := s.findDocument(ctx, db, id)
	if err != nil {
		return err
	}

	if err := s.repos(db).Documents.Delete(ctx, id); err != nil {
		return apperrors.InternalError(err)
	}

	// Removing the stored file is best-effort; a dangling object is
	// preferable to a library entry without a row.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		logger.CtxWithError(ctx, "failed to delete stored document", err, "document_id", id)
	}

	logger.CtxInfo(ctx, "document deleted", "document_id", id)
	return nil
}

func (s *documentService) findDocument(ctx context.Context, db *gorm.DB, id string) (*models.Document, error) {
	doc, err := s.repos(db).Documents.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return doc, nil
}
