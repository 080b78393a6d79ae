package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"safetyconnect_backend/internal/storage"
	"safetyconnect_backend/pkg/apperrors"
)

// FileHandler streams stored files back out. With local storage this is
// the only way attachment and document URLs resolve; S3/R2 deployments
// usually serve from the bucket URL instead, but the route works for any
// backend.
type FileHandler struct {
	*BaseHandler
	store storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		store:       store,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	{
		files.GET("/*filePath", h.Serve)
	}
}

func (h *FileHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("filePath"), "/")
	if path == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File path is required"))
		return
	}

	reader, err := h.store.Get(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			apperrors.HandleError(c, apperrors.ErrNotFound(err))
			return
		}
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, -1, contentType, reader, nil)
}
