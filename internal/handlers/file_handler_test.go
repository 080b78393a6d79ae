package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetyconnect_backend/internal/storage"
	"safetyconnect_backend/internal/validator"
)

func newFileRouter(t *testing.T) (*gin.Engine, storage.Storage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/api/v1/files"})
	require.NoError(t, err)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewFileHandler(NewBaseHandler(validator.New()), store).RegisterRoutes(api)
	return engine, store
}

func TestServeStoredFile(t *testing.T) {
	engine, store := newFileRouter(t)

	err := store.Save(context.Background(), "chat/room-1/photo.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/files/chat/room-1/photo.png", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestServeMissingFileReturns404(t *testing.T) {
	engine, _ := newFileRouter(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/files/documents/nope.pdf", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeRejectsTraversal(t *testing.T) {
	engine, _ := newFileRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/chat/room-1/x.png", nil)
	req.URL.Path = "/api/v1/files/../../etc/passwd"
	engine.ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "root:")
}
