package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetyconnect_backend/internal/middleware"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/pkg/apperrors"
)

type DocumentHandler struct {
	*BaseHandler
	documentService services.DocumentService
}

func NewDocumentHandler(base *BaseHandler, documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler:     base,
		documentService: documentService,
	}
}

func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// The safety document library is public to read.
	public := rg.Group("/documents")
	{
		public.GET("", h.List)
		public.GET("/:documentId", h.Get)
		public.POST("/:documentId/download", h.Download)
	}

	admin := rg.Group("/documents")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("", h.Upload)
		admin.DELETE("/:documentId", h.Delete)
	}
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documentService.List(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": docs,
		"total":     len(docs),
	})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documentService.Get(c.Request.Context(), h.GetDB(c), c.Param("documentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Download counts the download and returns the entry with its URL; the
// client follows downloadUrl itself.
func (h *DocumentHandler) Download(c *gin.Context) {
	doc, err := h.documentService.Download(c.Request.Context(), h.GetDB(c), c.Param("documentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	var meta dto.CreateDocumentRequest
	if err := c.ShouldBind(&meta); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid form data: "+err.Error()))
		return
	}
	if !h.validateStruct(c, &meta) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	doc, err := h.documentService.Upload(c.Request.Context(), h.GetDB(c), &meta,
		file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documentService.Delete(c.Request.Context(), h.GetDB(c), c.Param("documentId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
