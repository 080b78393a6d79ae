package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetyconnect_backend/internal/middleware"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services"
)

// QuoteHandler serves the partner's own quote listing; submission lives on
// the request routes.
type QuoteHandler struct {
	*BaseHandler
	quoteService services.QuoteService
}

func NewQuoteHandler(base *BaseHandler, quoteService services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		BaseHandler:  base,
		quoteService: quoteService,
	}
}

func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRolePartner))
	{
		quotes.GET("/my", h.ListMy)
	}
}

func (h *QuoteHandler) ListMy(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	quotes, err := h.quoteService.ListByPartner(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"total":  len(quotes),
	})
}
