package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetyconnect_backend/internal/middleware"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services"
	"safetyconnect_backend/internal/services/dto"
)

type RequestHandler struct {
	*BaseHandler
	requestService services.RequestService
	quoteService   services.QuoteService
}

func NewRequestHandler(base *BaseHandler, requestService services.RequestService, quoteService services.QuoteService) *RequestHandler {
	return &RequestHandler{
		BaseHandler:    base,
		requestService: requestService,
		quoteService:   quoteService,
	}
}

func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Public: clients create and browse requests without an account.
	// Contact details stay redacted until a partner unlocks.
	public := rg.Group("/requests")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.POST("", h.Create)
		public.GET("", h.List)
		public.GET("/:requestId", h.Get)
	}

	partner := rg.Group("/requests")
	partner.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRolePartner))
	{
		partner.POST("/:requestId/unlock", h.Unlock)
		partner.POST("/:requestId/quotes", h.SubmitQuote)
	}

	admin := rg.Group("/requests")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/:requestId/quotes", h.ListQuotes)
		admin.DELETE("/:requestId", h.Delete)
	}
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req dto.CreateRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.requestService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *RequestHandler) List(c *gin.Context) {
	var query dto.ListRequestsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	requests, err := h.requestService.List(c.Request.Context(), h.GetDB(c), &query,
		middleware.GetUserID(c), h.IsAdmin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

func (h *RequestHandler) Get(c *gin.Context) {
	resp, err := h.requestService.Get(c.Request.Context(), h.GetDB(c),
		c.Param("requestId"), middleware.GetUserID(c), h.IsAdmin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Unlock records the partner's view of the client contact and returns the
// request with the contact visible.
func (h *RequestHandler) Unlock(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.requestService.Unlock(c.Request.Context(), h.GetDB(c), c.Param("requestId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) SubmitQuote(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitQuoteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	quote, err := h.quoteService.Submit(c.Request.Context(), h.GetDB(c), c.Param("requestId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quote)
}

func (h *RequestHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.quoteService.ListByRequest(c.Request.Context(), h.GetDB(c), c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"total":  len(quotes),
	})
}

func (h *RequestHandler) Delete(c *gin.Context) {
	if err := h.requestService.Delete(c.Request.Context(), h.GetDB(c), c.Param("requestId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request deleted"})
}
