package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetyconnect_backend/internal/middleware"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services"
	"safetyconnect_backend/internal/services/dto"
)

type PartnerHandler struct {
	*BaseHandler
	partnerService services.PartnerService
}

func NewPartnerHandler(base *BaseHandler, partnerService services.PartnerService) *PartnerHandler {
	return &PartnerHandler{
		BaseHandler:    base,
		partnerService: partnerService,
	}
}

func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Partner self-service. Registered before the admin group so the
	// static /me segment wins over /:uid.
	me := rg.Group("/partners")
	me.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRolePartner))
	{
		me.GET("/me", h.GetMe)
		me.PUT("/me/subscription", h.UpdateSubscription)
	}

	admin := rg.Group("/partners")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("", h.List)
		admin.GET("/pending", h.ListPending)
		admin.PUT("/:uid/status", h.UpdateStatus)
		admin.DELETE("/:uid", h.Delete)
	}
}

func (h *PartnerHandler) List(c *gin.Context) {
	status := models.PartnerStatus(c.Query("status"))

	partners, err := h.partnerService.List(c.Request.Context(), h.GetDB(c), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"partners": partners,
		"total":    len(partners),
	})
}

func (h *PartnerHandler) ListPending(c *gin.Context) {
	partners, err := h.partnerService.List(c.Request.Context(), h.GetDB(c), models.PartnerStatusPending)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"partners": partners,
		"total":    len(partners),
	})
}

func (h *PartnerHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	partner, err := h.partnerService.Get(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, partner)
}

// UpdateStatus applies the admin approve/reject decision.
func (h *PartnerHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdatePartnerStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	partner, err := h.partnerService.UpdateStatus(c.Request.Context(), h.GetDB(c),
		c.Param("uid"), models.PartnerStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, partner)
}

func (h *PartnerHandler) UpdateSubscription(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSubscriptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	partner, err := h.partnerService.SetSubscription(c.Request.Context(), h.GetDB(c),
		userID, *req.SubscribesToEmails)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, partner)
}

func (h *PartnerHandler) Delete(c *gin.Context) {
	if err := h.partnerService.Delete(c.Request.Context(), h.GetDB(c), c.Param("uid")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Partner deleted"})
}
