package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetyconnect_backend/internal/middleware"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/dashboard", h.Dashboard)
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	dash, err := h.adminService.Dashboard(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}
