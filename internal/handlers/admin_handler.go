package handlers

import (
	"net/http"

	"waselni_backend/internal/analytics"
	"waselni_backend/internal/middleware"
	"waselni_backend/internal/models"
	"waselni_backend/internal/services"
	"waselni_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
	visits       *analytics.VisitTracker
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, visits *analytics.VisitTracker) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
		visits:       visits,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/settings", h.GetSettings)
		admin.PATCH("/settings", h.UpdateSettings)
		admin.GET("/users", h.ListUsers)
		admin.POST("/users/:id/suspend", h.setUserStatus(models.UserStatusSuspended))
		admin.POST("/users/:id/unsuspend", h.setUserStatus(models.UserStatusActive))
		admin.POST("/requests/:id/hide", h.hideRequest(true))
		admin.POST("/requests/:id/unhide", h.hideRequest(false))
		admin.POST("/offers/:id/hide", h.hideOffer(true))
		admin.POST("/offers/:id/unhide", h.hideOffer(false))
		admin.GET("/stats", h.GetStats)
		admin.GET("/payments", h.ListPayments)
		admin.GET("/audit-log", h.ListAuditLog)
		admin.GET("/analytics/visits", h.GetVisitSummary)
	}
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.adminService.GetSettings(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	settings, err := h.adminService.UpdateSettings(h.GetDB(c), adminID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	users, err := h.adminService.ListUsers(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) setUserStatus(status models.UserStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := h.GetAndAuthorizeUserID(c)
		if !ok {
			return
		}

		user, err := h.adminService.SetUserStatus(h.GetDB(c), adminID, c.Param("id"), status)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func (h *AdminHandler) hideRequest(hidden bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := h.GetAndAuthorizeUserID(c)
		if !ok {
			return
		}

		if err := h.adminService.HideRequest(h.GetDB(c), adminID, c.Param("id"), hidden); err != nil {
			h.HandleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"hidden": hidden})
	}
}

func (h *AdminHandler) hideOffer(hidden bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := h.GetAndAuthorizeUserID(c)
		if !ok {
			return
		}

		if err := h.adminService.HideOffer(h.GetDB(c), adminID, c.Param("id"), hidden); err != nil {
			h.HandleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"hidden": hidden})
	}
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListPayments(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	payments, err := h.adminService.ListPayments(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

func (h *AdminHandler) ListAuditLog(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	entries, total, err := h.adminService.ListAuditLog(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":   entries,
		"page_info": dto.NewPageInfo(total, page, pageSize),
	})
}

func (h *AdminHandler) GetVisitSummary(c *gin.Context) {
	if !h.visits.Enabled() {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	days := ParseQueryInt(c, "days", 7)
	if days <= 0 || days > 90 {
		days = 7
	}

	summary, pages, err := h.visits.Summary(c.Request.Context(), days)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enabled":   true,
		"days":      summary,
		"top_pages": pages,
	})
}
