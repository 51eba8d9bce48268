package handlers

import (
	"net/http"

	"waselni_backend/internal/analytics"
	"waselni_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	visits *analytics.VisitTracker
}

func NewAnalyticsHandler(base *BaseHandler, visits *analytics.VisitTracker) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler: base,
		visits:      visits,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/analytics/track", h.TrackVisit)
}

type trackVisitRequest struct {
	Page string `json:"page" validate:"required,max=200"`
}

func (h *AnalyticsHandler) TrackVisit(c *gin.Context) {
	var req trackVisitRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// Сбой аналитики не должен ронять запрос клиента
	if err := h.visits.Track(c.Request.Context(), req.Page, c.ClientIP()); err != nil {
		logger.CtxWithError(c.Request.Context(), "visit tracking failed", err, "page", req.Page)
	}

	c.JSON(http.StatusAccepted, gin.H{"tracked": h.visits.Enabled()})
}
