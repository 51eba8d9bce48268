package handlers

import (
	"net/http"
	"strconv"

	"waselni_backend/internal/middleware"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services"
	"waselni_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	*BaseHandler
	offerService    services.OfferService
	matchingService services.MatchingService
}

func NewOfferHandler(base *BaseHandler, offerService services.OfferService, matchingService services.MatchingService) *OfferHandler {
	return &OfferHandler{
		BaseHandler:     base,
		offerService:    offerService,
		matchingService: matchingService,
	}
}

func (h *OfferHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/offers")
	{
		public.GET("", h.ListOffers)
		public.GET("/:id", h.GetOffer)
	}

	protected := r.Group("/offers")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.CreateOffer)
		protected.GET("/my", h.ListMyOffers)
		protected.PATCH("/:id", h.UpdateOffer)
		protected.DELETE("/:id", h.DeleteOffer)
		protected.GET("/:id/matches", h.MatchRequests)
	}
}

func (h *OfferHandler) CreateOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOfferRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	offer, err := h.offerService.CreateOffer(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) GetOffer(c *gin.Context) {
	offer, err := h.offerService.GetOffer(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) ListOffers(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	filter := repositories.OfferFilter{
		OriginCountry:      c.Query("origin_country"),
		DestinationCountry: c.Query("destination_country"),
		Mode:               c.Query("mode"),
		Status:             c.Query("status"),
	}
	if minCap := c.Query("min_capacity"); minCap != "" {
		if v, err := strconv.ParseFloat(minCap, 64); err == nil {
			filter.MinCapacity = &v
		}
	}

	offers, err := h.offerService.ListOffers(h.GetDB(c), filter, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offers)
}

func (h *OfferHandler) ListMyOffers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	offers, err := h.offerService.ListMyOffers(h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offers)
}

func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateOfferRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	offer, err := h.offerService.UpdateOffer(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) DeleteOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.offerService.DeleteOffer(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Offer removed"})
}

func (h *OfferHandler) MatchRequests(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	requests, err := h.matchingService.MatchRequestsForOffer(h.GetDB(c), c.Param("id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}
