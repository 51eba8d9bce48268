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

type RequestHandler struct {
	*BaseHandler
	requestService  services.RequestService
	matchingService services.MatchingService
}

func NewRequestHandler(base *BaseHandler, requestService services.RequestService, matchingService services.MatchingService) *RequestHandler {
	return &RequestHandler{
		BaseHandler:     base,
		requestService:  requestService,
		matchingService: matchingService,
	}
}

func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/requests")
	{
		public.GET("", h.ListRequests)
		public.GET("/:id", h.GetRequest)
	}

	protected := r.Group("/requests")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.CreateRequest)
		protected.GET("/my", h.ListMyRequests)
		protected.PATCH("/:id", h.UpdateRequest)
		protected.DELETE("/:id", h.DeleteRequest)
		protected.POST("/:id/photos", h.AddPhoto)
		protected.GET("/:id/matches", h.MatchOffers)
	}
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.requestService.CreateRequest(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	request, err := h.requestService.GetRequest(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *RequestHandler) ListRequests(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	filter := repositories.RequestFilter{
		OriginCountry:      c.Query("origin_country"),
		DestinationCountry: c.Query("destination_country"),
		Mode:               c.Query("mode"),
		Status:             c.Query("status"),
	}
	if minW := c.Query("min_weight"); minW != "" {
		if v, err := strconv.ParseFloat(minW, 64); err == nil {
			filter.MinWeight = &v
		}
	}
	if maxW := c.Query("max_weight"); maxW != "" {
		if v, err := strconv.ParseFloat(maxW, 64); err == nil {
			filter.MaxWeight = &v
		}
	}

	requests, err := h.requestService.ListRequests(h.GetDB(c), filter, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	requests, err := h.requestService.ListMyRequests(h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.requestService.UpdateRequest(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.requestService.DeleteRequest(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request removed"})
}

func (h *RequestHandler) AddPhoto(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddPhotoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.requestService.AddPhoto(h.GetDB(c), userID, c.Param("id"), req.PhotoURL)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *RequestHandler) MatchOffers(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	offers, err := h.matchingService.MatchOffersForRequest(h.GetDB(c), c.Param("id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offers)
}
