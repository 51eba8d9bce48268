package handlers

import (
	"net/http"

	"waselni_backend/internal/middleware"
	"waselni_backend/internal/models"
	"waselni_backend/internal/services"
	"waselni_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	*BaseHandler
	contractService services.ContractService
}

func NewContractHandler(base *BaseHandler, contractService services.ContractService) *ContractHandler {
	return &ContractHandler{
		BaseHandler:     base,
		contractService: contractService,
	}
}

func (h *ContractHandler) RegisterRoutes(r *gin.RouterGroup) {
	contracts := r.Group("/contracts")
	contracts.Use(middleware.AuthMiddleware())
	{
		contracts.POST("", h.CreateContract)
		contracts.GET("/my", h.ListMyContracts)
		contracts.GET("/:id", h.GetContract)
		contracts.POST("/:id/accept", h.action(models.ContractActionAccept))
		contracts.POST("/:id/pickup", h.action(models.ContractActionPickup))
		contracts.POST("/:id/deliver", h.action(models.ContractActionDeliver))
		contracts.POST("/:id/cancel", h.action(models.ContractActionCancel))
	}
}

func (h *ContractHandler) CreateContract(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContractRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	contract, err := h.contractService.CreateContract(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contract)
}

func (h *ContractHandler) GetContract(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	contract, err := h.contractService.GetContract(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) ListMyContracts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	contracts, err := h.contractService.ListMyContracts(h.GetDB(c), userID, c.Query("status"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts)
}

// action строит хендлер перехода контракта для фиксированного действия
func (h *ContractHandler) action(action models.ContractAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := h.GetAndAuthorizeUserID(c)
		if !ok {
			return
		}

		contract, err := h.contractService.Transition(h.GetDB(c), userID, c.Param("id"), action)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, contract)
	}
}
