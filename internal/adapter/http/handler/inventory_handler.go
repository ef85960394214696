package handler

import (
	"cash-register/internal/adapter/http/dto"
	"cash-register/internal/core/ports"
	"cash-register/pkg/apperror"
	"cash-register/pkg/response"

	"github.com/gin-gonic/gin"
)

// InventoryHandler restocks individual denominations.
type InventoryHandler struct {
	registerSvc ports.RegisterService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(registerSvc ports.RegisterService) *InventoryHandler {
	return &InventoryHandler{registerSvc: registerSvc}
}

// Set handles PUT /api/v1/inventory/:value.
func (h *InventoryHandler) Set(c *gin.Context) {
	value, err := denominationParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SetInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	entry, err := h.registerSvc.SetInventory(c.Request.Context(), value, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, entry)
}

// Adjust handles PATCH /api/v1/inventory/:value.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	value, err := denominationParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	entry, err := h.registerSvc.AdjustInventory(c.Request.Context(), value, *req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, entry)
}
