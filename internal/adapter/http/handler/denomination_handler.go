package handler

import (
	"net/http"
	"strconv"

	"cash-register/internal/adapter/http/dto"
	"cash-register/internal/adapter/http/middleware"
	"cash-register/internal/core/ports"
	"cash-register/pkg/apperror"
	"cash-register/pkg/response"

	"github.com/gin-gonic/gin"
)

// DenominationHandler manages the denomination catalog.
type DenominationHandler struct {
	registerSvc ports.RegisterService
}

// NewDenominationHandler creates a new DenominationHandler.
func NewDenominationHandler(registerSvc ports.RegisterService) *DenominationHandler {
	return &DenominationHandler{registerSvc: registerSvc}
}

// List handles GET /api/v1/denominations.
func (h *DenominationHandler) List(c *gin.Context) {
	response.OK(c, h.registerSvc.ListDenominations(c.Request.Context()))
}

// Register handles POST /api/v1/denominations.
func (h *DenominationHandler) Register(c *gin.Context) {
	var req dto.DenominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	d, err := h.registerSvc.RegisterDenomination(c.Request.Context(), req.CurrencyType)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, strconv.FormatInt(d.Value, 10))
	response.Created(c, d)
}

// Remove handles DELETE /api/v1/denominations/:value.
func (h *DenominationHandler) Remove(c *gin.Context) {
	value, err := denominationParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.registerSvc.RemoveDenomination(c.Request.Context(), value); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
