package handler

import (
	"time"

	"cash-register/internal/adapter/http/dto"
	"cash-register/internal/core/ports"
	"cash-register/pkg/apperror"
	"cash-register/pkg/response"

	"github.com/gin-gonic/gin"
)

// RegisterHandler exposes the register-wide views and the empty operation.
type RegisterHandler struct {
	registerSvc ports.RegisterService
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(registerSvc ports.RegisterService) *RegisterHandler {
	return &RegisterHandler{registerSvc: registerSvc}
}

// State handles GET /api/v1/register/state.
func (h *RegisterHandler) State(c *gin.Context) {
	response.OK(c, h.registerSvc.CurrentState(c.Request.Context()))
}

// Empty handles POST /api/v1/register/empty.
func (h *RegisterHandler) Empty(c *gin.Context) {
	total, err := h.registerSvc.EmptyRegister(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.EmptyRegisterResponse{TotalRemoved: total})
}

// History handles GET /api/v1/register/history?as_of=RFC3339.
// Without as_of the current time is used.
func (h *RegisterHandler) History(c *gin.Context) {
	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			response.Error(c, apperror.Validation("as_of must be an RFC 3339 timestamp"))
			return
		}
		asOf = t
	}
	response.OK(c, h.registerSvc.HistoryAsOf(c.Request.Context(), asOf))
}
