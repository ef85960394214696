package handler

import (
	"cash-register/internal/adapter/http/dto"
	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports"
	"cash-register/pkg/apperror"
	"cash-register/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderIdempotencyKey makes a payment submission safe to retry.
const HeaderIdempotencyKey = "Idempotency-Key"

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	registerSvc ports.RegisterService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(registerSvc ports.RegisterService) *PaymentHandler {
	return &PaymentHandler{registerSvc: registerSvc}
}

// CreatePayment handles POST /api/v1/payments.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	key := c.GetHeader(HeaderIdempotencyKey)
	if key != "" && !dto.ValidClientKey(key) {
		response.Error(c, apperror.Validation("invalid Idempotency-Key header"))
		return
	}

	lines := make([]domain.CashLine, 0, len(req.PaymentForm))
	for _, l := range req.PaymentForm {
		lines = append(lines, domain.CashLine{Denomination: l.CurrencyType, Quantity: l.Quantity})
	}

	payment, err := h.registerSvc.CreatePayment(c.Request.Context(), ports.PaymentRequest{
		Amount:         req.Amount,
		Lines:          lines,
		IdempotencyKey: key,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, payment)
}

// GetPayment handles GET /api/v1/payments/:id.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid payment id"))
		return
	}

	payment, err := h.registerSvc.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, payment)
}
