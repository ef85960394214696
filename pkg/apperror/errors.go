package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string         `json:"error_code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError by code, so errors.Is(err, apperror.ErrInsufficientPayment())
// works across distinct instances.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithDetail returns the error with an extra client-visible detail.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// CodeOf returns the AppError code carried by err, or "" when err is not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// ---- Payment (PAY) ----

func ErrInsufficientPayment(tendered, purchase int64) *AppError {
	return New("PAY_001", "Tendered amount is lower than the purchase amount", http.StatusPaymentRequired).
		WithDetail("tendered_amount", tendered).
		WithDetail("purchase_amount", purchase)
}

func ErrInvalidAmount() *AppError {
	return New("PAY_002", "Invalid amount", http.StatusBadRequest)
}

// ErrChangeUnavailable reports the part of the change that current stock cannot cover.
func ErrChangeUnavailable(remainder int64) *AppError {
	return New("PAY_003", "Change cannot be given with the cash available", http.StatusConflict).
		WithDetail("remainder", remainder)
}

func ErrNotFound(entity string) *AppError {
	return New("PAY_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrDuplicatePayment() *AppError {
	return New("PAY_005", "Payment with this idempotency key is already being processed", http.StatusConflict)
}

// ---- Inventory (INV) ----

func ErrInsufficientStock(denomination int64) *AppError {
	return New("INV_001", "Insufficient stock for denomination", http.StatusConflict).
		WithDetail("currency_type", denomination)
}

func ErrInventoryOverflow(denomination int64) *AppError {
	return New("PAY_002", "Quantity would overflow the register total", http.StatusBadRequest).
		WithDetail("currency_type", denomination)
}

func ErrUnknownDenomination(denomination int64) *AppError {
	return New("INV_002", "Unknown denomination", http.StatusUnprocessableEntity).
		WithDetail("currency_type", denomination)
}

// ---- Catalog (CAT) ----

func ErrDuplicateDenomination(denomination int64) *AppError {
	return New("CAT_001", "Denomination already registered", http.StatusConflict).
		WithDetail("currency_type", denomination)
}

func ErrReferentialConflict(denomination int64) *AppError {
	return New("CAT_002", "Denomination has stock or payment history", http.StatusConflict).
		WithDetail("currency_type", denomination)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a PAY_002-style validation error.
func Validation(message string) *AppError {
	return New("PAY_002", message, http.StatusBadRequest)
}
