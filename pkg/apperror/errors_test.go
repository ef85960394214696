package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("PAY_002", "Invalid amount", http.StatusBadRequest),
			expected: "[PAY_002] Invalid amount",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, New("PAY_001", "test", http.StatusBadRequest).Unwrap())
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("commit: %w", ErrChangeUnavailable(300))

	assert.True(t, errors.Is(err, ErrChangeUnavailable(0)))
	assert.False(t, errors.Is(err, ErrInsufficientPayment(0, 0)))
	assert.Equal(t, "PAY_003", CodeOf(err))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestAppError_Details(t *testing.T) {
	err := ErrChangeUnavailable(700)
	assert.Equal(t, int64(700), err.Details["remainder"])

	err = ErrInsufficientPayment(1000, 2000)
	assert.Equal(t, int64(1000), err.Details["tendered_amount"])
	assert.Equal(t, int64(2000), err.Details["purchase_amount"])

	assert.Nil(t, ErrInvalidAmount().Details)
}

func TestErrorCatalog(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InsufficientPayment", ErrInsufficientPayment(1, 2), "PAY_001", 402},
		{"InvalidAmount", ErrInvalidAmount(), "PAY_002", 400},
		{"ChangeUnavailable", ErrChangeUnavailable(1), "PAY_003", 409},
		{"NotFound", ErrNotFound("Payment"), "PAY_004", 404},
		{"DuplicatePayment", ErrDuplicatePayment(), "PAY_005", 409},
		{"InsufficientStock", ErrInsufficientStock(500), "INV_001", 409},
		{"InventoryOverflow", ErrInventoryOverflow(500), "PAY_002", 400},
		{"UnknownDenomination", ErrUnknownDenomination(7), "INV_002", 422},
		{"DuplicateDenomination", ErrDuplicateDenomination(500), "CAT_001", 409},
		{"ReferentialConflict", ErrReferentialConflict(500), "CAT_002", 409},
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_001", 401},
		{"InvalidToken", ErrInvalidToken(), "AUTH_003", 401},
		{"RateLimitExceeded", ErrRateLimitExceeded(), "RATE_001", 429},
		{"DatabaseError", ErrDatabaseError(errors.New("x")), "SYS_001", 500},
		{"LockTimeout", ErrLockTimeout(errors.New("x")), "SYS_002", 503},
		{"Internal", InternalError(errors.New("x")), "SYS_001", 500},
		{"Validation", Validation("bad"), "PAY_002", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "Payment not found", ErrNotFound("Payment").Message)
}
