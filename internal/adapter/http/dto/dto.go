package dto

// TokenRequest is the request body for operator login.
type TokenRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

// TokenResponse is the response body for a successful login.
type TokenResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CashLine is one (denomination, quantity) pair of a tender.
type CashLine struct {
	CurrencyType int64 `json:"currency_type" binding:"required,gt=0"`
	Quantity     int64 `json:"quantity" binding:"required,gt=0"`
}

// PaymentRequest is the request body for a cash payment.
type PaymentRequest struct {
	Amount      int64      `json:"amount" binding:"required,gt=0"`
	PaymentForm []CashLine `json:"payment_form" binding:"required,min=1,max=64,dive"`
}

// DenominationRequest registers a face value.
type DenominationRequest struct {
	CurrencyType int64 `json:"currency_type" binding:"required,gt=0"`
}

// SetInventoryRequest sets the absolute quantity of a denomination.
type SetInventoryRequest struct {
	Quantity *int64 `json:"quantity" binding:"required,gte=0"`
}

// AdjustInventoryRequest adds a signed delta to a denomination.
type AdjustInventoryRequest struct {
	Delta *int64 `json:"delta" binding:"required"`
}

// EmptyRegisterResponse reports the cash removed by an empty.
type EmptyRegisterResponse struct {
	TotalRemoved int64 `json:"total_removed"`
}
