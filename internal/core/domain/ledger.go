package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryKind is the direction of a cash movement.
type EntryKind string

const (
	EntryKindInflow  EntryKind = "INFLOW"
	EntryKindOutflow EntryKind = "OUTFLOW"
)

// LedgerEntry is an append-only record of cash entering or leaving the register.
type LedgerEntry struct {
	ID        uuid.UUID  `json:"id"`
	Kind      EntryKind  `json:"transaction_type"`
	Amount    int64      `json:"amount"`
	PaymentID *uuid.UUID `json:"payment_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Signed returns the amount with outflows negated.
func (e LedgerEntry) Signed() int64 {
	if e.Kind == EntryKindOutflow {
		return -e.Amount
	}
	return e.Amount
}

// RunningBalance is Σ inflow − Σ outflow over entries.
func RunningBalance(entries []LedgerEntry) int64 {
	var balance int64
	for _, e := range entries {
		balance += e.Signed()
	}
	return balance
}

// NewInflow creates an inflow entry.
func NewInflow(amount int64, paymentID *uuid.UUID, at time.Time) LedgerEntry {
	return LedgerEntry{ID: uuid.New(), Kind: EntryKindInflow, Amount: amount, PaymentID: paymentID, CreatedAt: at}
}

// NewOutflow creates an outflow entry.
func NewOutflow(amount int64, paymentID *uuid.UUID, at time.Time) LedgerEntry {
	return LedgerEntry{ID: uuid.New(), Kind: EntryKindOutflow, Amount: amount, PaymentID: paymentID, CreatedAt: at}
}
