package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a register event published after a commit.
type EventType string

const (
	EventPaymentCommitted EventType = "payment.committed"
	EventRegisterEmptied  EventType = "register.emptied"
)

// RegisterEvent is the payload published to the event stream.
type RegisterEvent struct {
	ID             uuid.UUID  `json:"id"`
	Type           EventType  `json:"type"`
	PaymentID      *uuid.UUID `json:"payment_id,omitempty"`
	TenderedAmount int64      `json:"total_payment,omitempty"`
	PurchaseAmount int64      `json:"amount,omitempty"`
	ChangeAmount   int64      `json:"total_change,omitempty"`
	Change         []CashLine `json:"change,omitempty"`
	TotalRemoved   int64      `json:"total_removed,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

// Key returns the partition key for the event.
func (e RegisterEvent) Key() string {
	if e.PaymentID != nil {
		return e.PaymentID.String()
	}
	return string(e.Type)
}

// NewPaymentCommittedEvent builds the event for a committed payment.
func NewPaymentCommittedEvent(p *Payment) RegisterEvent {
	id := p.ID
	return RegisterEvent{
		ID:             uuid.New(),
		Type:           EventPaymentCommitted,
		PaymentID:      &id,
		TenderedAmount: p.TenderedAmount,
		PurchaseAmount: p.PurchaseAmount,
		ChangeAmount:   p.ChangeAmount,
		Change:         p.Change,
		OccurredAt:     p.CreatedAt,
	}
}

// NewRegisterEmptiedEvent builds the event for a register zero-out.
func NewRegisterEmptiedEvent(totalRemoved int64, at time.Time) RegisterEvent {
	return RegisterEvent{
		ID:           uuid.New(),
		Type:         EventRegisterEmptied,
		TotalRemoved: totalRemoved,
		OccurredAt:   at,
	}
}
