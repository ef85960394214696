package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTender         = errors.New("payment form must contain at least one line")
	ErrInvalidDenomination = errors.New("denomination must be positive")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrAmountOverflow      = errors.New("tendered amount overflows")
)

// PaymentState tracks a payment through the transaction engine.
type PaymentState string

const (
	PaymentStateReceived       PaymentState = "RECEIVED"
	PaymentStateValidated      PaymentState = "VALIDATED"
	PaymentStateChangeComputed PaymentState = "CHANGE_COMPUTED"
	PaymentStateCommitted      PaymentState = "COMMITTED"
	PaymentStateAborted        PaymentState = "ABORTED"
)

// CashLine is a bundle of identical bills or coins.
type CashLine struct {
	Denomination int64 `json:"currency_type"`
	Quantity     int64 `json:"quantity"`
}

// Value returns denomination × quantity.
func (l CashLine) Value() int64 {
	return l.Denomination * l.Quantity
}

// SumLines returns the total value of lines.
func SumLines(lines []CashLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Value()
	}
	return total
}

// Tender is a validated customer cash bundle: positive values and quantities,
// one line per denomination, sorted by value descending.
type Tender struct {
	lines []CashLine
	total int64
}

// NewTender validates raw lines and merges repeated denominations.
func NewTender(lines []CashLine) (Tender, error) {
	if len(lines) == 0 {
		return Tender{}, ErrEmptyTender
	}

	merged := make(map[int64]int64, len(lines))
	for _, l := range lines {
		if l.Denomination <= 0 {
			return Tender{}, fmt.Errorf("%w: %d", ErrInvalidDenomination, l.Denomination)
		}
		if l.Quantity <= 0 {
			return Tender{}, fmt.Errorf("%w: %d of %d", ErrInvalidQuantity, l.Quantity, l.Denomination)
		}
		merged[l.Denomination] += l.Quantity
	}

	t := Tender{lines: make([]CashLine, 0, len(merged))}
	for d, q := range merged {
		if q > math.MaxInt64/d {
			return Tender{}, ErrAmountOverflow
		}
		v := d * q
		if t.total > math.MaxInt64-v {
			return Tender{}, ErrAmountOverflow
		}
		t.total += v
		t.lines = append(t.lines, CashLine{Denomination: d, Quantity: q})
	}
	sort.Slice(t.lines, func(i, j int) bool {
		return t.lines[i].Denomination > t.lines[j].Denomination
	})
	return t, nil
}

// Lines returns a copy of the tendered lines.
func (t Tender) Lines() []CashLine {
	out := make([]CashLine, len(t.lines))
	copy(out, t.lines)
	return out
}

// Total returns the tendered amount.
func (t Tender) Total() int64 {
	return t.total
}

// Denominations returns the tendered face values.
func (t Tender) Denominations() []int64 {
	out := make([]int64, len(t.lines))
	for i, l := range t.lines {
		out[i] = l.Denomination
	}
	return out
}

// Payment is one completed customer transaction. Immutable once committed.
type Payment struct {
	ID             uuid.UUID  `json:"id"`
	TenderedAmount int64      `json:"total_payment"`
	PurchaseAmount int64      `json:"amount"`
	ChangeAmount   int64      `json:"total_change"`
	Lines          []CashLine `json:"payment_form"`
	Change         []CashLine `json:"change"`
	IdempotencyKey *string    `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
}
