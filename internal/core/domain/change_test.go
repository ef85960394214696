package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scenarioInventory() []InventoryEntry {
	return []InventoryEntry{
		{Denomination: 100000, Quantity: 0},
		{Denomination: 20000, Quantity: 5},
		{Denomination: 10000, Quantity: 10},
		{Denomination: 500, Quantity: 15},
		{Denomination: 200, Quantity: 20},
	}
}

func TestComputeChange(t *testing.T) {
	tests := []struct {
		name          string
		amount        int64
		snapshot      []InventoryEntry
		wantBreakdown []CashLine
		wantRemainder int64
		wantOK        bool
	}{
		{
			name:          "exhausts largest denomination first",
			amount:        150500,
			snapshot:      scenarioInventory(),
			wantBreakdown: []CashLine{{20000, 5}, {10000, 5}, {500, 1}},
			wantOK:        true,
		},
		{
			name:     "zero amount",
			amount:   0,
			snapshot: scenarioInventory(),
			wantOK:   true,
		},
		{
			name:          "exceeds stock",
			amount:        300000,
			snapshot:      scenarioInventory(),
			wantBreakdown: []CashLine{{20000, 5}, {10000, 10}, {500, 15}, {200, 20}},
			wantRemainder: 300000 - 211500,
		},
		{
			name:          "amount not reachable with available coins",
			amount:        300,
			snapshot:      scenarioInventory(),
			wantBreakdown: []CashLine{{200, 1}},
			wantRemainder: 100,
		},
		{
			name:          "empty snapshot",
			amount:        500,
			wantRemainder: 500,
		},
		{
			name:          "skips empty denominations",
			amount:        20000,
			snapshot:      []InventoryEntry{{Denomination: 20000}, {Denomination: 10000, Quantity: 2}},
			wantBreakdown: []CashLine{{10000, 2}},
			wantOK:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, remainder, ok := ComputeChange(tt.amount, tt.snapshot)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRemainder, remainder)
			assert.Equal(t, tt.wantBreakdown, breakdown)
		})
	}
}

func TestComputeChange_BreakdownSumsToAmount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := []int64{100000, 50000, 20000, 10000, 5000, 2000, 1000, 500, 200, 100}

	for i := 0; i < 500; i++ {
		snapshot := make([]InventoryEntry, 0, len(values))
		for _, v := range values {
			snapshot = append(snapshot, InventoryEntry{Denomination: v, Quantity: rng.Int63n(6)})
		}
		amount := rng.Int63n(300000)

		breakdown, remainder, ok := ComputeChange(amount, snapshot)

		avail := make(map[int64]int64, len(snapshot))
		for _, e := range snapshot {
			avail[e.Denomination] = e.Quantity
		}
		for _, l := range breakdown {
			assert.Positive(t, l.Quantity)
			assert.LessOrEqual(t, l.Quantity, avail[l.Denomination])
		}
		assert.Equal(t, amount, SumLines(breakdown)+remainder)
		if ok {
			assert.Equal(t, amount, SumLines(breakdown))
		} else {
			assert.Positive(t, remainder)
		}
	}
}
