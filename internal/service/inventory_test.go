package service

import (
	"math"
	"testing"
	"time"

	"cash-register/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInventory() *CashInventory {
	inv := NewCashInventory()
	for _, e := range scenarioInventory() {
		inv.Put(e)
	}
	return inv
}

func TestCashInventory_SnapshotDescending(t *testing.T) {
	inv := newTestInventory()

	snap := inv.Snapshot()
	require.Len(t, snap, 5)
	for i := 1; i < len(snap); i++ {
		assert.Greater(t, snap[i-1].Denomination, snap[i].Denomination)
	}
	assert.Equal(t, int64(211500), inv.Total())

	sub := inv.SnapshotOf([]int64{200, 20000, 7})
	require.Len(t, sub, 2)
	assert.Equal(t, int64(20000), sub[0].Denomination)
}

func TestCashInventory_ApplyDelta(t *testing.T) {
	inv := newTestInventory()
	at := time.Now()

	next, err := inv.ApplyDelta(domain.Delta{20000: 5, 10000: -5, 500: 0}, at)
	require.NoError(t, err)
	require.Len(t, next, 3)
	assert.Equal(t, int64(10), inv.Get(20000))
	assert.Equal(t, int64(5), inv.Get(10000))
	assert.Equal(t, at, next[0].UpdatedAt)
}

func TestCashInventory_ApplyDelta_AllOrNothing(t *testing.T) {
	tests := []struct {
		name     string
		delta    domain.Delta
		wantCode string
	}{
		{"negative result", domain.Delta{20000: 1, 200: -21}, "INV_001"},
		{"unknown denomination", domain.Delta{20000: 1, 7: 1}, "INV_002"},
		{"quantity overflows", domain.Delta{200: math.MaxInt64}, "PAY_002"},
		{"total overflows", domain.Delta{100000: 100_000_000_000_000}, "PAY_002"},
		{"total overflows across denominations", domain.Delta{100000: 92_233_720_368_547, 10000: 1}, "PAY_002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newTestInventory()
			before := inv.Snapshot()

			_, err := inv.ApplyDelta(tt.delta, time.Now())
			assertAppError(t, err, tt.wantCode)
			assert.Equal(t, before, inv.Snapshot())
		})
	}
}

func TestCashInventory_PreviewDoesNotApply(t *testing.T) {
	inv := newTestInventory()

	next, err := inv.Preview(domain.Delta{500: -15}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), next[0].Quantity)
	assert.Equal(t, int64(15), inv.Get(500))
}

func TestCashInventory_ApplyDelta_UpToLimit(t *testing.T) {
	inv := NewCashInventory()
	inv.Put(domain.InventoryEntry{Denomination: 100000})
	inv.Put(domain.InventoryEntry{Denomination: 1})

	_, err := inv.ApplyDelta(domain.Delta{100000: math.MaxInt64 / 100000}, time.Now())
	require.NoError(t, err)
	_, err = inv.ApplyDelta(domain.Delta{1: math.MaxInt64 % 100000}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), inv.Total())

	_, err = inv.ApplyDelta(domain.Delta{1: 1}, time.Now())
	assertAppError(t, err, "PAY_002")

	// shrinking is always allowed
	_, err = inv.ApplyDelta(domain.Delta{100000: -1}, time.Now())
	require.NoError(t, err)
}

func TestCashInventory_Remove(t *testing.T) {
	inv := newTestInventory()

	inv.Remove(200)
	assert.Len(t, inv.Snapshot(), 4)
	assert.Equal(t, int64(0), inv.Get(200))
}
