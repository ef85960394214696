package domain

import (
	"math"
	"sort"
	"time"
)

// Denomination is a legal face value the register can hold, in the smallest currency unit.
type Denomination struct {
	Value     int64     `json:"currency_type"`
	CreatedAt time.Time `json:"created_at"`
}

// InventoryEntry is the on-hand quantity of a single denomination.
type InventoryEntry struct {
	Denomination int64     `json:"currency_type"`
	Quantity     int64     `json:"quantity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Value returns the cash value held by the entry.
func (e InventoryEntry) Value() int64 {
	return e.Denomination * e.Quantity
}

// Delta maps a denomination to a signed quantity change.
type Delta map[int64]int64

// Add accumulates n units of denomination d, netting opposite signs.
func (d Delta) Add(denomination, n int64) {
	d[denomination] += n
}

// Denominations returns the touched denominations in ascending order.
func (d Delta) Denominations() []int64 {
	out := make([]int64, 0, len(d))
	for v := range d {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TotalValue sums value × quantity over entries.
func TotalValue(entries []InventoryEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Value()
	}
	return total
}

// CheckedTotal is TotalValue that reports false instead of wrapping past
// math.MaxInt64.
func CheckedTotal(entries []InventoryEntry) (int64, bool) {
	var total int64
	for _, e := range entries {
		if e.Quantity < 0 || e.Denomination <= 0 {
			return 0, false
		}
		if e.Quantity > math.MaxInt64/e.Denomination {
			return 0, false
		}
		v := e.Value()
		if total > math.MaxInt64-v {
			return 0, false
		}
		total += v
	}
	return total, true
}

// SortDescending orders entries by face value, highest first.
func SortDescending(entries []InventoryEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Denomination > entries[j].Denomination
	})
}
