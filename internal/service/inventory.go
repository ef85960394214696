package service

import (
	"math"
	"sync"
	"time"

	"cash-register/internal/core/domain"
	"cash-register/pkg/apperror"
)

// CashInventory holds the on-hand quantity of every denomination. Mutations are
// all-or-nothing.
type CashInventory struct {
	mu      sync.RWMutex
	entries map[int64]domain.InventoryEntry
}

// NewCashInventory creates an empty inventory.
func NewCashInventory() *CashInventory {
	return &CashInventory{entries: make(map[int64]domain.InventoryEntry)}
}

// Get returns the quantity of value, 0 if absent.
func (i *CashInventory) Get(value int64) int64 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.entries[value].Quantity
}

// Snapshot returns every entry sorted by value descending.
func (i *CashInventory) Snapshot() []domain.InventoryEntry {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]domain.InventoryEntry, 0, len(i.entries))
	for _, e := range i.entries {
		out = append(out, e)
	}
	domain.SortDescending(out)
	return out
}

// SnapshotOf returns the entries of values only, sorted by value descending.
func (i *CashInventory) SnapshotOf(values []int64) []domain.InventoryEntry {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]domain.InventoryEntry, 0, len(values))
	for _, v := range values {
		if e, ok := i.entries[v]; ok {
			out = append(out, e)
		}
	}
	domain.SortDescending(out)
	return out
}

// Total returns Σ value × quantity.
func (i *CashInventory) Total() int64 {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var total int64
	for _, e := range i.entries {
		total += e.Value()
	}
	return total
}

// Preview returns the entries delta would produce without applying it.
func (i *CashInventory) Preview(delta domain.Delta, at time.Time) ([]domain.InventoryEntry, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.previewLocked(delta, at)
}

// ApplyDelta adds every signed quantity in delta. If any denomination is
// unknown or would go negative, nothing changes.
func (i *CashInventory) ApplyDelta(delta domain.Delta, at time.Time) ([]domain.InventoryEntry, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	next, err := i.previewLocked(delta, at)
	if err != nil {
		return nil, err
	}
	for _, e := range next {
		i.entries[e.Denomination] = e
	}
	return next, nil
}

func (i *CashInventory) previewLocked(delta domain.Delta, at time.Time) ([]domain.InventoryEntry, error) {
	next := make([]domain.InventoryEntry, 0, len(delta))
	changed := make(map[int64]struct{}, len(delta))
	var grown int64
	for _, v := range delta.Denominations() {
		cur, ok := i.entries[v]
		if !ok {
			return nil, apperror.ErrUnknownDenomination(v)
		}
		d := delta[v]
		if d > 0 && cur.Quantity > math.MaxInt64-d {
			return nil, apperror.ErrInventoryOverflow(v)
		}
		qty := cur.Quantity + d
		if qty < 0 {
			return nil, apperror.ErrInsufficientStock(v)
		}
		if d > 0 && grown == 0 {
			grown = v
		}
		changed[v] = struct{}{}
		next = append(next, domain.InventoryEntry{Denomination: v, Quantity: qty, UpdatedAt: at})
	}
	if grown == 0 {
		return next, nil
	}

	// the register total must stay representable
	after := make([]domain.InventoryEntry, 0, len(i.entries))
	after = append(after, next...)
	for v, e := range i.entries {
		if _, ok := changed[v]; !ok {
			after = append(after, e)
		}
	}
	if _, ok := domain.CheckedTotal(after); !ok {
		return nil, apperror.ErrInventoryOverflow(grown)
	}
	return next, nil
}

// Put sets an entry outright. Used when loading and registering denominations.
func (i *CashInventory) Put(e domain.InventoryEntry) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries[e.Denomination] = e
}

// Remove drops the entry of value.
func (i *CashInventory) Remove(value int64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.entries, value)
}
