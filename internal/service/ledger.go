package service

import (
	"sort"
	"sync"
	"time"

	"cash-register/internal/core/domain"
)

// TransactionLedger is the in-memory, append-only view of ledger entries,
// kept ordered by creation time.
type TransactionLedger struct {
	mu      sync.RWMutex
	entries []domain.LedgerEntry
}

// NewTransactionLedger creates an empty ledger.
func NewTransactionLedger() *TransactionLedger {
	return &TransactionLedger{}
}

// Append inserts entries keeping creation order. Entries with equal
// timestamps keep their append order.
func (l *TransactionLedger) Append(entries ...domain.LedgerEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range entries {
		idx := sort.Search(len(l.entries), func(i int) bool {
			return l.entries[i].CreatedAt.After(e.CreatedAt)
		})
		l.entries = append(l.entries, domain.LedgerEntry{})
		copy(l.entries[idx+1:], l.entries[idx:])
		l.entries[idx] = e
	}
}

// AsOf returns the running balance and the entries created at or before t.
func (l *TransactionLedger) AsOf(t time.Time) (int64, []domain.LedgerEntry) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].CreatedAt.After(t)
	})
	out := make([]domain.LedgerEntry, n)
	copy(out, l.entries[:n])
	return domain.RunningBalance(out), out
}

// Len returns the number of entries.
func (l *TransactionLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
