// Package memory provides a process-local RegisterStore for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports"

	"github.com/google/uuid"
)

// Store implements ports.RegisterStore with maps guarded by one mutex.
// Returned values are copies.
type Store struct {
	mu            sync.Mutex
	denominations map[int64]domain.Denomination
	inventory     map[int64]domain.InventoryEntry
	payments      map[uuid.UUID]domain.Payment
	byKey         map[string]uuid.UUID
	used          map[int64]struct{}
	ledger        []domain.LedgerEntry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		denominations: make(map[int64]domain.Denomination),
		inventory:     make(map[int64]domain.InventoryEntry),
		payments:      make(map[uuid.UUID]domain.Payment),
		byKey:         make(map[string]uuid.UUID),
		used:          make(map[int64]struct{}),
	}
}

func (s *Store) LoadDenominations(_ context.Context) ([]domain.Denomination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Denomination, 0, len(s.denominations))
	for _, d := range s.denominations {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out, nil
}

func (s *Store) LoadInventory(_ context.Context) ([]domain.InventoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.InventoryEntry, 0, len(s.inventory))
	for _, e := range s.inventory {
		out = append(out, e)
	}
	domain.SortDescending(out)
	return out, nil
}

func (s *Store) LoadLedger(_ context.Context) ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LedgerEntry, len(s.ledger))
	copy(out, s.ledger)
	return out, nil
}

func (s *Store) CreateDenomination(_ context.Context, d domain.Denomination) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.denominations[d.Value]; ok {
		return ports.ErrDuplicate
	}
	s.denominations[d.Value] = d
	s.inventory[d.Value] = domain.InventoryEntry{Denomination: d.Value, UpdatedAt: d.CreatedAt}
	return nil
}

func (s *Store) DeleteDenomination(_ context.Context, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.denominations[value]; !ok {
		return ports.ErrNotFound
	}
	delete(s.denominations, value)
	delete(s.inventory, value)
	return nil
}

func (s *Store) DenominationInUse(_ context.Context, value int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.used[value]
	return ok, nil
}

// Commit checks every precondition before applying anything.
func (s *Store) Commit(_ context.Context, c ports.Commit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range c.Inventory {
		if _, ok := s.inventory[e.Denomination]; !ok {
			return ports.ErrNotFound
		}
	}
	if p := c.Payment; p != nil {
		if _, ok := s.payments[p.ID]; ok {
			return ports.ErrDuplicate
		}
		if p.IdempotencyKey != nil {
			if _, ok := s.byKey[*p.IdempotencyKey]; ok {
				return ports.ErrDuplicate
			}
		}
	}

	for _, e := range c.Inventory {
		s.inventory[e.Denomination] = e
	}
	if p := c.Payment; p != nil {
		s.payments[p.ID] = clonePayment(*p)
		if p.IdempotencyKey != nil {
			s.byKey[*p.IdempotencyKey] = p.ID
		}
		for _, l := range p.Lines {
			s.used[l.Denomination] = struct{}{}
		}
		for _, l := range p.Change {
			s.used[l.Denomination] = struct{}{}
		}
	}
	s.ledger = append(s.ledger, c.Entries...)
	return nil
}

func (s *Store) GetPayment(_ context.Context, id uuid.UUID) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := clonePayment(p)
	return &out, nil
}

func (s *Store) GetPaymentByIdempotencyKey(_ context.Context, key string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byKey[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := clonePayment(s.payments[id])
	return &out, nil
}

func clonePayment(p domain.Payment) domain.Payment {
	p.Lines = append([]domain.CashLine{}, p.Lines...)
	p.Change = append([]domain.CashLine{}, p.Change...)
	if p.IdempotencyKey != nil {
		key := *p.IdempotencyKey
		p.IdempotencyKey = &key
	}
	return p
}

var _ ports.RegisterStore = (*Store)(nil)
