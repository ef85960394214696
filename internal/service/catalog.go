package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"cash-register/internal/core/domain"

	"golang.org/x/sync/semaphore"
)

// ErrLockTimeout is returned when a denomination lock could not be acquired
// before the context expired.
var ErrLockTimeout = errors.New("denomination lock wait timed out")

type catalogEntry struct {
	denom domain.Denomination
	sem   *semaphore.Weighted
}

// DenominationCatalog is the closed set of legal face values. Each value owns an
// exclusive lock. mu guards the map only and is never held while waiting.
// Catalog changes are serialized by admin.
type DenominationCatalog struct {
	mu      sync.RWMutex
	admin   *semaphore.Weighted
	entries map[int64]*catalogEntry
}

// NewDenominationCatalog creates an empty catalog.
func NewDenominationCatalog() *DenominationCatalog {
	return &DenominationCatalog{
		admin:   semaphore.NewWeighted(1),
		entries: make(map[int64]*catalogEntry),
	}
}

// Contains reports whether value is a registered denomination.
func (c *DenominationCatalog) Contains(value int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[value]
	return ok
}

// List returns the registered denominations, highest value first.
func (c *DenominationCatalog) List() []domain.Denomination {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Denomination, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.denom)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// Lock acquires the locks of every registered value accepted by include, in
// ascending value order. The returned set must be released by the caller.
// On failure nothing is held. Values removed from the catalog while waiting
// are left out of the returned set.
func (c *DenominationCatalog) Lock(ctx context.Context, include func(value int64) bool) (*LockSet, error) {
	c.mu.RLock()
	wanted := make([]lockTarget, 0, len(c.entries))
	for v, e := range c.entries {
		if include(v) {
			wanted = append(wanted, lockTarget{value: v, sem: e.sem})
		}
	}
	c.mu.RUnlock()
	sort.Slice(wanted, func(i, j int) bool { return wanted[i].value < wanted[j].value })

	acquired := make([]lockTarget, 0, len(wanted))
	for _, t := range wanted {
		if err := t.sem.Acquire(ctx, 1); err != nil {
			for i := len(acquired) - 1; i >= 0; i-- {
				acquired[i].sem.Release(1)
			}
			return nil, fmt.Errorf("%w: denomination %d: %v", ErrLockTimeout, t.value, err)
		}
		acquired = append(acquired, t)
	}

	set := &LockSet{
		held:   make(map[int64]struct{}, len(acquired)),
		values: make([]int64, 0, len(acquired)),
		sems:   make([]*semaphore.Weighted, 0, len(acquired)),
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range acquired {
		if e, ok := c.entries[t.value]; !ok || e.sem != t.sem {
			t.sem.Release(1)
			continue
		}
		set.values = append(set.values, t.value)
		set.sems = append(set.sems, t.sem)
		set.held[t.value] = struct{}{}
	}
	return set, nil
}

// Admin runs fn as the only catalog change in progress. Waiting for the turn
// is bounded by ctx; fn itself is not.
func (c *DenominationCatalog) Admin(ctx context.Context, fn func() error) error {
	if err := c.admin.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: catalog: %v", ErrLockTimeout, err)
	}
	defer c.admin.Release(1)
	return fn()
}

func (c *DenominationCatalog) insert(d domain.Denomination) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[d.Value] = &catalogEntry{denom: d, sem: semaphore.NewWeighted(1)}
}

func (c *DenominationCatalog) delete(value int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, value)
}

type lockTarget struct {
	value int64
	sem   *semaphore.Weighted
}

// LockSet is a group of held denomination locks.
type LockSet struct {
	once   sync.Once
	held   map[int64]struct{}
	values []int64
	sems   []*semaphore.Weighted
}

// Holds reports whether the set holds value's lock.
func (l *LockSet) Holds(value int64) bool {
	_, ok := l.held[value]
	return ok
}

// Values returns the locked values in ascending order.
func (l *LockSet) Values() []int64 {
	return l.values
}

// Release frees every held lock in reverse acquisition order. Safe to call twice.
func (l *LockSet) Release() {
	l.once.Do(func() {
		for i := len(l.sems) - 1; i >= 0; i-- {
			l.sems[i].Release(1)
		}
	})
}
