package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports"
	"cash-register/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultLockTimeout    = 5 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
	claimTTL              = 30 * time.Second
)

// RegisterOptions tunes the transaction engine.
type RegisterOptions struct {
	LockTimeout    time.Duration
	IdempotencyTTL time.Duration
	Clock          func() time.Time
}

// RegisterServiceImpl implements ports.RegisterService.
//
// Writers lock the denominations they touch, write to the store, then publish
// the change to the in-memory inventory and ledger under viewMu. Readers only
// take viewMu for reading.
type RegisterServiceImpl struct {
	store      ports.RegisterStore
	idempCache ports.IdempotencyCache
	publisher  ports.EventPublisher

	catalog   *DenominationCatalog
	inventory *CashInventory
	ledger    *TransactionLedger
	viewMu    sync.RWMutex

	lockTimeout    time.Duration
	idempotencyTTL time.Duration
	now            func() time.Time
	log            zerolog.Logger
}

// NewRegisterService creates a new RegisterServiceImpl. idempCache and
// publisher may be nil.
func NewRegisterService(
	store ports.RegisterStore,
	idempCache ports.IdempotencyCache,
	publisher ports.EventPublisher,
	opts RegisterOptions,
	log zerolog.Logger,
) *RegisterServiceImpl {
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = defaultLockTimeout
	}
	if opts.IdempotencyTTL <= 0 {
		opts.IdempotencyTTL = defaultIdempotencyTTL
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &RegisterServiceImpl{
		store:          store,
		idempCache:     idempCache,
		publisher:      publisher,
		catalog:        NewDenominationCatalog(),
		inventory:      NewCashInventory(),
		ledger:         NewTransactionLedger(),
		lockTimeout:    opts.LockTimeout,
		idempotencyTTL: opts.IdempotencyTTL,
		now:            opts.Clock,
		log:            log,
	}
}

// Load rebuilds the in-memory register from the store. Call once before serving.
func (s *RegisterServiceImpl) Load(ctx context.Context) error {
	denoms, err := s.store.LoadDenominations(ctx)
	if err != nil {
		return fmt.Errorf("load denominations: %w", err)
	}
	inventory, err := s.store.LoadInventory(ctx)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	entries, err := s.store.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	return s.catalogAdmin(ctx, func() error {
		s.viewMu.Lock()
		defer s.viewMu.Unlock()

		for _, d := range denoms {
			s.catalog.insert(d)
			s.inventory.Put(domain.InventoryEntry{Denomination: d.Value, UpdatedAt: d.CreatedAt})
		}
		for _, e := range inventory {
			if !s.catalog.Contains(e.Denomination) {
				return fmt.Errorf("inventory references unknown denomination %d", e.Denomination)
			}
			s.inventory.Put(e)
		}
		s.ledger.Append(entries...)

		s.log.Info().
			Int("denominations", len(denoms)).
			Int("ledger_entries", len(entries)).
			Int64("total_amount", s.inventory.Total()).
			Msg("register loaded")
		return nil
	})
}

// Seed registers every value not already in the catalog.
func (s *RegisterServiceImpl) Seed(ctx context.Context, values []int64) error {
	for _, v := range values {
		if s.catalog.Contains(v) {
			continue
		}
		if _, err := s.RegisterDenomination(ctx, v); err != nil && !errors.Is(err, apperror.ErrDuplicateDenomination(v)) {
			return err
		}
	}
	return nil
}

// ---- Catalog ----

// ListDenominations returns the catalog, highest value first.
func (s *RegisterServiceImpl) ListDenominations(_ context.Context) []domain.Denomination {
	return s.catalog.List()
}

// RegisterDenomination adds a face value with an empty inventory entry.
func (s *RegisterServiceImpl) RegisterDenomination(ctx context.Context, value int64) (*domain.Denomination, error) {
	if value <= 0 {
		return nil, apperror.Validation("currency_type must be positive")
	}

	d := domain.Denomination{Value: value, CreatedAt: s.now().UTC()}
	err := s.catalogAdmin(ctx, func() error {
		if s.catalog.Contains(value) {
			return apperror.ErrDuplicateDenomination(value)
		}
		if err := s.store.CreateDenomination(ctx, d); err != nil {
			if errors.Is(err, ports.ErrDuplicate) {
				return apperror.ErrDuplicateDenomination(value)
			}
			return apperror.ErrDatabaseError(fmt.Errorf("create denomination: %w", err))
		}

		s.viewMu.Lock()
		defer s.viewMu.Unlock()
		s.catalog.insert(d)
		s.inventory.Put(domain.InventoryEntry{Denomination: value, UpdatedAt: d.CreatedAt})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("currency_type", value).Msg("denomination registered")
	return &d, nil
}

// RemoveDenomination deletes a face value that has no stock and no payment history.
func (s *RegisterServiceImpl) RemoveDenomination(ctx context.Context, value int64) error {
	err := s.catalogAdmin(ctx, func() error {
		if !s.catalog.Contains(value) {
			return apperror.ErrUnknownDenomination(value)
		}
		// waits for in-flight commits on value only
		locks, err := s.lock(ctx, func(v int64) bool { return v == value })
		if err != nil {
			return err
		}
		defer locks.Release()
		if !locks.Holds(value) {
			return apperror.ErrUnknownDenomination(value)
		}
		if s.inventory.Get(value) > 0 {
			return apperror.ErrReferentialConflict(value)
		}
		inUse, err := s.store.DenominationInUse(ctx, value)
		if err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("check denomination usage: %w", err))
		}
		if inUse {
			return apperror.ErrReferentialConflict(value)
		}
		if err := s.store.DeleteDenomination(ctx, value); err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return apperror.ErrUnknownDenomination(value)
			}
			return apperror.ErrDatabaseError(fmt.Errorf("delete denomination: %w", err))
		}

		s.viewMu.Lock()
		defer s.viewMu.Unlock()
		s.catalog.delete(value)
		s.inventory.Remove(value)
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Int64("currency_type", value).Msg("denomination removed")
	return nil
}

// ---- Restock ----

// SetInventory sets the quantity of one denomination. No ledger entry is written.
func (s *RegisterServiceImpl) SetInventory(ctx context.Context, value, quantity int64) (*domain.InventoryEntry, error) {
	if quantity < 0 {
		return nil, apperror.Validation("quantity must not be negative")
	}
	return s.restock(ctx, value, func(current int64) int64 { return quantity - current })
}

// AdjustInventory adds a signed delta to one denomination. No ledger entry is written.
func (s *RegisterServiceImpl) AdjustInventory(ctx context.Context, value, delta int64) (*domain.InventoryEntry, error) {
	return s.restock(ctx, value, func(int64) int64 { return delta })
}

func (s *RegisterServiceImpl) restock(ctx context.Context, value int64, deltaFor func(current int64) int64) (*domain.InventoryEntry, error) {
	if !s.catalog.Contains(value) {
		return nil, apperror.ErrUnknownDenomination(value)
	}

	locks, err := s.lock(ctx, func(v int64) bool { return v == value })
	if err != nil {
		return nil, err
	}
	defer locks.Release()
	if !locks.Holds(value) {
		return nil, apperror.ErrUnknownDenomination(value)
	}

	delta := domain.Delta{value: deltaFor(s.inventory.Get(value))}
	now := s.now().UTC()
	next, err := s.inventory.Preview(delta, now)
	if err != nil {
		return nil, err
	}

	if err := s.store.Commit(ctx, ports.Commit{Inventory: next}); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit restock: %w", err))
	}
	s.publish(delta, now)

	s.log.Info().
		Int64("currency_type", value).
		Int64("delta", delta[value]).
		Int64("quantity", next[0].Quantity).
		Msg("inventory restocked")

	return &next[0], nil
}

// ---- Payments ----

// CreatePayment accepts a tender for a purchase, gives change from the cash on
// hand, and records the movement. Nothing changes unless every step succeeds.
func (s *RegisterServiceImpl) CreatePayment(ctx context.Context, req ports.PaymentRequest) (*domain.Payment, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	tender, err := domain.NewTender(req.Lines)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	for _, v := range tender.Denominations() {
		if !s.catalog.Contains(v) {
			return nil, apperror.ErrUnknownDenomination(v)
		}
	}
	if tender.Total() < req.Amount {
		s.log.Info().
			Str("state", string(domain.PaymentStateAborted)).
			Int64("total_payment", tender.Total()).
			Int64("amount", req.Amount).
			Msg("payment rejected: insufficient payment")
		return nil, apperror.ErrInsufficientPayment(tender.Total(), req.Amount)
	}

	if req.IdempotencyKey == "" {
		payment, err := s.commitPayment(ctx, tender, req.Amount, nil)
		if err != nil {
			return nil, err
		}
		s.afterPayment(ctx, payment, "")
		return payment, nil
	}

	key := domain.BuildIdempotencyKey(req.IdempotencyKey)
	if cached, err := s.replay(ctx, key, req.IdempotencyKey); cached != nil || err != nil {
		return cached, err
	}

	if s.idempCache != nil {
		claimed, err := s.idempCache.Claim(ctx, key, claimTTL)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("redis idempotency claim failed, relying on store constraint")
		} else if !claimed {
			return nil, apperror.ErrDuplicatePayment()
		} else {
			defer func() {
				if err := s.idempCache.Release(context.WithoutCancel(ctx), key); err != nil {
					s.log.Warn().Err(err).Str("key", key).Msg("failed to release idempotency claim")
				}
			}()
			// the previous holder may have committed between lookup and claim
			if stored, err := s.storedPayment(ctx, req.IdempotencyKey); stored != nil || err != nil {
				return stored, err
			}
		}
	}

	clientKey := req.IdempotencyKey
	payment, err := s.commitPayment(ctx, tender, req.Amount, &clientKey)
	if errors.Is(err, ports.ErrDuplicate) {
		if stored, lookupErr := s.storedPayment(ctx, clientKey); stored != nil || lookupErr != nil {
			return stored, lookupErr
		}
	}
	if err != nil {
		return nil, err
	}
	s.afterPayment(ctx, payment, key)
	return payment, nil
}

// replay returns the payment previously committed under key, if any.
func (s *RegisterServiceImpl) replay(ctx context.Context, key, clientKey string) (*domain.Payment, error) {
	// Layer 1: Redis
	if s.idempCache != nil {
		cached, err := s.idempCache.Get(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("redis idempotency check failed, falling through to store")
		}
		if cached != nil {
			payment := &domain.Payment{}
			if err := json.Unmarshal(cached, payment); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("unmarshal cached payment: %w", err))
			}
			return payment, nil
		}
	}

	// Layer 2: store
	return s.storedPayment(ctx, clientKey)
}

// storedPayment returns the payment committed under clientKey, nil if none.
func (s *RegisterServiceImpl) storedPayment(ctx context.Context, clientKey string) (*domain.Payment, error) {
	payment, err := s.store.GetPaymentByIdempotencyKey(ctx, clientKey)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, nil
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("idempotency lookup: %w", err))
	}
	return payment, nil
}

func (s *RegisterServiceImpl) commitPayment(ctx context.Context, tender domain.Tender, amount int64, idempotencyKey *string) (*domain.Payment, error) {
	changeOwed := tender.Total() - amount
	tendered := make(map[int64]struct{})
	for _, v := range tender.Denominations() {
		tendered[v] = struct{}{}
	}

	locks, err := s.lock(ctx, func(v int64) bool {
		_, ok := tendered[v]
		return ok || v <= changeOwed
	})
	if err != nil {
		return nil, err
	}
	defer locks.Release()

	for v := range tendered {
		if !locks.Holds(v) {
			return nil, apperror.ErrUnknownDenomination(v)
		}
	}

	change, remainder, ok := domain.ComputeChange(changeOwed, s.inventory.SnapshotOf(locks.Values()))
	if !ok {
		s.log.Info().
			Str("state", string(domain.PaymentStateAborted)).
			Int64("change_owed", changeOwed).
			Int64("remainder", remainder).
			Msg("payment rejected: change unavailable")
		return nil, apperror.ErrChangeUnavailable(remainder)
	}

	lines := tender.Lines()
	delta := domain.Delta{}
	for _, l := range lines {
		delta.Add(l.Denomination, l.Quantity)
	}
	for _, l := range change {
		delta.Add(l.Denomination, -l.Quantity)
	}

	now := s.now().UTC()
	next, err := s.inventory.Preview(delta, now)
	if err != nil {
		return nil, err
	}

	if change == nil {
		change = []domain.CashLine{}
	}
	payment := &domain.Payment{
		ID:             uuid.New(),
		TenderedAmount: tender.Total(),
		PurchaseAmount: amount,
		ChangeAmount:   changeOwed,
		Lines:          lines,
		Change:         change,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      now,
	}
	entries := []domain.LedgerEntry{
		domain.NewInflow(payment.TenderedAmount, &payment.ID, now),
		domain.NewOutflow(payment.ChangeAmount, &payment.ID, now),
	}

	if err := s.store.Commit(ctx, ports.Commit{Inventory: next, Payment: payment, Entries: entries}); err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			dup := apperror.ErrDuplicatePayment()
			dup.Err = err
			return nil, dup
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit payment: %w", err))
	}
	s.publish(delta, now, entries...)

	s.log.Info().
		Str("state", string(domain.PaymentStateCommitted)).
		Str("payment_id", payment.ID.String()).
		Int64("amount", amount).
		Int64("total_payment", payment.TenderedAmount).
		Int64("total_change", payment.ChangeAmount).
		Msg("payment committed")

	return payment, nil
}

// afterPayment runs the best-effort side effects of a committed payment,
// detached from ctx cancellation.
func (s *RegisterServiceImpl) afterPayment(ctx context.Context, payment *domain.Payment, key string) {
	ctx = context.WithoutCancel(ctx)
	if key != "" && s.idempCache != nil {
		respJSON, err := json.Marshal(payment)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to marshal payment for idempotency cache")
		} else if err := s.idempCache.Set(ctx, key, respJSON, s.idempotencyTTL); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to cache idempotency in redis")
		}
	}
	s.emit(ctx, domain.NewPaymentCommittedEvent(payment))
}

// GetPayment returns a committed payment with its tender and change.
func (s *RegisterServiceImpl) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.store.GetPayment(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperror.ErrNotFound("payment")
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get payment: %w", err))
	}
	return payment, nil
}

// ---- Register ----

// EmptyRegister removes all cash and records a single outflow of the removed
// value, even when it is zero.
func (s *RegisterServiceImpl) EmptyRegister(ctx context.Context) (int64, error) {
	total, at, err := s.empty(ctx)
	if err != nil {
		return 0, err
	}
	s.emit(context.WithoutCancel(ctx), domain.NewRegisterEmptiedEvent(total, at))
	return total, nil
}

func (s *RegisterServiceImpl) empty(ctx context.Context) (int64, time.Time, error) {
	locks, err := s.lock(ctx, func(int64) bool { return true })
	if err != nil {
		return 0, time.Time{}, err
	}
	defer locks.Release()

	now := s.now().UTC()
	snapshot := s.inventory.SnapshotOf(locks.Values())
	total := domain.TotalValue(snapshot)
	zeroed := make([]domain.InventoryEntry, len(snapshot))
	delta := domain.Delta{}
	for i, e := range snapshot {
		zeroed[i] = domain.InventoryEntry{Denomination: e.Denomination, Quantity: 0, UpdatedAt: now}
		delta.Add(e.Denomination, -e.Quantity)
	}
	outflow := domain.NewOutflow(total, nil, now)

	if err := s.store.Commit(ctx, ports.Commit{Inventory: zeroed, Entries: []domain.LedgerEntry{outflow}}); err != nil {
		return 0, time.Time{}, apperror.ErrDatabaseError(fmt.Errorf("commit empty register: %w", err))
	}
	s.publish(delta, now, outflow)

	s.log.Info().Int64("total_removed", total).Msg("register emptied")
	return total, now, nil
}

// CurrentState returns every denomination's quantity and the total cash value.
func (s *RegisterServiceImpl) CurrentState(_ context.Context) *ports.RegisterState {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()

	snapshot := s.inventory.Snapshot()
	return &ports.RegisterState{
		Denominations: snapshot,
		TotalAmount:   domain.TotalValue(snapshot),
	}
}

// HistoryAsOf returns the ledger entries created at or before asOf and their
// running balance.
func (s *RegisterServiceImpl) HistoryAsOf(_ context.Context, asOf time.Time) *ports.RegisterHistory {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()

	balance, entries := s.ledger.AsOf(asOf)
	return &ports.RegisterHistory{
		AsOf:        asOf,
		TotalAmount: balance,
		Entries:     entries,
	}
}

// ---- helpers ----

// catalogAdmin runs fn as the only catalog change in progress. Waiting for the
// turn is bounded by the lock timeout.
func (s *RegisterServiceImpl) catalogAdmin(ctx context.Context, fn func() error) error {
	waitCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	err := s.catalog.Admin(waitCtx, fn)
	var appErr *apperror.AppError
	if err == nil || errors.As(err, &appErr) || !errors.Is(err, ErrLockTimeout) {
		return err
	}
	s.log.Warn().Err(err).Dur("timeout", s.lockTimeout).Msg("catalog change not admitted")
	return apperror.ErrLockTimeout(err)
}

func (s *RegisterServiceImpl) lock(ctx context.Context, include func(int64) bool) (*LockSet, error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locks, err := s.catalog.Lock(lockCtx, include)
	if err != nil {
		s.log.Warn().Err(err).Dur("timeout", s.lockTimeout).Msg("denomination lock not acquired")
		return nil, apperror.ErrLockTimeout(err)
	}
	return locks, nil
}

// publish makes a committed delta and its ledger entries visible to readers at once.
func (s *RegisterServiceImpl) publish(delta domain.Delta, at time.Time, entries ...domain.LedgerEntry) {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()

	if _, err := s.inventory.ApplyDelta(delta, at); err != nil {
		s.log.Error().Err(err).Msg("committed delta rejected by in-memory inventory")
	}
	s.ledger.Append(entries...)
}

func (s *RegisterServiceImpl) emit(ctx context.Context, event domain.RegisterEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event", string(event.Type)).Msg("failed to publish register event")
	}
}
