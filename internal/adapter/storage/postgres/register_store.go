package postgres

import (
	"context"
	"fmt"

	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports"

	"github.com/google/uuid"
)

// RegisterStore implements ports.RegisterStore on PostgreSQL.
type RegisterStore struct {
	tx            ports.DBTransactor
	denominations *DenominationRepo
	inventory     *InventoryRepo
	payments      *PaymentRepo
	ledger        *LedgerRepo
}

// NewRegisterStore wires the repositories over one pool.
func NewRegisterStore(pool Pool) *RegisterStore {
	return &RegisterStore{
		tx:            NewTransactor(pool),
		denominations: NewDenominationRepo(pool),
		inventory:     NewInventoryRepo(pool),
		payments:      NewPaymentRepo(pool),
		ledger:        NewLedgerRepo(pool),
	}
}

func (s *RegisterStore) LoadDenominations(ctx context.Context) ([]domain.Denomination, error) {
	return s.denominations.List(ctx)
}

func (s *RegisterStore) LoadInventory(ctx context.Context) ([]domain.InventoryEntry, error) {
	return s.inventory.List(ctx)
}

func (s *RegisterStore) LoadLedger(ctx context.Context) ([]domain.LedgerEntry, error) {
	return s.ledger.List(ctx)
}

func (s *RegisterStore) CreateDenomination(ctx context.Context, d domain.Denomination) error {
	dbTx, err := s.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.denominations.Create(ctx, dbTx, d); err != nil {
		return err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *RegisterStore) DeleteDenomination(ctx context.Context, value int64) error {
	dbTx, err := s.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.denominations.Delete(ctx, dbTx, value); err != nil {
		return err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *RegisterStore) DenominationInUse(ctx context.Context, value int64) (bool, error) {
	return s.denominations.InUse(ctx, value)
}

// Commit writes inventory, payment and ledger entries in one transaction.
// Inventory rows are locked in ascending denomination order first, matching
// the in-process lock order.
func (s *RegisterStore) Commit(ctx context.Context, c ports.Commit) error {
	dbTx, err := s.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if len(c.Inventory) > 0 {
		delta := make(domain.Delta, len(c.Inventory))
		for _, e := range c.Inventory {
			delta.Add(e.Denomination, 0)
		}
		if err := s.inventory.LockForUpdate(ctx, dbTx, delta.Denominations()); err != nil {
			return err
		}
		for _, e := range c.Inventory {
			if err := s.inventory.Update(ctx, dbTx, e); err != nil {
				return err
			}
		}
	}

	if c.Payment != nil {
		if err := s.payments.Create(ctx, dbTx, c.Payment); err != nil {
			return err
		}
	}

	for _, e := range c.Entries {
		if err := s.ledger.Append(ctx, dbTx, e); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *RegisterStore) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *RegisterStore) GetPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	return s.payments.GetByIdempotencyKey(ctx, key)
}

var _ ports.RegisterStore = (*RegisterStore)(nil)
