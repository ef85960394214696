package memory

import (
	"context"
	"testing"
	"time"

	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seededStore(t *testing.T, values ...int64) *Store {
	t.Helper()
	s := NewStore()
	for _, v := range values {
		require.NoError(t, s.CreateDenomination(context.Background(), domain.Denomination{Value: v, CreatedAt: now}))
	}
	return s
}

func TestStore_Denominations(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t, 500, 20000, 200)

	denoms, err := s.LoadDenominations(ctx)
	require.NoError(t, err)
	require.Len(t, denoms, 3)
	assert.Equal(t, int64(20000), denoms[0].Value)
	assert.Equal(t, int64(200), denoms[2].Value)

	inv, err := s.LoadInventory(ctx)
	require.NoError(t, err)
	require.Len(t, inv, 3)
	assert.Zero(t, domain.TotalValue(inv))

	assert.ErrorIs(t, s.CreateDenomination(ctx, domain.Denomination{Value: 500}), ports.ErrDuplicate)

	require.NoError(t, s.DeleteDenomination(ctx, 200))
	assert.ErrorIs(t, s.DeleteDenomination(ctx, 200), ports.ErrNotFound)
	inv, _ = s.LoadInventory(ctx)
	assert.Len(t, inv, 2)
}

func TestStore_CommitPayment(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t, 500, 1000)
	key := "k-1"
	p := &domain.Payment{
		ID:             uuid.New(),
		TenderedAmount: 1000,
		PurchaseAmount: 500,
		ChangeAmount:   500,
		Lines:          []domain.CashLine{{Denomination: 1000, Quantity: 1}},
		Change:         []domain.CashLine{{Denomination: 500, Quantity: 1}},
		IdempotencyKey: &key,
		CreatedAt:      now,
	}

	err := s.Commit(ctx, ports.Commit{
		Inventory: []domain.InventoryEntry{
			{Denomination: 1000, Quantity: 1, UpdatedAt: now},
			{Denomination: 500, Quantity: 0, UpdatedAt: now},
		},
		Payment: p,
		Entries: []domain.LedgerEntry{
			domain.NewInflow(1000, &p.ID, now),
			domain.NewOutflow(500, &p.ID, now),
		},
	})
	require.NoError(t, err)

	got, err := s.GetPayment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Change, got.Change)

	// callers cannot mutate stored state through returned values
	got.Change[0].Quantity = 99
	again, _ := s.GetPaymentByIdempotencyKey(ctx, "k-1")
	assert.Equal(t, int64(1), again.Change[0].Quantity)

	inUse, _ := s.DenominationInUse(ctx, 500)
	assert.True(t, inUse)

	ledger, _ := s.LoadLedger(ctx)
	assert.Equal(t, int64(500), domain.RunningBalance(ledger))

	_, err = s.GetPayment(ctx, uuid.New())
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = s.GetPaymentByIdempotencyKey(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_Commit_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t, 500)
	key := "dup"

	first := &domain.Payment{ID: uuid.New(), IdempotencyKey: &key}
	require.NoError(t, s.Commit(ctx, ports.Commit{Payment: first}))

	second := &domain.Payment{ID: uuid.New(), IdempotencyKey: &key}
	err := s.Commit(ctx, ports.Commit{
		Inventory: []domain.InventoryEntry{{Denomination: 500, Quantity: 10, UpdatedAt: now}},
		Payment:   second,
		Entries:   []domain.LedgerEntry{domain.NewInflow(5000, &second.ID, now)},
	})
	assert.ErrorIs(t, err, ports.ErrDuplicate)

	inv, _ := s.LoadInventory(ctx)
	assert.Zero(t, inv[0].Quantity)
	ledger, _ := s.LoadLedger(ctx)
	assert.Empty(t, ledger)

	err = s.Commit(ctx, ports.Commit{
		Inventory: []domain.InventoryEntry{{Denomination: 7, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAuditRepo(t *testing.T) {
	r := NewAuditRepo()
	require.NoError(t, r.Create(context.Background(), &domain.AuditLog{Action: domain.AuditActionLogin}))
	logs := r.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, domain.AuditActionLogin, logs[0].Action)
}
