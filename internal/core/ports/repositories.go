package ports

import (
	"context"
	"errors"

	"cash-register/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound is returned by stores when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned by stores on a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
)

// Commit is one durable register mutation: the new absolute inventory quantities
// of every touched denomination, the optional payment, and the ledger entries.
// Stores must persist all of it or none of it.
type Commit struct {
	Inventory []domain.InventoryEntry
	Payment   *domain.Payment
	Entries   []domain.LedgerEntry
}

// RegisterStore is the durable backing of the register.
type RegisterStore interface {
	LoadDenominations(ctx context.Context) ([]domain.Denomination, error)
	LoadInventory(ctx context.Context) ([]domain.InventoryEntry, error)
	LoadLedger(ctx context.Context) ([]domain.LedgerEntry, error)

	// CreateDenomination inserts the catalog row and its zero inventory entry.
	CreateDenomination(ctx context.Context, d domain.Denomination) error
	DeleteDenomination(ctx context.Context, value int64) error
	// DenominationInUse reports whether any payment line or change line references value.
	DenominationInUse(ctx context.Context, value int64) (bool, error)

	Commit(ctx context.Context, c Commit) error

	GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	GetPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error)
}

// AuditRepository persists audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
