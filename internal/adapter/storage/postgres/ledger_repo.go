package postgres

import (
	"context"
	"fmt"

	"cash-register/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// LedgerRepo stores the append-only cash movement ledger.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Append inserts a ledger entry within a database transaction.
func (r *LedgerRepo) Append(ctx context.Context, tx pgx.Tx, e domain.LedgerEntry) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO ledger_entries (id, kind, amount, payment_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Kind, e.Amount, e.PaymentID, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// List returns the whole ledger in insertion order.
func (r *LedgerRepo) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, kind, amount, payment_id, created_at FROM ledger_entries ORDER BY created_at, seq`)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Amount, &e.PaymentID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return entries, nil
}
