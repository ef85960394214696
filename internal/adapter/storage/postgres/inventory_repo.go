package postgres

import (
	"context"
	"fmt"

	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// InventoryRepo stores per-denomination quantities.
type InventoryRepo struct {
	pool Pool
}

// NewInventoryRepo creates a new InventoryRepo.
func NewInventoryRepo(pool Pool) *InventoryRepo {
	return &InventoryRepo{pool: pool}
}

// List returns every inventory row, highest denomination first.
func (r *InventoryRepo) List(ctx context.Context) ([]domain.InventoryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT denomination, quantity, updated_at FROM inventory ORDER BY denomination DESC`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(&e.Denomination, &e.Quantity, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory rows: %w", err)
	}
	return entries, nil
}

// LockForUpdate acquires row locks on the given denominations in ascending
// order (SELECT ... FOR UPDATE). Every value must exist.
func (r *InventoryRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, values []int64) error {
	rows, err := tx.Query(ctx,
		`SELECT denomination FROM inventory WHERE denomination = ANY($1) ORDER BY denomination FOR UPDATE`,
		values,
	)
	if err != nil {
		return fmt.Errorf("lock inventory rows: %w", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return fmt.Errorf("scan locked inventory row: %w", err)
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate locked inventory rows: %w", err)
	}
	if locked != len(values) {
		return fmt.Errorf("lock inventory rows: %w", ports.ErrNotFound)
	}
	return nil
}

// Update writes an absolute quantity within a database transaction.
func (r *InventoryRepo) Update(ctx context.Context, tx pgx.Tx, e domain.InventoryEntry) error {
	tag, err := tx.Exec(ctx,
		`UPDATE inventory SET quantity = $1, updated_at = $2 WHERE denomination = $3`,
		e.Quantity, e.UpdatedAt, e.Denomination,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory row %d: %w", e.Denomination, ports.ErrNotFound)
	}
	return nil
}
