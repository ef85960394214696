package postgres

import (
	"context"
	"fmt"

	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// DenominationRepo stores the denomination catalog.
type DenominationRepo struct {
	pool Pool
}

// NewDenominationRepo creates a new DenominationRepo.
func NewDenominationRepo(pool Pool) *DenominationRepo {
	return &DenominationRepo{pool: pool}
}

// List returns every registered denomination, highest value first.
func (r *DenominationRepo) List(ctx context.Context) ([]domain.Denomination, error) {
	rows, err := r.pool.Query(ctx, `SELECT value, created_at FROM denominations ORDER BY value DESC`)
	if err != nil {
		return nil, fmt.Errorf("list denominations: %w", err)
	}
	defer rows.Close()

	var denoms []domain.Denomination
	for rows.Next() {
		var d domain.Denomination
		if err := rows.Scan(&d.Value, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan denomination row: %w", err)
		}
		denoms = append(denoms, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate denomination rows: %w", err)
	}
	return denoms, nil
}

// Create inserts a denomination and its empty inventory row within a database transaction.
func (r *DenominationRepo) Create(ctx context.Context, tx pgx.Tx, d domain.Denomination) error {
	_, err := tx.Exec(ctx, `INSERT INTO denominations (value, created_at) VALUES ($1, $2)`, d.Value, d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrDuplicate
		}
		return fmt.Errorf("insert denomination: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO inventory (denomination, quantity, updated_at) VALUES ($1, 0, $2)`,
		d.Value, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory row: %w", err)
	}
	return nil
}

// Delete removes a denomination and its inventory row within a database transaction.
func (r *DenominationRepo) Delete(ctx context.Context, tx pgx.Tx, value int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM inventory WHERE denomination = $1`, value); err != nil {
		return fmt.Errorf("delete inventory row: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM denominations WHERE value = $1`, value)
	if err != nil {
		return fmt.Errorf("delete denomination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// InUse reports whether any tender or change line references value.
func (r *DenominationRepo) InUse(ctx context.Context, value int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payment_lines WHERE denomination = $1)`, value,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check denomination usage: %w", err)
	}
	return exists, nil
}
