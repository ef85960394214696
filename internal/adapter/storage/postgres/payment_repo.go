package postgres

import (
	"context"
	"errors"
	"fmt"

	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	lineKindTender = "TENDER"
	lineKindChange = "CHANGE"
)

// PaymentRepo stores committed payments with their tender and change lines.
type PaymentRepo struct {
	pool Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// Create inserts a payment and its lines within a database transaction.
// A reused idempotency key yields ports.ErrDuplicate.
func (r *PaymentRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Payment) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO payments (id, total_payment, amount, total_change, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.TenderedAmount, p.PurchaseAmount, p.ChangeAmount, p.IdempotencyKey, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	if err := r.insertLines(ctx, tx, p.ID, lineKindTender, p.Lines); err != nil {
		return err
	}
	return r.insertLines(ctx, tx, p.ID, lineKindChange, p.Change)
}

func (r *PaymentRepo) insertLines(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID, kind string, lines []domain.CashLine) error {
	for _, l := range lines {
		_, err := tx.Exec(ctx,
			`INSERT INTO payment_lines (payment_id, kind, denomination, quantity) VALUES ($1, $2, $3, $4)`,
			paymentID, kind, l.Denomination, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert %s line: %w", kind, err)
		}
	}
	return nil
}

// GetByID fetches a payment by UUID.
func (r *PaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT id, total_payment, amount, total_change, idempotency_key, created_at
		FROM payments WHERE id = $1`
	return r.get(ctx, r.pool.QueryRow(ctx, query, id))
}

// GetByIdempotencyKey fetches the payment committed under a client key.
func (r *PaymentRepo) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	query := `SELECT id, total_payment, amount, total_change, idempotency_key, created_at
		FROM payments WHERE idempotency_key = $1`
	return r.get(ctx, r.pool.QueryRow(ctx, query, key))
}

func (r *PaymentRepo) get(ctx context.Context, row pgx.Row) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(&p.ID, &p.TenderedAmount, &p.PurchaseAmount, &p.ChangeAmount, &p.IdempotencyKey, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT kind, denomination, quantity FROM payment_lines WHERE payment_id = $1 ORDER BY denomination DESC`,
		p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("list payment lines: %w", err)
	}
	defer rows.Close()

	p.Lines = []domain.CashLine{}
	p.Change = []domain.CashLine{}
	for rows.Next() {
		var (
			kind string
			line domain.CashLine
		)
		if err := rows.Scan(&kind, &line.Denomination, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan payment line: %w", err)
		}
		if kind == lineKindChange {
			p.Change = append(p.Change, line)
		} else {
			p.Lines = append(p.Lines, line)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment lines: %w", err)
	}
	return p, nil
}
