package ports

import (
	"context"
	"time"

	"cash-register/internal/core/domain"

	"github.com/google/uuid"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(operator string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Operator string
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Claim marks key as in flight. Returns false if another request holds it.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// EventPublisher publishes register events to the event stream.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.RegisterEvent) error
	Close() error
}

// EventSigner signs published register events so consumers can verify them.
type EventSigner interface {
	Sign(event domain.RegisterEvent, payload []byte) string
}

// AuditService records administrative actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service Ports (Business Logic) ---

// RegisterService is the transaction engine and the register's administrative surface.
type RegisterService interface {
	Load(ctx context.Context) error

	ListDenominations(ctx context.Context) []domain.Denomination
	RegisterDenomination(ctx context.Context, value int64) (*domain.Denomination, error)
	RemoveDenomination(ctx context.Context, value int64) error

	SetInventory(ctx context.Context, value, quantity int64) (*domain.InventoryEntry, error)
	AdjustInventory(ctx context.Context, value, delta int64) (*domain.InventoryEntry, error)

	CreatePayment(ctx context.Context, req PaymentRequest) (*domain.Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	EmptyRegister(ctx context.Context) (int64, error)
	CurrentState(ctx context.Context) *RegisterState
	HistoryAsOf(ctx context.Context, asOf time.Time) *RegisterHistory
}

// PaymentRequest holds the raw tender and purchase amount of a payment.
type PaymentRequest struct {
	Amount         int64
	Lines          []domain.CashLine
	IdempotencyKey string
}

// RegisterState is a consistent view of the register's inventory.
type RegisterState struct {
	Denominations []domain.InventoryEntry `json:"denominations"`
	TotalAmount   int64                   `json:"total_amount"`
}

// RegisterHistory is the ledger as of a point in time.
type RegisterHistory struct {
	AsOf        time.Time            `json:"as_of"`
	TotalAmount int64                `json:"total_amount"`
	Entries     []domain.LedgerEntry `json:"entries"`
}

// AuthService defines operator authentication.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}
