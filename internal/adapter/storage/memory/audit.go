package memory

import (
	"context"
	"sync"

	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports"
)

// AuditRepo keeps audit logs in memory.
type AuditRepo struct {
	mu   sync.Mutex
	logs []domain.AuditLog
}

// NewAuditRepo creates an empty AuditRepo.
func NewAuditRepo() *AuditRepo {
	return &AuditRepo{}
}

func (r *AuditRepo) Create(_ context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

// Logs returns a copy of everything recorded so far.
func (r *AuditRepo) Logs() []domain.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditLog(nil), r.logs...)
}

var _ ports.AuditRepository = (*AuditRepo)(nil)
