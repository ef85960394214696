package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionLogin           AuditAction = "LOGIN"
	AuditActionRegisterDenom   AuditAction = "REGISTER_DENOMINATION"
	AuditActionRemoveDenom     AuditAction = "REMOVE_DENOMINATION"
	AuditActionSetInventory    AuditAction = "SET_INVENTORY"
	AuditActionAdjustInventory AuditAction = "ADJUST_INVENTORY"
	AuditActionEmptyRegister   AuditAction = "EMPTY_REGISTER"
)

// AuditLog records a single administrative action on the register.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Operator     string      `json:"operator,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
