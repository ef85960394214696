package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports"
	"cash-register/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type auditRoute struct {
	method string
	path   string
}

var auditActions = map[auditRoute]struct {
	action       domain.AuditAction
	resourceType string
}{
	{http.MethodPost, "/api/v1/auth/token"}:             {domain.AuditActionLogin, "session"},
	{http.MethodPost, "/api/v1/denominations"}:          {domain.AuditActionRegisterDenom, "denomination"},
	{http.MethodDelete, "/api/v1/denominations/:value"}: {domain.AuditActionRemoveDenom, "denomination"},
	{http.MethodPut, "/api/v1/inventory/:value"}:        {domain.AuditActionSetInventory, "inventory"},
	{http.MethodPatch, "/api/v1/inventory/:value"}:      {domain.AuditActionAdjustInventory, "inventory"},
	{http.MethodPost, "/api/v1/register/empty"}:         {domain.AuditActionEmptyRegister, "register"},
}

// AuditLog creates an audit middleware that records successful administrative
// operations. Routes are matched on their registered pattern.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		mapped, ok := auditActions[auditRoute{c.Request.Method, c.FullPath()}]
		if !ok {
			return
		}

		resourceID := c.Param("value")
		if resourceID == "" {
			resourceID = c.GetString(CtxResourceID)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"request_id": c.GetString(response.CtxRequestID),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Operator:     c.GetString(CtxOperator),
			Action:       mapped.action,
			ResourceType: mapped.resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}
