package ports

import (
	"context"
	"time"

	"github.com/identix/auth-system/internal/core/domain"
)

// AuthEventInput is the DTO passed from the transport layer to AuditService.
type AuthEventInput struct {
	Email     string
	Kind      domain.AuthEventKind
	Timestamp time.Time
	RemoteIP  string
}

// AuditService records authentication attempts to the audit trail.
type AuditService interface {
	Record(ctx context.Context, event AuthEventInput) error
}

// AuditRepository persists audit trail entries.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
