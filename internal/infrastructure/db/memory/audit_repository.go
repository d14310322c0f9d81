package memory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/identix/auth-system/internal/core/domain"
	"github.com/identix/auth-system/internal/core/ports"
)

// AuditRepository is the audit sink for the memory storage driver: events
// are emitted to the structured log instead of a collection.
type AuditRepository struct {
	log zerolog.Logger
}

func NewAuditRepository(log zerolog.Logger) ports.AuditRepository {
	return &AuditRepository{log: log}
}

func (r *AuditRepository) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	r.log.Info().
		Str("email", event.Email).
		Str("kind", string(event.Kind)).
		Time("timestamp", event.Timestamp).
		Str("remote_ip", event.RemoteIP).
		Msg("auth event")
	return nil
}
