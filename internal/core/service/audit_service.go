package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/identix/auth-system/internal/core/domain"
	"github.com/identix/auth-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists authentication
// attempts to the audit repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single authentication event. The email is stored as
// received; the password never reaches this layer.
func (s *auditService) Record(ctx context.Context, in ports.AuthEventInput) error {
	event := &domain.AuthEvent{
		Email:     in.Email,
		Kind:      in.Kind,
		Timestamp: in.Timestamp,
		RemoteIP:  in.RemoteIP,
	}

	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	s.log.Debug().
		Str("email", in.Email).
		Str("kind", string(in.Kind)).
		Msg("auth event recorded")

	return nil
}
