package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/identix/auth-system/internal/core/domain"
	"github.com/identix/auth-system/internal/core/ports"
)

type stubAuditRepo struct {
	inserted []*domain.AuthEvent
	err      error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, event)
	return nil
}

func TestAuditService_Record(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	in := ports.AuthEventInput{
		Email:     "a@x.com",
		Kind:      domain.AuthEventLoginOK,
		Timestamp: time.Now().UTC(),
		RemoteIP:  "203.0.113.7",
	}
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected one inserted event, got %d", len(repo.inserted))
	}
	got := repo.inserted[0]
	if got.Email != in.Email || got.Kind != in.Kind || got.RemoteIP != in.RemoteIP {
		t.Fatalf("event fields lost in translation: %+v", got)
	}
}

func TestAuditService_RecordError(t *testing.T) {
	sink := errors.New("collection unavailable")
	svc := NewAuditService(&stubAuditRepo{err: sink}, zerolog.Nop())

	err := svc.Record(context.Background(), ports.AuthEventInput{Email: "a@x.com", Kind: domain.AuthEventSignup})
	if !errors.Is(err, sink) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}
