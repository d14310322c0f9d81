package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/identix/auth-system/internal/core/domain"
	"github.com/identix/auth-system/internal/core/ports"
)

const collectionAuthEvents = "auth_events"

// AuditRepository persists authentication events to the auth_events
// collection.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// InsertEvent appends one authentication event to the audit trail.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	doc := bson.M{
		"email":       event.Email,
		"kind":        string(event.Kind),
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.RemoteIP != "" {
		doc["remote_ip"] = event.RemoteIP
	}

	_, err := r.db.Collection(collectionAuthEvents).InsertOne(ctx, doc)
	return err
}
