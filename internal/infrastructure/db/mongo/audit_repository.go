package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

const collectionTripEvents = "trip_events"

// AuditRepository persists lifecycle events to the append-only trip_events
// collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{col: db.Collection(collectionTripEvents)}
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.TripEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"event_id":     event.ID,
		"trip_id":      event.TripID,
		"action":       string(event.Action),
		"actor_id":     event.ActorID,
		"distance":     event.Distance,
		"parking":      event.Parking,
		"payment":      event.Payment,
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert trip event: %w", err)
	}
	return nil
}
