package ports

import (
	"context"
	"time"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
)

// TripEventInput is the DTO handed from the lifecycle service to the audit
// pipeline.
type TripEventInput struct {
	TripID    string
	Action    domain.TripAction
	ActorID   string
	Distance  float64
	Parking   float64
	Payment   float64
	Timestamp time.Time
}

// AuditService processes lifecycle events asynchronously.
type AuditService interface {
	Process(ctx context.Context, event TripEventInput) error
}

// AuditRepository persists events to the trip_events audit collection.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.TripEvent) error
}
