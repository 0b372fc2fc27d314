package ports

import (
	"context"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
)

// StartTripInput carries the data needed to open a trip.
type StartTripInput struct {
	RunnerID  string
	ManagerID string
	StartLat  float64
	StartLng  float64
}

// StopTripInput finalizes the running phase of a trip.
type StopTripInput struct {
	TripID   string
	ActorID  string
	Distance float64
	EndLat   float64
	EndLng   float64
}

// DecideTripInput records a manager's approve/decline decision.
type DecideTripInput struct {
	TripID    string
	ManagerID string
	Status    domain.TripStatus
}

// TripService owns the trip lifecycle: every mutation revalidates the state
// machine and recomputes the derived payment.
type TripService interface {
	Start(ctx context.Context, in StartTripInput) (*domain.Trip, error)
	Stop(ctx context.Context, in StopTripInput) (*domain.Trip, error)
	// UpdateParking is allowed only on a stopped, not yet decided trip owned by
	// actorID (unless the actor is not a runner).
	UpdateParking(ctx context.Context, tripID, actorID, actorRole string, parking float64) (*domain.Trip, error)
	// AdjustDistance sets the manager override, preserving the runner-submitted
	// distance for audit.
	AdjustDistance(ctx context.Context, tripID, managerID string, distance float64) (*domain.Trip, error)
	// Decide approves or declines a pending stopped trip; only the assigned
	// manager may decide.
	Decide(ctx context.Context, in DecideTripInput) (*domain.Trip, error)
	// OpenTrip returns the runner's in-progress trip, or nil when none is open.
	OpenTrip(ctx context.Context, runnerID string) (*domain.Trip, error)
	Filter(ctx context.Context, filter TripFilter) ([]*domain.Trip, error)
}
