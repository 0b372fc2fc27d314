package ports

import (
	"context"
	"time"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
)

// TripFilter carries query parameters for listing trips. Zero values mean
// "no filter" for that field. Window bounds are inclusive at From, exclusive
// at To, applied to start_time.
type TripFilter struct {
	RunnerID  string
	ManagerID string
	Status    string // "", "all" = any status
	From      time.Time
	To        time.Time
	// OnlyStopped excludes in-progress trips, for decision queues where an
	// open trip is pending but not yet decidable.
	OnlyStopped bool
}

// PendingCount is the number of a runner's trips awaiting a given manager.
type PendingCount struct {
	ManagerID   string
	ManagerName string
	Count       int64
}

// StatusCounts aggregates trips per approval status.
type StatusCounts struct {
	Total    int64
	Approved int64
	Declined int64
	Pending  int64
}

// StopUpdate carries the fields written when a trip is stopped.
type StopUpdate struct {
	Distance float64
	EndLat   float64
	EndLng   float64
	EndTime  time.Time
	Payment  float64
}

// TripRepository defines persistence for trips. All mutating operations are
// compare-and-swap updates: the store applies the change only when the record
// is still in the expected state and otherwise reports the current state via
// domain.ErrInvalidTripState (or domain.ErrTripNotFound when the id is
// unknown). This serializes concurrent writers per trip without a global lock.
type TripRepository interface {
	Create(ctx context.Context, t *domain.Trip) (*domain.Trip, error)
	FindByID(ctx context.Context, id string) (*domain.Trip, error)
	// FindOpenByRunner returns the runner's in-progress trip, or
	// domain.ErrTripNotFound when no trip is open.
	FindOpenByRunner(ctx context.Context, runnerID string) (*domain.Trip, error)
	List(ctx context.Context, filter TripFilter) ([]*domain.Trip, error)

	// Stop finalizes the running phase; the CAS expects the trip to still be
	// open.
	Stop(ctx context.Context, id string, upd StopUpdate) (*domain.Trip, error)
	// UpdateParking expects a stopped, still-pending trip whose adjusted
	// distance matches expectedAdjusted (nil = not adjusted), so a concurrent
	// distance adjustment invalidates the precomputed payment and fails the swap.
	UpdateParking(ctx context.Context, id string, parking, payment float64, expectedAdjusted *float64) (*domain.Trip, error)
	// AdjustDistance expects a stopped, still-pending trip with parking equal
	// to expectedParking, for the same serialization reason.
	AdjustDistance(ctx context.Context, id string, adjusted, payment, expectedParking float64) (*domain.Trip, error)
	// SetStatus moves a stopped pending trip to a terminal status.
	SetStatus(ctx context.Context, id string, status domain.TripStatus) (*domain.Trip, error)

	PendingCountsByRunner(ctx context.Context, runnerID string) ([]PendingCount, error)
	CountByStatus(ctx context.Context) (StatusCounts, error)
}
