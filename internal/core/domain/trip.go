package domain

import (
	"errors"
	"time"
)

// TripStatus is the approval status of a trip. It is orthogonal to whether the
// trip is still running: a trip is "open" while EndTime is unset and becomes
// eligible for a decision only once stopped.
type TripStatus string

const (
	StatusPending  TripStatus = "pending"
	StatusApproved TripStatus = "approved"
	StatusDeclined TripStatus = "declined"
)

var ErrTripNotFound = errors.New("trip not found")
var ErrOpenTripExists = errors.New("runner already has an open trip")
var ErrInvalidTripState = errors.New("operation not allowed in current trip state")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidInput = errors.New("invalid input")

// Terminal reports whether the status admits no further transitions.
func (s TripStatus) Terminal() bool {
	return s == StatusApproved || s == StatusDeclined
}

// CanTransitionTo reports whether a decision moving the status to next is valid.
// The only legal transitions are pending → approved and pending → declined.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	return s == StatusPending && next.Terminal()
}

// Trip is the core aggregate root. Trips are never deleted; every lifecycle
// change is a status or field transition, mirrored into the trip_events audit
// collection.
type Trip struct {
	ID        string     `json:"id"`
	RunnerID  string     `json:"runnerId"`
	ManagerID string     `json:"managerId"`
	Status    TripStatus `json:"status"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	StartLat  float64    `json:"startLat"`
	StartLng  float64    `json:"startLng"`
	EndLat    *float64   `json:"endLat,omitempty"`
	EndLng    *float64   `json:"endLng,omitempty"`

	// Distance is the kilometres submitted by the runner at stop time.
	// AdjustedDistance, when set by a manager, overrides it for billing but the
	// runner-submitted value is preserved for audit.
	Distance         float64  `json:"distance"`
	AdjustedDistance *float64 `json:"adjustedDistance,omitempty"`

	Parking float64 `json:"parking"`
	// Payment is always derived from (effective distance, parking, rate); it is
	// never settable independently.
	Payment float64 `json:"payment"`
}

// Open reports whether the trip is still running.
func (t *Trip) Open() bool {
	return t.EndTime == nil
}

// Decidable reports whether the trip is stopped and awaiting a manager decision.
func (t *Trip) Decidable() bool {
	return !t.Open() && t.Status == StatusPending
}

// EffectiveDistance is the distance used for billing: the manager-adjusted
// value when present, else the runner-submitted one.
func (t *Trip) EffectiveDistance() float64 {
	if t.AdjustedDistance != nil {
		return *t.AdjustedDistance
	}
	return t.Distance
}
