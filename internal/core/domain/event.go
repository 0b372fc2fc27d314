package domain

import "time"

// TripAction identifies a lifecycle transition recorded in the audit trail.
type TripAction string

const (
	ActionStarted          TripAction = "started"
	ActionStopped          TripAction = "stopped"
	ActionParkingUpdated   TripAction = "parking_updated"
	ActionDistanceAdjusted TripAction = "distance_adjusted"
	ActionApproved         TripAction = "approved"
	ActionDeclined         TripAction = "declined"
)

// TripEvent is one append-only audit record of a trip lifecycle transition.
type TripEvent struct {
	ID        string     // uuid assigned at processing time
	TripID    string
	Action    TripAction
	ActorID   string // user who performed the transition
	Distance  float64
	Parking   float64
	Payment   float64
	Timestamp time.Time
}
