package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type startTripRequest struct {
	ManagerID string  `json:"managerId" validate:"required"`
	StartLat  float64 `json:"startLat"  validate:"gte=-90,lte=90"`
	StartLng  float64 `json:"startLng"  validate:"gte=-180,lte=180"`
}

type stopTripRequest struct {
	Distance float64 `json:"distance" validate:"required,gt=0"`
	EndLat   float64 `json:"endLat"   validate:"gte=-90,lte=90"`
	EndLng   float64 `json:"endLng"   validate:"gte=-180,lte=180"`
}

type updateParkingRequest struct {
	Parking float64 `json:"parking" validate:"gte=0"`
}

type updateDistanceRequest struct {
	Distance float64 `json:"distance" validate:"required,gt=0"`
}

type decideTripRequest struct {
	TripID string `json:"tripId" validate:"required"`
	Status string `json:"status" validate:"required,oneof=approved declined"`
}

type filterRunnerRequest struct {
	ManagerID string `json:"managerId"`
	Status    string `json:"status"`
	Range     string `json:"range" validate:"omitempty,oneof=daily weekly monthly"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to internal
// service changes. finalKm mirrors the effective (billable) distance for
// screens that read it under that name.

type tripResponse struct {
	ID               string     `json:"id"`
	RunnerID         string     `json:"runnerId"`
	RunnerName       string     `json:"runnerName,omitempty"`
	ManagerID        string     `json:"managerId"`
	ManagerName      string     `json:"managerName,omitempty"`
	Status           string     `json:"status"`
	StartTime        time.Time  `json:"startTime"`
	EndTime          *time.Time `json:"endTime,omitempty"`
	StartLat         float64    `json:"startLat"`
	StartLng         float64    `json:"startLng"`
	EndLat           *float64   `json:"endLat,omitempty"`
	EndLng           *float64   `json:"endLng,omitempty"`
	Distance         float64    `json:"distance"`
	AdjustedDistance *float64   `json:"adjustedDistance,omitempty"`
	FinalKm          float64    `json:"finalKm"`
	Parking          float64    `json:"parking"`
	Payment          float64    `json:"payment"`
}

type summaryResponse struct {
	TotalTrips    int64   `json:"totalTrips"`
	TotalDistance float64 `json:"totalDistance"`
	TotalParking  float64 `json:"totalParking"`
	TotalPayment  float64 `json:"totalPayment"`
	DeclinedTrips int64   `json:"declinedTrips"`
}

type pendingCountResponse struct {
	ManagerName string `json:"managerName"`
	Count       int64  `json:"count"`
}
