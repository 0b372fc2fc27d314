package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/DBXDWARKA/office-runner-api/internal/api/metrics"
	"github.com/DBXDWARKA/office-runner-api/internal/core/billing"
	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

// AuditSink abstracts the async audit pipeline (the queue dispatcher).
type AuditSink interface {
	Enqueue(event ports.TripEventInput)
}

// TripService owns the trip lifecycle. Every mutation revalidates the state
// machine, recomputes the derived payment, and emits an audit event.
type TripService struct {
	trips ports.TripRepository
	users ports.UserRepository
	calc  billing.Calculator
	audit AuditSink
	log   zerolog.Logger
}

func NewTripService(
	trips ports.TripRepository,
	users ports.UserRepository,
	calc billing.Calculator,
	audit AuditSink,
	log zerolog.Logger,
) *TripService {
	return &TripService{trips: trips, users: users, calc: calc, audit: audit, log: log}
}

// Start opens a trip for the runner. A runner may have at most one open trip.
func (s *TripService) Start(ctx context.Context, in ports.StartTripInput) (*domain.Trip, error) {
	if in.RunnerID == "" || in.ManagerID == "" {
		return nil, fmt.Errorf("start trip: %w: runner and manager are required", domain.ErrInvalidInput)
	}

	manager, err := s.users.FindByID(ctx, in.ManagerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("start trip: %w: unknown manager", domain.ErrInvalidInput)
		}
		return nil, err
	}
	if manager.Role != domain.RoleManager {
		return nil, fmt.Errorf("start trip: %w: %s is not a manager", domain.ErrInvalidInput, in.ManagerID)
	}

	if _, err := s.trips.FindOpenByRunner(ctx, in.RunnerID); err == nil {
		return nil, domain.ErrOpenTripExists
	} else if !errors.Is(err, domain.ErrTripNotFound) {
		return nil, err
	}

	trip := &domain.Trip{
		RunnerID:  in.RunnerID,
		ManagerID: in.ManagerID,
		Status:    domain.StatusPending,
		StartTime: time.Now().UTC(),
		StartLat:  in.StartLat,
		StartLng:  in.StartLng,
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		// The repository enforces the one-open-trip invariant a second time via
		// a partial unique index; a duplicate here lost the race.
		return nil, err
	}

	metrics.TripsStartedTotal.Inc()
	s.log.Info().Str("trip_id", created.ID).Str("runner_id", in.RunnerID).Msg("trip started")
	s.emit(created, domain.ActionStarted, in.RunnerID)

	return created, nil
}

// Stop closes the running phase and computes the first payment figure from
// the runner-submitted distance.
func (s *TripService) Stop(ctx context.Context, in ports.StopTripInput) (*domain.Trip, error) {
	if in.Distance <= 0 {
		return nil, fmt.Errorf("stop trip: %w: distance must be positive", domain.ErrInvalidInput)
	}

	trip, err := s.trips.FindByID(ctx, in.TripID)
	if err != nil {
		return nil, err
	}
	if trip.RunnerID != in.ActorID {
		return nil, domain.ErrForbidden
	}
	if !trip.Open() {
		return nil, fmt.Errorf("stop trip: %w: trip already stopped", domain.ErrInvalidTripState)
	}

	upd := ports.StopUpdate{
		Distance: in.Distance,
		EndLat:   in.EndLat,
		EndLng:   in.EndLng,
		EndTime:  time.Now().UTC(),
		Payment:  s.calc.Payment(in.Distance, trip.Parking),
	}

	stopped, err := s.trips.Stop(ctx, in.TripID, upd)
	if err != nil {
		return nil, err
	}

	metrics.TripsStoppedTotal.Inc()
	metrics.PaymentRecomputesTotal.WithLabelValues("stop").Inc()
	s.log.Info().
		Str("trip_id", stopped.ID).
		Float64("distance", in.Distance).
		Float64("payment", stopped.Payment).
		Msg("trip stopped")
	s.emit(stopped, domain.ActionStopped, in.ActorID)

	return stopped, nil
}

// UpdateParking sets the parking charge on a stopped, not yet decided trip and
// recomputes the payment. Runners may only touch their own trips.
func (s *TripService) UpdateParking(ctx context.Context, tripID, actorID, actorRole string, parking float64) (*domain.Trip, error) {
	if parking < 0 {
		return nil, fmt.Errorf("update parking: %w: amount cannot be negative", domain.ErrInvalidInput)
	}

	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if actorRole == domain.RoleRunner && trip.RunnerID != actorID {
		return nil, domain.ErrForbidden
	}
	if !trip.Decidable() {
		return nil, fmt.Errorf("update parking: %w", domain.ErrInvalidTripState)
	}

	payment := s.calc.Payment(trip.EffectiveDistance(), parking)
	updated, err := s.trips.UpdateParking(ctx, tripID, parking, payment, trip.AdjustedDistance)
	if err != nil {
		return nil, err
	}

	metrics.PaymentRecomputesTotal.WithLabelValues("parking_update").Inc()
	s.log.Info().Str("trip_id", tripID).Float64("parking", parking).Float64("payment", payment).Msg("parking updated")
	s.emit(updated, domain.ActionParkingUpdated, actorID)

	return updated, nil
}

// AdjustDistance records the manager override. The runner-submitted distance
// is left intact for audit; billing switches to the adjusted value. Only the
// assigned manager may adjust.
func (s *TripService) AdjustDistance(ctx context.Context, tripID, managerID string, distance float64) (*domain.Trip, error) {
	if distance <= 0 {
		return nil, fmt.Errorf("adjust distance: %w: distance must be positive", domain.ErrInvalidInput)
	}

	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.ManagerID != managerID {
		return nil, domain.ErrForbidden
	}
	if !trip.Decidable() {
		return nil, fmt.Errorf("adjust distance: %w", domain.ErrInvalidTripState)
	}

	payment := s.calc.Payment(distance, trip.Parking)
	updated, err := s.trips.AdjustDistance(ctx, tripID, distance, payment, trip.Parking)
	if err != nil {
		return nil, err
	}

	metrics.PaymentRecomputesTotal.WithLabelValues("distance_adjustment").Inc()
	s.log.Info().
		Str("trip_id", tripID).
		Str("manager_id", managerID).
		Float64("adjusted_distance", distance).
		Float64("payment", payment).
		Msg("distance adjusted")
	s.emit(updated, domain.ActionDistanceAdjusted, managerID)

	return updated, nil
}

// Decide approves or declines a stopped pending trip. Only the manager the
// trip was assigned to may decide; the decision freezes the financials.
func (s *TripService) Decide(ctx context.Context, in ports.DecideTripInput) (*domain.Trip, error) {
	if !in.Status.Terminal() {
		return nil, fmt.Errorf("decide trip: %w: status must be approved or declined", domain.ErrInvalidInput)
	}

	trip, err := s.trips.FindByID(ctx, in.TripID)
	if err != nil {
		return nil, err
	}
	if trip.ManagerID != in.ManagerID {
		return nil, domain.ErrForbidden
	}
	if !trip.Status.CanTransitionTo(in.Status) || trip.Open() {
		return nil, fmt.Errorf("decide trip: %w (from %s)", domain.ErrInvalidTripState, trip.Status)
	}

	decided, err := s.trips.SetStatus(ctx, in.TripID, in.Status)
	if err != nil {
		return nil, err
	}

	metrics.TripDecisionsTotal.WithLabelValues(string(in.Status)).Inc()
	s.log.Info().Str("trip_id", in.TripID).Str("status", string(in.Status)).Msg("trip decided")

	action := domain.ActionApproved
	if in.Status == domain.StatusDeclined {
		action = domain.ActionDeclined
	}
	s.emit(decided, action, in.ManagerID)

	return decided, nil
}

// OpenTrip returns the runner's in-progress trip, or nil when none is open.
func (s *TripService) OpenTrip(ctx context.Context, runnerID string) (*domain.Trip, error) {
	trip, err := s.trips.FindOpenByRunner(ctx, runnerID)
	if err != nil {
		if errors.Is(err, domain.ErrTripNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return trip, nil
}

func (s *TripService) Filter(ctx context.Context, filter ports.TripFilter) ([]*domain.Trip, error) {
	return s.trips.List(ctx, filter)
}

func (s *TripService) emit(t *domain.Trip, action domain.TripAction, actorID string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.TripEventInput{
		TripID:    t.ID,
		Action:    action,
		ActorID:   actorID,
		Distance:  t.EffectiveDistance(),
		Parking:   t.Parking,
		Payment:   t.Payment,
		Timestamp: time.Now().UTC(),
	})
}
