package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

type stubTripService struct {
	startFn         func(ctx context.Context, in ports.StartTripInput) (*domain.Trip, error)
	stopFn          func(ctx context.Context, in ports.StopTripInput) (*domain.Trip, error)
	updateParkingFn func(ctx context.Context, tripID, actorID, actorRole string, parking float64) (*domain.Trip, error)
	adjustFn        func(ctx context.Context, tripID, managerID string, distance float64) (*domain.Trip, error)
	decideFn        func(ctx context.Context, in ports.DecideTripInput) (*domain.Trip, error)
	openFn          func(ctx context.Context, runnerID string) (*domain.Trip, error)
	filterFn        func(ctx context.Context, filter ports.TripFilter) ([]*domain.Trip, error)
}

func (s *stubTripService) Start(ctx context.Context, in ports.StartTripInput) (*domain.Trip, error) {
	return s.startFn(ctx, in)
}

func (s *stubTripService) Stop(ctx context.Context, in ports.StopTripInput) (*domain.Trip, error) {
	return s.stopFn(ctx, in)
}

func (s *stubTripService) UpdateParking(ctx context.Context, tripID, actorID, actorRole string, parking float64) (*domain.Trip, error) {
	return s.updateParkingFn(ctx, tripID, actorID, actorRole, parking)
}

func (s *stubTripService) AdjustDistance(ctx context.Context, tripID, managerID string, distance float64) (*domain.Trip, error) {
	return s.adjustFn(ctx, tripID, managerID, distance)
}

func (s *stubTripService) Decide(ctx context.Context, in ports.DecideTripInput) (*domain.Trip, error) {
	return s.decideFn(ctx, in)
}

func (s *stubTripService) OpenTrip(ctx context.Context, runnerID string) (*domain.Trip, error) {
	return s.openFn(ctx, runnerID)
}

func (s *stubTripService) Filter(ctx context.Context, filter ports.TripFilter) ([]*domain.Trip, error) {
	return s.filterFn(ctx, filter)
}

type stubUserService struct {
	users map[string]*domain.User
}

func newStubUserService(users ...*domain.User) *stubUserService {
	s := &stubUserService{users: make(map[string]*domain.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUserService) CreateUser(_ context.Context, name, phone, password, role string) (*domain.User, error) {
	u := &domain.User{ID: "user_new", Name: name, Phone: phone, Role: role}
	s.users[u.ID] = u
	return u, nil
}

func (s *stubUserService) GetUser(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserService) ListManagers(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range s.users {
		if u.Role == domain.RoleManager {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubUserService) ListUsers(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func directoryUsers() *stubUserService {
	return newStubUserService(
		&domain.User{ID: "run_1", Name: "Ravi", Role: domain.RoleRunner},
		&domain.User{ID: "mgr_1", Name: "Meera", Role: domain.RoleManager},
	)
}

func sampleTrip() *domain.Trip {
	end := time.Date(2026, 8, 15, 11, 0, 0, 0, time.UTC)
	return &domain.Trip{
		ID:        "trip_1",
		RunnerID:  "run_1",
		ManagerID: "mgr_1",
		Status:    domain.StatusPending,
		StartTime: end.Add(-time.Hour),
		EndTime:   &end,
		Distance:  10,
		Parking:   5,
		Payment:   105,
	}
}

func asRole(c echo.Context, userID, role string) {
	c.Set("user_id", userID)
	c.Set("name", "Test User")
	c.Set("role", role)
}

func TestTripHandler_Start_Success(t *testing.T) {
	trips := &stubTripService{
		startFn: func(ctx context.Context, in ports.StartTripInput) (*domain.Trip, error) {
			if in.RunnerID != "run_1" || in.ManagerID != "mgr_1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Trip{ID: "trip_1", RunnerID: in.RunnerID, ManagerID: in.ManagerID, Status: domain.StatusPending, StartTime: time.Now().UTC()}, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, rec := newTestContext(t, http.MethodPost, "/api/trip/start", `{"managerId":"mgr_1","startLat":28.61,"startLng":77.21}`)
	asRole(c, "run_1", domain.RoleRunner)

	if err := handler.Start(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "trip_1" || resp["status"] != "pending" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["runnerName"] != "Ravi" || resp["managerName"] != "Meera" {
		t.Fatalf("expected resolved names, got %+v", resp)
	}
}

func TestTripHandler_Start_MissingManager(t *testing.T) {
	trips := &stubTripService{
		startFn: func(ctx context.Context, in ports.StartTripInput) (*domain.Trip, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, _ := newTestContext(t, http.MethodPost, "/api/trip/start", `{"startLat":1,"startLng":2}`)
	asRole(c, "run_1", domain.RoleRunner)

	if code := httpCode(t, handler.Start(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestTripHandler_Start_NoClaims(t *testing.T) {
	handler := NewTripHandler(&stubTripService{}, directoryUsers())

	c, _ := newTestContext(t, http.MethodPost, "/api/trip/start", `{"managerId":"mgr_1"}`)
	if code := httpCode(t, handler.Start(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestTripHandler_Stop_Success(t *testing.T) {
	trips := &stubTripService{
		stopFn: func(ctx context.Context, in ports.StopTripInput) (*domain.Trip, error) {
			if in.TripID != "trip_1" || in.ActorID != "run_1" || in.Distance != 12.5 {
				t.Fatalf("unexpected input: %+v", in)
			}
			trip := sampleTrip()
			trip.Distance = in.Distance
			trip.Payment = 125
			return trip, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, rec := newTestContext(t, http.MethodPost, "/api/trip/stop/trip_1", `{"distance":12.5,"endLat":28.7,"endLng":77.3}`)
	c.SetParamNames("id")
	c.SetParamValues("trip_1")
	asRole(c, "run_1", domain.RoleRunner)

	if err := handler.Stop(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["payment"] != 125.0 {
		t.Fatalf("expected payment 125, got %v", resp["payment"])
	}
	if resp["finalKm"] != 12.5 {
		t.Fatalf("expected finalKm 12.5, got %v", resp["finalKm"])
	}
}

func TestTripHandler_Stop_ZeroDistance(t *testing.T) {
	trips := &stubTripService{
		stopFn: func(ctx context.Context, in ports.StopTripInput) (*domain.Trip, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, _ := newTestContext(t, http.MethodPost, "/api/trip/stop/trip_1", `{"distance":0}`)
	c.SetParamNames("id")
	c.SetParamValues("trip_1")
	asRole(c, "run_1", domain.RoleRunner)

	if code := httpCode(t, handler.Stop(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestTripHandler_UpdateParking_PassesActor(t *testing.T) {
	trips := &stubTripService{
		updateParkingFn: func(ctx context.Context, tripID, actorID, actorRole string, parking float64) (*domain.Trip, error) {
			if tripID != "trip_1" || actorID != "run_1" || actorRole != domain.RoleRunner || parking != 20 {
				t.Fatalf("unexpected args: %s %s %s %v", tripID, actorID, actorRole, parking)
			}
			trip := sampleTrip()
			trip.Parking = parking
			trip.Payment = 120
			return trip, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, rec := newTestContext(t, http.MethodPost, "/api/trip/update-parking/trip_1", `{"parking":20}`)
	c.SetParamNames("id")
	c.SetParamValues("trip_1")
	asRole(c, "run_1", domain.RoleRunner)

	if err := handler.UpdateParking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTripHandler_UpdateParking_NegativeAmount(t *testing.T) {
	trips := &stubTripService{
		updateParkingFn: func(ctx context.Context, tripID, actorID, actorRole string, parking float64) (*domain.Trip, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, _ := newTestContext(t, http.MethodPost, "/api/trip/update-parking/trip_1", `{"parking":-1}`)
	c.SetParamNames("id")
	c.SetParamValues("trip_1")
	asRole(c, "run_1", domain.RoleRunner)

	if code := httpCode(t, handler.UpdateParking(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestTripHandler_Decide_ForwardsManagerFromToken(t *testing.T) {
	trips := &stubTripService{
		decideFn: func(ctx context.Context, in ports.DecideTripInput) (*domain.Trip, error) {
			if in.ManagerID != "mgr_1" {
				t.Fatalf("manager must come from the token, got %s", in.ManagerID)
			}
			if in.Status != domain.StatusDeclined {
				t.Fatalf("unexpected status: %s", in.Status)
			}
			trip := sampleTrip()
			trip.Status = in.Status
			return trip, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, rec := newTestContext(t, http.MethodPost, "/api/trip/approve", `{"tripId":"trip_1","status":"declined"}`)
	asRole(c, "mgr_1", domain.RoleManager)

	if err := handler.Decide(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTripHandler_Decide_BadStatus(t *testing.T) {
	trips := &stubTripService{
		decideFn: func(ctx context.Context, in ports.DecideTripInput) (*domain.Trip, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, _ := newTestContext(t, http.MethodPost, "/api/trip/approve", `{"tripId":"trip_1","status":"maybe"}`)
	asRole(c, "mgr_1", domain.RoleManager)

	if code := httpCode(t, handler.Decide(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestTripHandler_Decide_WrongManager(t *testing.T) {
	trips := &stubTripService{
		decideFn: func(ctx context.Context, in ports.DecideTripInput) (*domain.Trip, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, _ := newTestContext(t, http.MethodPost, "/api/trip/approve", `{"tripId":"trip_1","status":"approved"}`)
	asRole(c, "mgr_2", domain.RoleManager)

	if err := handler.Decide(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTripHandler_Status_NoOpenTrip(t *testing.T) {
	trips := &stubTripService{
		openFn: func(ctx context.Context, runnerID string) (*domain.Trip, error) {
			return nil, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, rec := newTestContext(t, http.MethodGet, "/api/trip/status/run_1", "")
	c.SetParamNames("runnerId")
	c.SetParamValues("run_1")
	asRole(c, "run_1", domain.RoleRunner)

	if err := handler.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestTripHandler_Filter_ManagerPinnedToOwnTrips(t *testing.T) {
	trips := &stubTripService{
		filterFn: func(ctx context.Context, filter ports.TripFilter) ([]*domain.Trip, error) {
			if filter.ManagerID != "mgr_1" {
				t.Fatalf("manager filter must be pinned to the caller, got %q", filter.ManagerID)
			}
			return []*domain.Trip{sampleTrip()}, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, rec := newTestContext(t, http.MethodGet, "/api/trip/filter?managerId=mgr_2&status=pending", "")
	asRole(c, "mgr_1", domain.RoleManager)

	if err := handler.Filter(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTripHandler_Filter_BadTimeBound(t *testing.T) {
	handler := NewTripHandler(&stubTripService{}, directoryUsers())

	c, _ := newTestContext(t, http.MethodGet, "/api/trip/filter?from=yesterday", "")
	asRole(c, "mgr_1", domain.RoleManager)

	if code := httpCode(t, handler.Filter(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestTripHandler_FilterRunner_OtherRunnerForbidden(t *testing.T) {
	handler := NewTripHandler(&stubTripService{}, directoryUsers())

	c, _ := newTestContext(t, http.MethodPost, "/api/trip/filter-runner/run_2", `{}`)
	c.SetParamNames("runnerId")
	c.SetParamValues("run_2")
	asRole(c, "run_1", domain.RoleRunner)

	if err := handler.FilterRunner(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTripHandler_FilterRunner_RangePresetSetsWindow(t *testing.T) {
	trips := &stubTripService{
		filterFn: func(ctx context.Context, filter ports.TripFilter) ([]*domain.Trip, error) {
			if filter.RunnerID != "run_1" {
				t.Fatalf("unexpected runner filter: %q", filter.RunnerID)
			}
			if filter.From.IsZero() || filter.To.IsZero() {
				t.Fatalf("range preset must set window bounds")
			}
			return nil, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, rec := newTestContext(t, http.MethodPost, "/api/trip/filter-runner/run_1", `{"range":"daily"}`)
	c.SetParamNames("runnerId")
	c.SetParamValues("run_1")
	asRole(c, "run_1", domain.RoleRunner)

	if err := handler.FilterRunner(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTripHandler_FilterRunner_BadRange(t *testing.T) {
	handler := NewTripHandler(&stubTripService{}, directoryUsers())

	c, _ := newTestContext(t, http.MethodPost, "/api/trip/filter-runner/run_1", `{"range":"yearly"}`)
	c.SetParamNames("runnerId")
	c.SetParamValues("run_1")
	asRole(c, "run_1", domain.RoleRunner)

	if code := httpCode(t, handler.FilterRunner(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestTripHandler_Pending_QueriesManagerQueue(t *testing.T) {
	trips := &stubTripService{
		filterFn: func(ctx context.Context, filter ports.TripFilter) ([]*domain.Trip, error) {
			if filter.ManagerID != "mgr_1" || filter.Status != string(domain.StatusPending) || !filter.OnlyStopped {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			return []*domain.Trip{sampleTrip()}, nil
		},
	}
	handler := NewTripHandler(trips, directoryUsers())

	c, rec := newTestContext(t, http.MethodGet, "/api/trips/pending", "")
	asRole(c, "mgr_1", domain.RoleManager)

	if err := handler.Pending(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["id"] != "trip_1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
