package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

// TripHandler handles HTTP requests for the trip lifecycle.
type TripHandler struct {
	trips ports.TripService
	users ports.UserService
}

func NewTripHandler(trips ports.TripService, users ports.UserService) *TripHandler {
	return &TripHandler{trips: trips, users: users}
}

// Start handles POST /api/trip/start.
//
// @Summary      Start a trip for the authenticated runner
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      startTripRequest  true  "Assigned manager and start position"
// @Success      201   {object}  tripResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/trip/start [post]
func (h *TripHandler) Start(c echo.Context) error {
	var req startTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	runnerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	trip, err := h.trips.Start(c.Request().Context(), ports.StartTripInput{
		RunnerID:  runnerID,
		ManagerID: req.ManagerID,
		StartLat:  req.StartLat,
		StartLng:  req.StartLng,
	})
	if err != nil {
		return err
	}

	names := newNameCache(h.users)
	return c.JSON(http.StatusCreated, toTripResponse(c.Request().Context(), trip, names))
}

// Stop handles POST /api/trip/stop/:id.
//
// @Summary      Stop an in-progress trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Trip id"
// @Param        body  body      stopTripRequest  true  "Travelled distance and end position"
// @Success      200   {object}  tripResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/trip/stop/{id} [post]
func (h *TripHandler) Stop(c echo.Context) error {
	var req stopTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	runnerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	trip, err := h.trips.Stop(c.Request().Context(), ports.StopTripInput{
		TripID:   c.Param("id"),
		ActorID:  runnerID,
		Distance: req.Distance,
		EndLat:   req.EndLat,
		EndLng:   req.EndLng,
	})
	if err != nil {
		return err
	}

	names := newNameCache(h.users)
	return c.JSON(http.StatusOK, toTripResponse(c.Request().Context(), trip, names))
}

// UpdateParking handles POST /api/trip/update-parking/:id.
//
// @Summary      Set parking charges on a stopped, undecided trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Trip id"
// @Param        body  body      updateParkingRequest  true  "Parking charges"
// @Success      200   {object}  tripResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/trip/update-parking/{id} [post]
func (h *TripHandler) UpdateParking(c echo.Context) error {
	var req updateParkingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	actorID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	trip, err := h.trips.UpdateParking(c.Request().Context(), c.Param("id"), actorID, role, req.Parking)
	if err != nil {
		return err
	}

	names := newNameCache(h.users)
	return c.JSON(http.StatusOK, toTripResponse(c.Request().Context(), trip, names))
}

// UpdateDistance handles POST /api/trip/update-distance/:id.
//
// @Summary      Override the billable distance of a stopped, undecided trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Trip id"
// @Param        body  body      updateDistanceRequest  true  "Corrected distance in km"
// @Success      200   {object}  tripResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/trip/update-distance/{id} [post]
func (h *TripHandler) UpdateDistance(c echo.Context) error {
	var req updateDistanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	managerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	trip, err := h.trips.AdjustDistance(c.Request().Context(), c.Param("id"), managerID, req.Distance)
	if err != nil {
		return err
	}

	names := newNameCache(h.users)
	return c.JSON(http.StatusOK, toTripResponse(c.Request().Context(), trip, names))
}

// Decide handles POST /api/trip/approve.
//
// @Summary      Approve or decline a pending trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      decideTripRequest  true  "Trip id and decision"
// @Success      200   {object}  tripResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/trip/approve [post]
func (h *TripHandler) Decide(c echo.Context) error {
	var req decideTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	managerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	trip, err := h.trips.Decide(c.Request().Context(), ports.DecideTripInput{
		TripID:    req.TripID,
		ManagerID: managerID,
		Status:    domain.TripStatus(req.Status),
	})
	if err != nil {
		return err
	}

	names := newNameCache(h.users)
	return c.JSON(http.StatusOK, toTripResponse(c.Request().Context(), trip, names))
}

// Status handles GET /api/trip/status/:runnerId. It answers the "am I on a
// trip right now" question with 200 + trip or 204 when nothing is open.
//
// @Summary      Get the runner's currently open trip
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Param        runnerId  path      string  true  "Runner id"
// @Success      200       {object}  tripResponse
// @Success      204       "no open trip"
// @Router       /api/trip/status/{runnerId} [get]
func (h *TripHandler) Status(c echo.Context) error {
	trip, err := h.trips.OpenTrip(c.Request().Context(), c.Param("runnerId"))
	if err != nil {
		return err
	}
	if trip == nil {
		return c.NoContent(http.StatusNoContent)
	}
	names := newNameCache(h.users)
	return c.JSON(http.StatusOK, toTripResponse(c.Request().Context(), trip, names))
}

// Filter handles GET /api/trip/filter. Managers and admins list trips by
// runner, status and window; managers are pinned to their own assignments.
//
// @Summary      List trips by runner, status and time window
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Param        runnerId  query     string  false  "Runner id"
// @Param        status    query     string  false  "pending, approved, declined or all"
// @Param        from      query     string  false  "Window start (RFC 3339), inclusive"
// @Param        to        query     string  false  "Window end (RFC 3339), exclusive"
// @Success      200       {array}   tripResponse
// @Failure      400       {object}  errorResponse
// @Router       /api/trip/filter [get]
func (h *TripHandler) Filter(c echo.Context) error {
	actorID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	filter := ports.TripFilter{
		RunnerID:  c.QueryParam("runnerId"),
		ManagerID: c.QueryParam("managerId"),
		Status:    c.QueryParam("status"),
	}
	// Managers only ever see their own assignments regardless of the query.
	if role == domain.RoleManager {
		filter.ManagerID = actorID
	}
	if filter.From, err = parseTimeParam(c.QueryParam("from")); err != nil {
		return err
	}
	if filter.To, err = parseTimeParam(c.QueryParam("to")); err != nil {
		return err
	}

	trips, err := h.trips.Filter(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	names := newNameCache(h.users)
	return c.JSON(http.StatusOK, toTripListResponse(c.Request().Context(), trips, names))
}

// FilterRunner handles POST /api/trip/filter-runner/:runnerId, the runner's
// own history view with optional manager, status and range-preset filters.
//
// @Summary      List a runner's own trips
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        runnerId  path      string               true  "Runner id"
// @Param        body      body      filterRunnerRequest  true  "Optional filters"
// @Success      200       {array}   tripResponse
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Router       /api/trip/filter-runner/{runnerId} [post]
func (h *TripHandler) FilterRunner(c echo.Context) error {
	var req filterRunnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	actorID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	runnerID := c.Param("runnerId")
	if role == domain.RoleRunner && runnerID != actorID {
		return domain.ErrForbidden
	}

	filter := ports.TripFilter{
		RunnerID:  runnerID,
		ManagerID: req.ManagerID,
		Status:    req.Status,
	}
	if req.Range != "" {
		from, to, err := windowFromPreset(req.Range)
		if err != nil {
			return err
		}
		filter.From, filter.To = from, to
	}

	trips, err := h.trips.Filter(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	names := newNameCache(h.users)
	return c.JSON(http.StatusOK, toTripListResponse(c.Request().Context(), trips, names))
}

// Pending handles GET /api/trips/pending: the manager's decision queue of
// stopped, undecided trips. Open trips are pending too but not yet decidable,
// so they are excluded.
//
// @Summary      List the manager's trips awaiting a decision
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  tripResponse
// @Router       /api/trips/pending [get]
func (h *TripHandler) Pending(c echo.Context) error {
	managerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	trips, err := h.trips.Filter(c.Request().Context(), ports.TripFilter{
		ManagerID:   managerID,
		Status:      string(domain.StatusPending),
		OnlyStopped: true,
	})
	if err != nil {
		return err
	}

	names := newNameCache(h.users)
	return c.JSON(http.StatusOK, toTripListResponse(c.Request().Context(), trips, names))
}

func windowFromPreset(preset string) (time.Time, time.Time, error) {
	return ports.PresetWindow(preset, time.Now().UTC())
}

func parseTimeParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "time parameters must be RFC 3339")
	}
	return t.UTC(), nil
}
