package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

// ReportHandler serves the aggregation endpoints behind the summary and
// report screens. Every endpoint funnels through the same aggregation
// engine so the numbers agree across screens.
type ReportHandler struct {
	reports ports.ReportService
	trips   ports.TripService
	users   ports.UserService
}

func NewReportHandler(reports ports.ReportService, trips ports.TripService, users ports.UserService) *ReportHandler {
	return &ReportHandler{reports: reports, trips: trips, users: users}
}

// runnerScope rejects runners peeking at another runner's figures. Managers
// and admins may read any runner.
func runnerScope(c echo.Context) (string, error) {
	actorID, role, err := ctxIdentity(c)
	if err != nil {
		return "", err
	}
	runnerID := c.Param("runnerId")
	if role == domain.RoleRunner && runnerID != actorID {
		return "", domain.ErrForbidden
	}
	return runnerID, nil
}

// Summary handles GET /api/trip/summary/:runnerId, the trailing-week totals.
//
// @Summary      Weekly totals for a runner
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        runnerId  path      string  true  "Runner id"
// @Success      200       {object}  summaryResponse
// @Failure      403       {object}  errorResponse
// @Router       /api/trip/summary/{runnerId} [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	runnerID, err := runnerScope(c)
	if err != nil {
		return err
	}
	sum, err := h.reports.SummarizePreset(c.Request().Context(), runnerID, ports.WindowWeekly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(sum))
}

// SummaryToday handles GET /api/trip/summary-today/:runnerId, the trailing
// 24 hour totals.
//
// @Summary      Daily totals for a runner
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        runnerId  path      string  true  "Runner id"
// @Success      200       {object}  summaryResponse
// @Failure      403       {object}  errorResponse
// @Router       /api/trip/summary-today/{runnerId} [get]
func (h *ReportHandler) SummaryToday(c echo.Context) error {
	runnerID, err := runnerScope(c)
	if err != nil {
		return err
	}
	sum, err := h.reports.SummarizePreset(c.Request().Context(), runnerID, ports.WindowDaily)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(sum))
}

// SummaryList handles GET /api/trip/summary-list/:runnerId?range=, the trip
// rows rendered under the totals on the report screen.
//
// @Summary      A runner's trips for the report screen
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        runnerId  path      string  true   "Runner id"
// @Param        range     query     string  false  "daily, weekly or monthly (default weekly)"
// @Success      200       {array}   tripResponse
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Router       /api/trip/summary-list/{runnerId} [get]
func (h *ReportHandler) SummaryList(c echo.Context) error {
	runnerID, err := runnerScope(c)
	if err != nil {
		return err
	}
	from, to, err := windowFromPreset(c.QueryParam("range"))
	if err != nil {
		return err
	}

	trips, err := h.trips.Filter(c.Request().Context(), ports.TripFilter{
		RunnerID: runnerID,
		From:     from,
		To:       to,
	})
	if err != nil {
		return err
	}

	names := newNameCache(h.users)
	return c.JSON(http.StatusOK, toTripListResponse(c.Request().Context(), trips, names))
}

// PendingCount handles GET /api/trip/pending-count/:runnerId: how many of the
// runner's trips each manager has yet to decide.
//
// @Summary      Pending trips per manager for a runner
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        runnerId  path      string  true  "Runner id"
// @Success      200       {array}   pendingCountResponse
// @Failure      403       {object}  errorResponse
// @Router       /api/trip/pending-count/{runnerId} [get]
func (h *ReportHandler) PendingCount(c echo.Context) error {
	runnerID, err := runnerScope(c)
	if err != nil {
		return err
	}
	counts, err := h.reports.PendingCounts(c.Request().Context(), runnerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPendingCountResponse(counts))
}

// Report handles GET /api/trip/report/:runnerId?from=&to=, the same totals
// over explicit RFC 3339 bounds instead of a preset.
//
// @Summary      Totals for a runner over an explicit window
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        runnerId  path      string  true  "Runner id"
// @Param        from      query     string  true  "Window start (RFC 3339), inclusive"
// @Param        to        query     string  true  "Window end (RFC 3339), exclusive"
// @Success      200       {object}  summaryResponse
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Router       /api/trip/report/{runnerId} [get]
func (h *ReportHandler) Report(c echo.Context) error {
	runnerID, err := runnerScope(c)
	if err != nil {
		return err
	}

	from, err := parseTimeParam(c.QueryParam("from"))
	if err != nil {
		return err
	}
	to, err := parseTimeParam(c.QueryParam("to"))
	if err != nil {
		return err
	}
	if from.IsZero() || to.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "from and to are required")
	}
	if !to.After(from) {
		return echo.NewHTTPError(http.StatusBadRequest, "to must be after from")
	}

	sum, err := h.reports.Summarize(c.Request().Context(), runnerID, from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(sum))
}
