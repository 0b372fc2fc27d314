package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

// AdminHandler covers account administration and the system-wide views.
type AdminHandler struct {
	users   ports.UserService
	auth    ports.AuthService
	reports ports.ReportService
}

func NewAdminHandler(users ports.UserService, auth ports.AuthService, reports ports.ReportService) *AdminHandler {
	return &AdminHandler{users: users, auth: auth, reports: reports}
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Phone    string `json:"phone"    validate:"required,min=7"`
	Password string `json:"password" validate:"required,min=6"`
}

type resetPasswordRequest struct {
	Phone       string `json:"phone"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type adminStatsResponse struct {
	TotalRunners  int64 `json:"totalRunners"`
	TotalManagers int64 `json:"totalManagers"`
	TotalTrips    int64 `json:"totalTrips"`
	ApprovedTrips int64 `json:"approvedTrips"`
	DeclinedTrips int64 `json:"declinedTrips"`
	PendingTrips  int64 `json:"pendingTrips"`
}

type billingPartyResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type billingRowResponse struct {
	TripID         string               `json:"tripId"`
	Runner         billingPartyResponse `json:"runner"`
	Manager        billingPartyResponse `json:"manager"`
	Distance       float64              `json:"distance"`
	ParkingCharges float64              `json:"parkingCharges"`
	Payment        float64              `json:"payment"`
}

type billingExportResponse struct {
	BatchID     string               `json:"batchId"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Rows        []billingRowResponse `json:"rows"`
}

// CreateRunner handles POST /api/admin/create-runner.
//
// @Summary      Create a runner account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/create-runner [post]
func (h *AdminHandler) CreateRunner(c echo.Context) error {
	return h.createUser(c, domain.RoleRunner)
}

// CreateManager handles POST /api/admin/create-manager.
//
// @Summary      Create a manager account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/create-manager [post]
func (h *AdminHandler) CreateManager(c echo.Context) error {
	return h.createUser(c, domain.RoleManager)
}

func (h *AdminHandler) createUser(c echo.Context, role string) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.Request().Context(), req.Name, req.Phone, req.Password, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// ResetPassword handles POST /api/admin/reset-password. Admins reset forgotten
// credentials; there is no self-service flow.
//
// @Summary      Reset a user's password
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resetPasswordRequest  true  "Phone and new password"
// @Success      204   "password updated"
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/reset-password [post]
func (h *AdminHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Phone, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AllUsers handles GET /api/admin/all-users.
//
// @Summary      List every account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /api/admin/all-users [get]
func (h *AdminHandler) AllUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Stats handles GET /api/admin/stats.
//
// @Summary      System-wide aggregate counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminStatsResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.reports.AdminStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminStatsResponse{
		TotalRunners:  stats.TotalRunners,
		TotalManagers: stats.TotalManagers,
		TotalTrips:    stats.TotalTrips,
		ApprovedTrips: stats.ApprovedTrips,
		DeclinedTrips: stats.DeclinedTrips,
		PendingTrips:  stats.PendingTrips,
	})
}

// BillingExport handles GET /api/admin/billing-export, a snapshot of every
// approved trip as a payable line.
//
// @Summary      Export approved trips for payroll
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  billingExportResponse
// @Router       /api/admin/billing-export [get]
func (h *AdminHandler) BillingExport(c echo.Context) error {
	export, err := h.reports.BillingExport(c.Request().Context())
	if err != nil {
		return err
	}

	rows := make([]billingRowResponse, len(export.Rows))
	for i, row := range export.Rows {
		rows[i] = billingRowResponse{
			TripID:         row.TripID,
			Runner:         toBillingParty(row.Runner),
			Manager:        toBillingParty(row.Manager),
			Distance:       row.Distance,
			ParkingCharges: row.ParkingCharges,
			Payment:        row.Payment,
		}
	}
	return c.JSON(http.StatusOK, billingExportResponse{
		BatchID:     export.BatchID,
		GeneratedAt: export.GeneratedAt,
		Rows:        rows,
	})
}

func toBillingParty(u *domain.User) billingPartyResponse {
	if u == nil {
		return billingPartyResponse{}
	}
	return billingPartyResponse{Name: u.Name, Phone: u.Phone}
}
