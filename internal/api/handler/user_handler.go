package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

// UserHandler serves the directory lookups available to every role.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Managers handles GET /api/managers. Runners call this to pick the manager
// a trip is billed against.
//
// @Summary      List manager accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /api/managers [get]
func (h *UserHandler) Managers(c echo.Context) error {
	managers, err := h.users.ListManagers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, managers)
}
