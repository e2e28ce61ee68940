package handlers

import (
	"net/http"

	"outreach/internal/session"

	"github.com/labstack/echo/v4"
)

// SessionStatusHandler returns the loading bar and alert state
// @Summary Action status
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.SessionStatus
// @Router /api/status [get]
func SessionStatusHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, controller.Status())
	}
}

// DashboardHandler returns counters, the pipeline board and stale lead ids
// @Summary Dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} session.Dashboard
// @Router /api/dashboard [get]
func DashboardHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, controller.Dashboard())
	}
}
