package handlers

import (
	"net/http"
	"strconv"

	"outreach/internal/analytics"
	"outreach/internal/models"

	"github.com/labstack/echo/v4"
)

const maxRecentEvents = 200

// ActivityHandler summarises recorded outreach activity
// @Summary Activity summary
// @Description Counts of drafts, sends, failures and engagement checks for a period
// @Tags activity
// @Produce json
// @Param period query string false "today, yesterday, last_7_days or last_30_days" default(today)
// @Param recent query int false "Also return this many of the newest events (max 200)"
// @Success 200 {object} models.ActivityResponse
// @Failure 400 {object} models.ActivityResponse
// @Failure 503 {object} models.ActivityResponse
// @Router /api/activity [get]
func ActivityHandler(service *analytics.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if service == nil {
			return c.JSON(http.StatusServiceUnavailable, models.ActivityResponse{
				Success: false,
				Error:   "Activity log is not configured",
			})
		}

		period := c.QueryParam("period")
		if period == "" {
			period = analytics.PeriodToday
		}
		if !analytics.ValidPeriod(period) {
			return c.JSON(http.StatusBadRequest, models.ActivityResponse{
				Success: false,
				Error:   "Invalid period. Use today, yesterday, last_7_days or last_30_days",
			})
		}

		recent := 0
		if raw := c.QueryParam("recent"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 || n > maxRecentEvents {
				return c.JSON(http.StatusBadRequest, models.ActivityResponse{
					Success: false,
					Error:   "Invalid recent. Use a number from 0 to 200",
				})
			}
			recent = n
		}

		summary, err := service.GetSummary(c.Request().Context(), period)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ActivityResponse{
				Success: false,
				Error:   "Failed to load activity",
			})
		}

		response := models.ActivityResponse{Success: true, Summary: summary}
		if recent > 0 {
			if response.Recent, err = service.GetRecent(c.Request().Context(), recent); err != nil {
				return c.JSON(http.StatusInternalServerError, models.ActivityResponse{
					Success: false,
					Error:   "Failed to load activity",
				})
			}
		}
		return c.JSON(http.StatusOK, response)
	}
}
