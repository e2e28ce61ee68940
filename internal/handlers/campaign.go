package handlers

import (
	"net/http"

	"outreach/internal/models"
	"outreach/internal/session"

	"github.com/labstack/echo/v4"
)

// GenerateDraftsHandler runs the campaign orchestrator over the batch
// @Summary Generate drafts
// @Description Researches every batch lead and writes outreach drafts. The batch moves into the review queue.
// @Tags campaign
// @Produce json
// @Success 200 {object} models.DraftsResponse
// @Failure 400 {object} models.DraftsResponse
// @Failure 409 {object} models.DraftsResponse
// @Failure 502 {object} models.DraftsResponse
// @Failure 504 {object} models.DraftsResponse
// @Router /api/drafts [post]
func GenerateDraftsHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		outcome, err := controller.GenerateDrafts(c.Request().Context())
		if err != nil {
			return c.JSON(statusFor(err), models.DraftsResponse{
				Success: false,
				Error:   errorText(controller, err),
			})
		}

		return c.JSON(http.StatusOK, models.DraftsResponse{
			Success:             true,
			Message:             outcome.Message,
			Drafted:             outcome.Drafted,
			AverageQualityScore: outcome.AverageQualityScore,
		})
	}
}

// ReviewHandler returns the drafted leads awaiting approval
// @Summary Review queue
// @Tags review
// @Produce json
// @Success 200 {object} stats.ReviewQueue
// @Router /api/review [get]
func ReviewHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, controller.Review())
	}
}

// ApproveAllHandler approves or un-approves every drafted lead
// @Summary Set approval for all drafts
// @Tags review
// @Accept json
// @Produce json
// @Param request body models.ApprovalRequest true "Approval"
// @Success 200 {object} models.APIResponse
// @Router /api/review/approval [put]
func ApproveAllHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ApprovalRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		count := controller.SetAllApproval(req.Approved)
		return c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: map[string]int{"updated": count}})
	}
}

// SendHandler delivers every approved draft, one lead at a time
// @Summary Send approved drafts
// @Description Failed items are reported in the results and stay approved for a retry. Progress is visible on /api/status while the run lasts.
// @Tags campaign
// @Produce json
// @Success 200 {object} models.SendResponse
// @Failure 400 {object} models.SendResponse
// @Failure 409 {object} models.SendResponse
// @Router /api/send [post]
func SendHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		outcome, err := controller.SendApproved(c.Request().Context())
		if outcome == nil {
			return c.JSON(statusFor(err), models.SendResponse{
				Success: false,
				Error:   err.Error(),
				Results: []models.SendResult{},
			})
		}

		response := models.SendResponse{
			Success:   err == nil,
			Message:   outcome.Message,
			Results:   outcome.Results,
			Succeeded: outcome.Succeeded,
			Failed:    outcome.Failed,
		}
		if err != nil {
			response.Error = err.Error()
		}
		return c.JSON(http.StatusOK, response)
	}
}

// SendResultsHandler returns the results of the last send run
// @Summary Last send results
// @Tags campaign
// @Produce json
// @Success 200 {array} models.SendResult
// @Router /api/send/results [get]
func SendResultsHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, controller.SendResults())
	}
}

// CheckEngagementHandler runs the engagement monitor over sent leads
// @Summary Check engagement
// @Tags engagement
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse
// @Failure 504 {object} models.APIResponse
// @Router /api/engagement/check [post]
func CheckEngagementHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		outcome, err := controller.CheckEngagement(c.Request().Context())
		if err != nil {
			return c.JSON(statusFor(err), models.APIResponse{
				Success: false,
				Error:   errorText(controller, err),
			})
		}
		return c.JSON(http.StatusOK, models.APIResponse{
			Success: true,
			Message: outcome.Message,
			Data:    outcome.Report,
		})
	}
}

// EngagementHandler returns the engagement tracker view
// @Summary Engagement results
// @Tags engagement
// @Produce json
// @Param filter query string false "all, hot, no_response or replied" default(all)
// @Success 200 {object} models.EngagementView
// @Failure 400 {object} models.APIResponse
// @Router /api/engagement [get]
func EngagementHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		view, err := controller.Engagement(c.QueryParam("filter"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, view)
	}
}

// errorText prefers the alert the controller recorded for a failed agent run
func errorText(controller *session.Controller, err error) string {
	if statusFor(err) >= http.StatusBadGateway {
		if message := controller.Status().ErrorMessage; message != "" {
			return message
		}
	}
	return err.Error()
}
