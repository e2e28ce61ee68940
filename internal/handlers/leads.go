package handlers

import (
	"net/http"

	"outreach/internal/models"
	"outreach/internal/session"

	"github.com/labstack/echo/v4"
)

// ListLeadsHandler returns the lead collection
// @Summary List leads
// @Tags leads
// @Produce json
// @Param status query string false "Only leads with this status"
// @Success 200 {array} models.Lead
// @Failure 400 {object} models.APIResponse
// @Router /api/leads [get]
func ListLeadsHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := models.Status(c.QueryParam("status"))
		if status != "" && !status.Valid() {
			return badRequest(c, "Unknown status: "+string(status))
		}
		return c.JSON(http.StatusOK, controller.Leads(status))
	}
}

// GetLeadHandler returns one lead with its research tags
// @Summary Get lead
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} session.LeadDetail
// @Failure 404 {object} models.APIResponse
// @Router /api/leads/{id} [get]
func GetLeadHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		detail, err := controller.LeadDetail(c.Param("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, detail)
	}
}

// EditDraftHandler updates the draft text of a lead under review
// @Summary Edit draft
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body models.DraftEdit true "Fields to change"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /api/leads/{id}/draft [patch]
func EditDraftHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var edit models.DraftEdit
		if err := c.Bind(&edit); err != nil {
			return badRequest(c, "Invalid request body")
		}

		lead, err := controller.EditDraft(c.Param("id"), edit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: lead})
	}
}

// ApprovalHandler approves or un-approves one drafted lead
// @Summary Set approval
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body models.ApprovalRequest true "Approval"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /api/leads/{id}/approval [put]
func ApprovalHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ApprovalRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		lead, err := controller.SetApproval(c.Param("id"), req.Approved)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: lead})
	}
}

// StatusHandler moves a lead to another status, e.g. closing it
// @Summary Change lead status
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body models.StatusRequest true "Target status"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /api/leads/{id}/status [put]
func StatusHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.StatusRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		lead, err := controller.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: lead})
	}
}

// DeleteLeadHandler removes a lead
// @Summary Delete lead
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/leads/{id} [delete]
func DeleteLeadHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := controller.RemoveLead(c.Param("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, models.APIResponse{Success: true})
	}
}
