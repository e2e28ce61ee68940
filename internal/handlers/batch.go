package handlers

import (
	"net/http"

	"outreach/internal/models"
	"outreach/internal/session"

	"github.com/labstack/echo/v4"
)

// ListBatchHandler returns the leads waiting for draft generation
// @Summary List batch
// @Tags intake
// @Produce json
// @Success 200 {array} models.Lead
// @Router /api/batch [get]
func ListBatchHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, controller.Batch())
	}
}

// AddLeadHandler adds one lead to the batch
// @Summary Add lead
// @Tags intake
// @Accept json
// @Produce json
// @Param request body models.LeadForm true "Lead"
// @Success 201 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /api/batch [post]
func AddLeadHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form models.LeadForm
		if err := c.Bind(&form); err != nil {
			return badRequest(c, "Invalid request body")
		}

		lead, message, err := controller.AddLead(form)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusCreated, models.APIResponse{Success: true, Message: message, Data: lead})
	}
}

// AddBulkHandler parses comma-separated lead lines into the batch
// @Summary Bulk add leads
// @Description One lead per line: Name, Company, CompanyURL, LinkedInURL, Email[, Channel]
// @Tags intake
// @Accept json
// @Produce json
// @Param request body models.BulkRequest true "Lead lines"
// @Success 201 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /api/batch/bulk [post]
func AddBulkHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.BulkRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		leads, message, err := controller.AddBulk(req.Text)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusCreated, models.APIResponse{Success: true, Message: message, Data: leads})
	}
}

// RemoveBatchLeadHandler drops one lead from the batch
// @Summary Remove batch lead
// @Tags intake
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/batch/{id} [delete]
func RemoveBatchLeadHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := controller.RemoveBatchLead(c.Param("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, models.APIResponse{Success: true})
	}
}

// ClearBatchHandler empties the batch
// @Summary Clear batch
// @Tags intake
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /api/batch [delete]
func ClearBatchHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		controller.ClearBatch()
		return c.JSON(http.StatusOK, models.APIResponse{Success: true})
	}
}
