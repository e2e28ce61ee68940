package handlers

import (
	"errors"
	"net/http"

	"outreach/internal/delivery"
	"outreach/internal/models"
	"outreach/internal/session"

	"github.com/labstack/echo/v4"
)

// GetSettingsHandler returns the outreach settings
// @Summary Get settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.Settings
// @Router /api/settings [get]
func GetSettingsHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, controller.Settings())
	}
}

// UpdateSettingsHandler replaces the outreach settings
// @Summary Update settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body models.Settings true "Settings"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /api/settings [put]
func UpdateSettingsHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var s models.Settings
		if err := c.Bind(&s); err != nil {
			return badRequest(c, "Invalid request body")
		}

		updated, err := controller.UpdateSettings(s)
		if err != nil {
			return badRequest(c, err.Error())
		}
		return c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: "Settings saved.", Data: updated})
	}
}

// SampleDataHandler switches sample-data mode
// @Summary Toggle sample data
// @Tags settings
// @Accept json
// @Produce json
// @Param request body models.SampleDataRequest true "Mode"
// @Success 200 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /api/sample-data [put]
func SampleDataHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.SampleDataRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := controller.SetSampleData(req.Enabled); err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: controller.Status()})
	}
}

// ListSendersHandler returns the sender accounts
// @Summary List sender accounts
// @Tags senders
// @Produce json
// @Success 200 {array} models.SenderAccount
// @Router /api/senders [get]
func ListSendersHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, controller.Senders().List())
	}
}

// AddSenderHandler adds a sender account
// @Summary Add sender account
// @Tags senders
// @Accept json
// @Produce json
// @Param request body models.SenderAccount true "Account"
// @Success 201 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /api/senders [post]
func AddSenderHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var account models.SenderAccount
		if err := c.Bind(&account); err != nil {
			return badRequest(c, "Invalid request body")
		}

		added, err := controller.Senders().Add(account)
		if err != nil {
			return badRequest(c, err.Error())
		}
		return c.JSON(http.StatusCreated, models.APIResponse{Success: true, Data: added})
	}
}

// UpdateSenderHandler replaces a sender account
// @Summary Update sender account
// @Tags senders
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body models.SenderAccount true "Account"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/senders/{id} [put]
func UpdateSenderHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var account models.SenderAccount
		if err := c.Bind(&account); err != nil {
			return badRequest(c, "Invalid request body")
		}

		updated, err := controller.Senders().Update(c.Param("id"), account)
		if err != nil {
			if errors.Is(err, delivery.ErrSenderNotFound) {
				return fail(c, err)
			}
			return badRequest(c, err.Error())
		}
		return c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: updated})
	}
}

// DeleteSenderHandler removes a sender account
// @Summary Delete sender account
// @Tags senders
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/senders/{id} [delete]
func DeleteSenderHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := controller.Senders().Remove(c.Param("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, models.APIResponse{Success: true})
	}
}
