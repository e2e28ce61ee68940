package handlers

import (
	"context"
	"errors"
	"net/http"

	"outreach/internal/agent"
	"outreach/internal/delivery"
	"outreach/internal/intake"
	"outreach/internal/models"
	"outreach/internal/outreach"
	"outreach/internal/session"

	"github.com/labstack/echo/v4"
)

// statusFor maps a domain error to an HTTP status
func statusFor(err error) int {
	var validationErr *intake.ValidationError

	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, intake.ErrNoValidLeads),
		errors.Is(err, session.ErrEmptyBatch),
		errors.Is(err, session.ErrNothingApproved),
		errors.Is(err, session.ErrNothingSent),
		errors.Is(err, session.ErrUnknownFilter):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrLeadNotFound),
		errors.Is(err, delivery.ErrSenderNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrBusy),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, outreach.ErrNotDrafted):
		return http.StatusConflict
	case errors.Is(err, agent.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	// agent rejections and transport failures
	return http.StatusBadGateway
}

// fail writes the error envelope
func fail(c echo.Context, err error) error {
	return c.JSON(statusFor(err), models.APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.APIResponse{
		Success: false,
		Error:   message,
	})
}
