package handlers

import (
	"net/http"

	"outreach/internal/auth"
	"outreach/internal/models"

	"github.com/labstack/echo/v4"
)

// AdminLoginHandler exchanges operator credentials for a bearer token
// @Summary Operator login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.AdminAuthRequest true "Credentials"
// @Success 200 {object} models.AdminAuthResponse
// @Failure 401 {object} models.AdminAuthResponse
// @Router /api/admin/login [post]
func AdminLoginHandler(authManager *auth.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.AdminAuthRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.AdminAuthResponse{
				Success: false,
				Error:   "Invalid request body",
			})
		}

		token, err := authManager.Authenticate(req.Username, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, models.AdminAuthResponse{
				Success: false,
				Error:   "Invalid credentials",
			})
		}

		return c.JSON(http.StatusOK, models.AdminAuthResponse{Success: true, Token: token})
	}
}

// AdminLogoutHandler revokes the caller's token
// @Summary Operator logout
// @Tags admin
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /api/admin/logout [post]
func AdminLogoutHandler(authManager *auth.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		authManager.Revoke(auth.TokenFromRequest(c))
		return c.JSON(http.StatusOK, models.APIResponse{Success: true})
	}
}
