package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name     string
		manager  *Manager
		username string
		password string
		wantErr  bool
	}{
		{"valid credentials", NewManager("admin", "secret"), "admin", "secret", false},
		{"wrong password", NewManager("admin", "secret"), "admin", "nope", true},
		{"wrong username", NewManager("admin", "secret"), "root", "secret", true},
		{"auth not configured", NewManager("", ""), "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.manager.Authenticate(tt.username, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.True(t, tt.manager.ValidateToken(token))
		})
	}
}

func TestValidateToken_Expiry(t *testing.T) {
	now := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	am := NewManager("admin", "secret")
	am.now = func() time.Time { return now }

	token, err := am.Authenticate("admin", "secret")
	require.NoError(t, err)

	now = now.Add(23 * time.Hour)
	assert.True(t, am.ValidateToken(token))

	now = now.Add(2 * time.Hour)
	assert.False(t, am.ValidateToken(token))
	assert.Empty(t, am.tokens)
}

func TestRevoke(t *testing.T) {
	am := NewManager("admin", "secret")
	token, err := am.Authenticate("admin", "secret")
	require.NoError(t, err)

	am.Revoke(token)
	assert.False(t, am.ValidateToken(token))
	assert.False(t, am.ValidateToken("unknown"))
}

func TestMiddleware(t *testing.T) {
	am := NewManager("admin", "secret")
	token, err := am.Authenticate("admin", "secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		query    string
		expected int
	}{
		{"bearer header", "Bearer " + token, "", http.StatusOK},
		{"query parameter", "", token, http.StatusOK},
		{"missing token", "", "", http.StatusUnauthorized},
		{"bad token", "Bearer forged", "", http.StatusUnauthorized},
	}

	e := echo.New()
	handler := Middleware(am)(func(c echo.Context) error {
		assert.Equal(t, token, c.Get("auth_token"))
		return c.NoContent(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/leads"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()

			require.NoError(t, handler(e.NewContext(req, rec)))
			assert.Equal(t, tt.expected, rec.Code)
			if tt.expected == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "Unauthorized. Please login first.")
			}
		})
	}
}
