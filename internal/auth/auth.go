package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"outreach/internal/models"

	"github.com/labstack/echo/v4"
)

// ErrInvalidCredentials is returned for a wrong username or password
var ErrInvalidCredentials = errors.New("invalid credentials")

// Manager issues and validates operator tokens
type Manager struct {
	username    string
	password    string
	tokens      map[string]time.Time
	mu          sync.Mutex
	tokenExpiry time.Duration
	now         func() time.Time
}

// NewManager creates a manager for one operator account
func NewManager(username, password string) *Manager {
	return &Manager{
		username:    username,
		password:    password,
		tokens:      make(map[string]time.Time),
		tokenExpiry: 24 * time.Hour,
		now:         time.Now,
	}
}

// Authenticate validates the credentials and returns a fresh token
func (am *Manager) Authenticate(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(am.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(am.password)) == 1
	if am.username == "" || !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	am.mu.Lock()
	defer am.mu.Unlock()
	am.cleanupExpiredTokens()
	am.tokens[token] = am.now().Add(am.tokenExpiry)

	return token, nil
}

// ValidateToken checks if a token is known and not expired
func (am *Manager) ValidateToken(token string) bool {
	am.mu.Lock()
	defer am.mu.Unlock()

	expiry, exists := am.tokens[token]
	if !exists {
		return false
	}
	if am.now().After(expiry) {
		delete(am.tokens, token)
		return false
	}
	return true
}

// Revoke forgets a token
func (am *Manager) Revoke(token string) {
	am.mu.Lock()
	defer am.mu.Unlock()
	delete(am.tokens, token)
}

// cleanupExpiredTokens removes expired tokens; caller holds the lock
func (am *Manager) cleanupExpiredTokens() {
	now := am.now()
	for token, expiry := range am.tokens {
		if now.After(expiry) {
			delete(am.tokens, token)
		}
	}
}

// TokenFromRequest reads a bearer token from the Authorization header or the token query parameter
func TokenFromRequest(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.QueryParam("token")
}

// Middleware rejects requests without a valid operator token
func Middleware(authManager *Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" || !authManager.ValidateToken(token) {
				return c.JSON(http.StatusUnauthorized, models.APIResponse{
					Success: false,
					Error:   "Unauthorized. Please login first.",
				})
			}

			c.Set("auth_token", token)
			return next(c)
		}
	}
}
