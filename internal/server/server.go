package server

import (
	"context"
	"net/http"
	"time"

	"outreach/internal/analytics"
	"outreach/internal/auth"
	"outreach/internal/config"
	"outreach/internal/handlers"
	"outreach/internal/metrics"
	"outreach/internal/session"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

// Deps are the collaborators the routes are served from. DB and Analytics
// are nil when no activity log is configured.
type Deps struct {
	Controller *session.Controller
	DB         *sqlx.DB
	Analytics  *analytics.Service
}

// Server represents the application server
type Server struct {
	echo        *echo.Echo
	config      *config.Config
	deps        Deps
	authManager *auth.Manager
	logger      zerolog.Logger
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps, logger zerolog.Logger) *Server {
	s := &Server{
		config: cfg,
		deps:   deps,
		logger: logger,
	}
	if cfg.AuthEnabled() {
		s.authManager = auth.NewManager(cfg.AdminUsername, cfg.AdminPassword)
	}
	return s
}

// zerologMiddleware creates a zerolog-based logging middleware for Echo
func (s *Server) zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.logger.Info().
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Msg("HTTP request")

			return err
		}
	}
}

// rateLimiter limits API calls per client IP
func (s *Server) rateLimiter() echo.MiddlewareFunc {
	perMinute := s.config.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 120
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]any{
				"success": false,
				"error":   "Too many requests",
			})
		},
	})
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() {
	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(s.zerologMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(metrics.Middleware())

	s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() {
	controller := s.deps.Controller

	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)
	s.echo.GET("/metrics", metrics.Handler())

	// Health endpoints stay outside the API group for monitoring
	s.echo.GET("/healthz", handlers.HealthHandler(s.config.Version))
	s.echo.GET("/healthz/db", handlers.DBHealthHandler(s.deps.DB))

	api := s.echo.Group("/api", s.rateLimiter())
	api.GET("/", handlers.RootHandler(s.config.Version))

	if s.authManager != nil {
		api.POST("/admin/login", handlers.AdminLoginHandler(s.authManager))
		api.POST("/admin/logout", handlers.AdminLogoutHandler(s.authManager), auth.Middleware(s.authManager))
		api = api.Group("", auth.Middleware(s.authManager))
	}

	api.GET("/status", handlers.SessionStatusHandler(controller))
	api.GET("/dashboard", handlers.DashboardHandler(controller))

	api.GET("/leads", handlers.ListLeadsHandler(controller))
	api.GET("/leads/:id", handlers.GetLeadHandler(controller))
	api.PATCH("/leads/:id/draft", handlers.EditDraftHandler(controller))
	api.PUT("/leads/:id/approval", handlers.ApprovalHandler(controller))
	api.PUT("/leads/:id/status", handlers.StatusHandler(controller))
	api.DELETE("/leads/:id", handlers.DeleteLeadHandler(controller))

	api.GET("/batch", handlers.ListBatchHandler(controller))
	api.POST("/batch", handlers.AddLeadHandler(controller))
	api.POST("/batch/bulk", handlers.AddBulkHandler(controller))
	api.DELETE("/batch", handlers.ClearBatchHandler(controller))
	api.DELETE("/batch/:id", handlers.RemoveBatchLeadHandler(controller))

	api.POST("/drafts", handlers.GenerateDraftsHandler(controller))
	api.GET("/review", handlers.ReviewHandler(controller))
	api.PUT("/review/approval", handlers.ApproveAllHandler(controller))
	api.POST("/send", handlers.SendHandler(controller))
	api.GET("/send/results", handlers.SendResultsHandler(controller))
	api.POST("/engagement/check", handlers.CheckEngagementHandler(controller))
	api.GET("/engagement", handlers.EngagementHandler(controller))

	api.GET("/settings", handlers.GetSettingsHandler(controller))
	api.PUT("/settings", handlers.UpdateSettingsHandler(controller))
	api.GET("/senders", handlers.ListSendersHandler(controller))
	api.POST("/senders", handlers.AddSenderHandler(controller))
	api.PUT("/senders/:id", handlers.UpdateSenderHandler(controller))
	api.DELETE("/senders/:id", handlers.DeleteSenderHandler(controller))
	api.PUT("/sample-data", handlers.SampleDataHandler(controller))

	api.GET("/activity", handlers.ActivityHandler(s.deps.Analytics))
	api.POST("/research/tags", handlers.TagsHandler(controller))
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Port).Msg("Server starting")
	if err := s.echo.Start(":" + s.config.Port); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Server shutting down")
	return s.echo.Shutdown(ctx)
}
