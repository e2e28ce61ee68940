package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "outreach/docs"
	"outreach/internal/agent"
	"outreach/internal/analytics"
	"outreach/internal/config"
	"outreach/internal/database"
	"outreach/internal/delivery"
	"outreach/internal/events"
	"outreach/internal/models"
	"outreach/internal/server"
	"outreach/internal/session"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// @title Outreach API
// @version 1.0
// @description Lead intake, draft review, sending and engagement tracking for sales outreach.
// @BasePath /
func main() {
	cfg := config.Load()
	logger := cfg.SetupLogger()

	settings := models.DefaultSettings()
	var accounts []models.SenderAccount
	if cfg.SettingsFile != "" {
		file, err := config.LoadSettingsFile(cfg.SettingsFile)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.SettingsFile).Msg("Failed to load settings file")
		}
		settings = file.Settings
		accounts = file.Senders
		logger.Info().Int("senders", len(accounts)).Msg("Settings file loaded")
	}
	pool := delivery.NewPool(accounts)

	ids := agent.IDs{
		Orchestrator: cfg.OrchestratorAgentID,
		Delivery:     cfg.DeliveryAgentID,
		Engagement:   cfg.EngagementAgentID,
	}
	client := agent.NewClient(newInvoker(cfg, ids, logger), ids, cfg.AgentCallTimeout(), logger)

	db, activity := openActivityLog(cfg, logger)
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	publisher := openPublisher(cfg, logger)
	defer func() { _ = publisher.Close() }()

	opts := session.Options{
		Drafter:    client,
		Sender:     newSender(cfg, client, pool, logger),
		Monitor:    client,
		AgentIDs:   ids,
		Settings:   settings,
		Senders:    pool,
		Publisher:  publisher,
		TagTTL:     time.Duration(cfg.CacheTTLMinutes) * time.Minute,
		SampleData: cfg.SampleData,
		Logger:     logger,
	}
	if activity != nil {
		opts.Activity = activity
	}
	controller := session.New(opts)

	srv := server.New(cfg, server.Deps{Controller: controller, DB: db, Analytics: activity}, logger)
	srv.Initialize()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
	logger.Info().Msg("Server stopped")
}

// newInvoker picks the agent backend. The openai backend answers the
// orchestrator locally and hands the other agents to the gateway.
func newInvoker(cfg *config.Config, ids agent.IDs, logger zerolog.Logger) agent.Invoker {
	gateway := agent.NewGatewayInvoker(cfg.AgentBaseURL, cfg.AgentAPIKey, nil)

	switch cfg.AgentBackend {
	case config.AgentBackendOpenAI:
		if cfg.OpenAIKey == "" {
			logger.Fatal().Msg("OPENAI_API_KEY is required for the openai agent backend")
		}
		logger.Info().Str("model", cfg.OpenAIModel).Msg("Using OpenAI agent backend")
		return agent.NewOpenAIInvoker(cfg.OpenAIKey, cfg.OpenAIModel, ids, gateway)
	case config.AgentBackendGateway:
		if cfg.AgentAPIKey == "" {
			logger.Warn().Msg("AGENT_API_KEY is not set, agent calls will be rejected")
		}
		return gateway
	default:
		logger.Fatal().Str("backend", cfg.AgentBackend).Msg("Unknown agent backend")
		return nil
	}
}

// newSender picks the delivery backend
func newSender(cfg *config.Config, client *agent.Client, pool *delivery.Pool, logger zerolog.Logger) session.Sender {
	switch cfg.DeliveryBackend {
	case config.DeliveryBackendSendGrid:
		logger.Info().Msg("Using SendGrid delivery")
		return delivery.NewService(delivery.NewSendGridMailer(cfg.SendGridAPIKey, ""), pool, cfg.DeliveryRatePerMinute, cfg.AgentCallTimeout(), logger)
	case config.DeliveryBackendSMTP:
		logger.Info().Str("host", cfg.SMTPHost).Msg("Using SMTP delivery")
		mailer := delivery.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
		return delivery.NewService(mailer, pool, cfg.DeliveryRatePerMinute, cfg.AgentCallTimeout(), logger)
	case config.DeliveryBackendAgent:
		return client
	default:
		logger.Fatal().Str("backend", cfg.DeliveryBackend).Msg("Unknown delivery backend")
		return nil
	}
}

// openActivityLog connects the optional activity log. Failures are logged and
// the server runs without it.
func openActivityLog(cfg *config.Config, logger zerolog.Logger) (*sqlx.DB, *analytics.Service) {
	if cfg.DatabaseURL == "" {
		logger.Info().Msg("DATABASE_URL not set, activity log disabled")
		return nil, nil
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Warn().Err(err).Msg("Database connection failed, activity log disabled")
		return nil, nil
	}

	store := database.NewActivityStore(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.CreateTables(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to prepare activity tables")
	}

	service, err := analytics.NewService(store, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Analytics service unavailable")
		return db, nil
	}
	logger.Info().Str("driver", db.DriverName()).Msg("Activity log enabled")
	return db, service
}

// openPublisher connects the optional event bus
func openPublisher(cfg *config.Config, logger zerolog.Logger) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NoopPublisher{}
	}

	publisher, err := events.NewRabbitMQPublisher(cfg.AMQPURL, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("RabbitMQ unavailable, lead events disabled")
		return events.NoopPublisher{}
	}
	logger.Info().Msg("Publishing lead events to RabbitMQ")
	return publisher
}
