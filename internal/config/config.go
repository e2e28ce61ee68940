package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"outreach/internal/models"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Default agent identifiers of the hosted outreach agents
const (
	DefaultOrchestratorAgentID = "699845de07f346cb61eddd5d"
	DefaultDeliveryAgentID     = "69984626155b7b746277f0c4"
	DefaultEngagementAgentID   = "69984626b5f6816ff2fd38aa"
)

// Agent and delivery backends
const (
	AgentBackendGateway = "gateway"
	AgentBackendOpenAI  = "openai"

	DeliveryBackendAgent    = "agent"
	DeliveryBackendSendGrid = "sendgrid"
	DeliveryBackendSMTP     = "smtp"
)

// Config holds all configuration for the application
type Config struct {
	Port     string
	Version  string
	LogLevel string

	AgentBackend        string // gateway (hosted agents) or openai (local prompt execution)
	AgentBaseURL        string
	AgentAPIKey         string
	AgentTimeout        int // Per-call agent timeout in seconds
	OrchestratorAgentID string
	DeliveryAgentID     string
	EngagementAgentID   string
	OpenAIKey           string
	OpenAIModel         string

	DeliveryBackend       string // agent, sendgrid or smtp
	SendGridAPIKey        string
	SMTPHost              string
	SMTPPort              int
	SMTPUser              string
	SMTPPass              string
	DeliveryRatePerMinute int

	SettingsFile       string // Optional TOML file with settings and sender accounts
	DatabaseURL        string // Activity log database (postgres or mysql), optional
	AMQPURL            string // RabbitMQ for lead status events, optional
	AdminUsername      string
	AdminPassword      string
	RateLimitPerMinute int
	CacheTTLMinutes    int
	SampleData         bool // Start the session with the sample leads loaded
}

// Load initializes and returns application configuration
func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:     getEnv("PORT", "8080"),
		Version:  getEnv("VERSION", "1.0.0"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AgentBackend:        strings.ToLower(getEnv("AGENT_BACKEND", AgentBackendGateway)),
		AgentBaseURL:        strings.TrimRight(getEnv("AGENT_BASE_URL", "https://agent.studio.lyzr.ai"), "/"),
		AgentAPIKey:         os.Getenv("AGENT_API_KEY"),
		AgentTimeout:        getEnvInt("AGENT_TIMEOUT", 120),
		OrchestratorAgentID: getEnv("ORCHESTRATOR_AGENT_ID", DefaultOrchestratorAgentID),
		DeliveryAgentID:     getEnv("DELIVERY_AGENT_ID", DefaultDeliveryAgentID),
		EngagementAgentID:   getEnv("ENGAGEMENT_AGENT_ID", DefaultEngagementAgentID),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		DeliveryBackend:       strings.ToLower(getEnv("DELIVERY_BACKEND", DeliveryBackendAgent)),
		SendGridAPIKey:        os.Getenv("SENDGRID_API_KEY"),
		SMTPHost:              os.Getenv("SMTP_HOST"),
		SMTPPort:              getEnvInt("SMTP_PORT", 587),
		SMTPUser:              os.Getenv("SMTP_USER"),
		SMTPPass:              os.Getenv("SMTP_PASS"),
		DeliveryRatePerMinute: getEnvInt("DELIVERY_RATE_PER_MINUTE", 30),

		SettingsFile:       os.Getenv("SETTINGS_FILE"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AMQPURL:            os.Getenv("AMQP_URL"),
		AdminUsername:      os.Getenv("ADMIN_USERNAME"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		CacheTTLMinutes:    getEnvInt("CACHE_TTL_MINUTES", 30),
		SampleData:         getEnvBool("SAMPLE_DATA", false),
	}

	return config
}

// AgentCallTimeout returns the deadline applied to each agent invocation
func (c *Config) AgentCallTimeout() time.Duration {
	if c.AgentTimeout <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.AgentTimeout) * time.Second
}

// AuthEnabled returns true when operator credentials are configured
func (c *Config) AuthEnabled() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as integer with a default fallback
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as boolean with a default fallback
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// SetupLogger configures zerolog with JSON output and single-line format
func (c *Config) SetupLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "outreach").
		Str("version", c.Version).
		Logger()

	// Set log level based on configuration
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	return logger
}

// SettingsFile is the TOML layout of SETTINGS_FILE
type SettingsFile struct {
	Settings models.Settings        `toml:"settings"`
	Senders  []models.SenderAccount `toml:"senders"`
}

// LoadSettingsFile reads initial settings and sender accounts from a TOML file.
// Missing keys keep their defaults.
func LoadSettingsFile(path string) (*SettingsFile, error) {
	file := &SettingsFile{Settings: models.DefaultSettings()}

	if _, err := toml.DecodeFile(path, file); err != nil {
		return nil, fmt.Errorf("failed to decode settings file: %w", err)
	}

	if err := file.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	for i, sender := range file.Senders {
		if err := sender.Validate(); err != nil {
			return nil, fmt.Errorf("invalid sender #%d: %w", i+1, err)
		}
	}

	return file, nil
}
