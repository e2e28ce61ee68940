package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"outreach/internal/metrics"
	"outreach/internal/models"

	"github.com/rs/zerolog"
)

// DefaultTimeout applies when a client is built without a timeout
const DefaultTimeout = 120 * time.Second

// Client exposes the three agent intents as typed calls
type Client struct {
	invoker Invoker
	codec   PromptCodec
	ids     IDs
	timeout time.Duration
	logger  zerolog.Logger
}

// NewClient creates a typed agent client over an invoker
func NewClient(invoker Invoker, ids IDs, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		invoker: invoker,
		ids:     ids,
		timeout: timeout,
		logger:  logger.With().Str("component", "agent").Logger(),
	}
}

// IDs returns the configured agent identifiers
func (c *Client) IDs() IDs {
	return c.ids
}

// GenerateDrafts asks the orchestrator to research and draft outreach for leads
func (c *Client) GenerateDrafts(ctx context.Context, leads []models.Lead) (*models.DraftBatch, error) {
	message, err := c.codec.DraftPrompt(leads)
	if err != nil {
		return nil, err
	}

	raw, err := c.call(ctx, c.ids.Orchestrator, message)
	if err != nil {
		return nil, err
	}

	batch := &models.DraftBatch{}
	if err := c.codec.Decode(raw, batch); err != nil {
		return nil, fmt.Errorf("orchestrator result: %w", err)
	}
	return batch, nil
}

// SendMessage asks the delivery agent to send one lead's message. The returned
// results are whatever the agent reported and may be empty.
func (c *Client) SendMessage(ctx context.Context, lead models.Lead) ([]models.SendResult, error) {
	raw, err := c.call(ctx, c.ids.Delivery, c.codec.SendPrompt(lead))
	if err != nil {
		return nil, err
	}

	var data struct {
		Results []models.SendResult `json:"results"`
	}
	if err := c.codec.Decode(raw, &data); err != nil {
		// Delivery succeeded; an unreadable report just means no per-item detail
		c.logger.Debug().Err(err).Str("lead_id", lead.ID).Msg("Ignoring unreadable delivery result")
		return nil, nil
	}
	return data.Results, nil
}

// CheckEngagement asks the engagement monitor for signals on leads
func (c *Client) CheckEngagement(ctx context.Context, leads []models.Lead, settings models.Settings) (*models.EngagementReport, error) {
	message, err := c.codec.EngagementPrompt(leads, settings)
	if err != nil {
		return nil, err
	}

	raw, err := c.call(ctx, c.ids.Engagement, message)
	if err != nil {
		return nil, err
	}

	report := &models.EngagementReport{}
	if err := c.codec.Decode(raw, report); err != nil {
		return nil, fmt.Errorf("engagement monitor result: %w", err)
	}
	return report, nil
}

func (c *Client) call(ctx context.Context, agentID, message string) (json.RawMessage, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.invoker.Invoke(callCtx, message, agentID)
	duration := time.Since(start)

	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.Canceled):
			err = fmt.Errorf("agent %s: %w", agentID, context.Canceled)
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded):
			err = fmt.Errorf("agent %s: %w", agentID, ErrTimeout)
		default:
			err = fmt.Errorf("agent %s request failed: %w", agentID, err)
		}
		metrics.RecordAgentCall(agentID, outcome(err), duration)
		c.logger.Error().Err(err).Str("agent_id", agentID).Dur("duration", duration).Msg("Agent call failed")
		return nil, err
	}

	if resp == nil || !resp.Success {
		agentErr := &AgentError{AgentID: agentID}
		if resp != nil {
			agentErr.Message = resp.Error
		}
		metrics.RecordAgentCall(agentID, "agent_error", duration)
		c.logger.Warn().Str("agent_id", agentID).Str("error", agentErr.Message).Msg("Agent reported failure")
		return nil, agentErr
	}

	metrics.RecordAgentCall(agentID, "success", duration)
	c.logger.Info().Str("agent_id", agentID).Dur("duration", duration).Msg("Agent call completed")

	if resp.Response == nil {
		return nil, nil
	}
	return resp.Response.Result, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "transport_error"
	}
}
