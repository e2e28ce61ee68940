package session

import (
	"context"
	"errors"

	"outreach/internal/agent"
	"outreach/internal/delivery"
	"outreach/internal/metrics"
	"outreach/internal/models"
	"outreach/internal/outreach"
)

const (
	statusDrafting   = "Researching leads and generating outreach drafts..."
	statusEngagement = "Checking Gmail for engagement signals..."
)

// DraftOutcome is the result of a draft generation run
type DraftOutcome struct {
	Drafted             []models.Lead
	AverageQualityScore *float64
	Message             string
}

// SendOutcome is the result of a send run
type SendOutcome struct {
	Results   []models.SendResult
	Succeeded int
	Failed    int
	Message   string
}

// EngagementOutcome is the result of an engagement check
type EngagementOutcome struct {
	Report  *models.EngagementReport
	Message string
}

// GenerateDrafts sends the batch to the orchestrator and moves the drafted
// leads into the collection. On failure nothing changes and the batch stays.
func (c *Controller) GenerateDrafts(ctx context.Context) (*DraftOutcome, error) {
	batch, err := c.begin(c.ids.Orchestrator, statusDrafting, func() ([]models.Lead, error) {
		if len(c.batch) == 0 {
			return nil, ErrEmptyBatch
		}
		return cloneAll(c.batch), nil
	})
	if err != nil {
		return nil, err
	}
	defer c.end()

	result, err := c.drafter.GenerateDrafts(ctx, batch)
	c.trackAgentCall(ctx, c.ids.Orchestrator, err)
	if err != nil {
		c.fail(draftFailureMessage(err))
		return nil, err
	}
	if result == nil {
		result = &models.DraftBatch{}
	}

	drafted, transitions := outreach.ApplyDrafts(batch, result, c.now())
	message := outreach.DraftsMessage(result)

	c.mu.Lock()
	c.leads = append(c.leads, drafted...)
	c.batch = without(c.batch, batch)
	c.status.StatusMessage = message
	c.mu.Unlock()

	c.observe(ctx, transitions)
	c.track(ctx, func(ctx context.Context) error {
		return c.activity.TrackDraftGeneration(ctx, len(drafted), result.AverageQualityScore)
	})
	c.logger.Info().Int("drafted", len(drafted)).Msg("Drafts generated")

	return &DraftOutcome{
		Drafted:             cloneAll(drafted),
		AverageQualityScore: result.AverageQualityScore,
		Message:             message,
	}, nil
}

// SendApproved delivers every approved draft, one call per lead in collection
// order. A failed item is recorded and the run continues; cancelling ctx stops
// the run before the next item and keeps the work already done.
func (c *Controller) SendApproved(ctx context.Context) (*SendOutcome, error) {
	approved, err := c.begin(c.ids.Delivery, "", func() ([]models.Lead, error) {
		approved := outreach.Approved(c.leads)
		if len(approved) == 0 {
			return nil, ErrNothingApproved
		}
		c.sendResults = []models.SendResult{}
		return cloneAll(approved), nil
	})
	if err != nil {
		return nil, err
	}
	defer c.end()

	results := []models.SendResult{}
	var stopErr error

	for i, lead := range approved {
		if err := ctx.Err(); err != nil {
			stopErr = err
			break
		}

		c.mu.Lock()
		c.status.Progress = outreach.Progress(i, len(approved))
		c.status.StatusMessage = outreach.SendProgressMessage(i, len(approved), lead)
		c.mu.Unlock()

		reported, sendErr := c.sender.SendMessage(ctx, lead)
		c.trackAgentCall(ctx, c.ids.Delivery, sendErr)

		now := c.now()
		errText := ""
		if sendErr != nil {
			errText = sendFailureText(sendErr)
		}
		itemResults := outreach.SendResults(lead, reported, errText, now)
		results = append(results, itemResults...)

		var transition *outreach.Transition
		c.mu.Lock()
		if idx := indexOf(c.leads, lead.ID); idx >= 0 {
			if sendErr == nil {
				c.leads[idx], transition = outreach.ApplySendSuccess(c.leads[idx], now)
			} else {
				c.leads[idx] = outreach.ApplySendFailure(c.leads[idx], errText, now)
			}
		}
		c.sendResults = append(c.sendResults, itemResults...)
		c.mu.Unlock()

		status := models.SendSuccess
		if sendErr != nil {
			status = models.SendFailed
			c.logger.Warn().Err(sendErr).Str("lead_id", lead.ID).Msg("Send failed")
		}
		metrics.RecordMessage(string(lead.Channel), status)
		c.track(ctx, func(ctx context.Context) error {
			return c.activity.TrackSend(ctx, lead.Channel, lead.Email, sendErr == nil)
		})
		if transition != nil {
			c.observe(ctx, []outreach.Transition{*transition})
		}
	}

	succeeded, failed := outreach.CountResults(results)
	message := outreach.SendMessage(results)

	c.mu.Lock()
	c.status.Progress = 100
	c.status.StatusMessage = message
	c.mu.Unlock()

	return &SendOutcome{
		Results:   results,
		Succeeded: succeeded,
		Failed:    failed,
		Message:   message,
	}, stopErr
}

// SendResults returns the results of the last send run
func (c *Controller) SendResults() []models.SendResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.SendResult{}, c.sendResults...)
}

// CheckEngagement asks the engagement monitor about every sent, hot or replied
// lead and applies the signals it reports
func (c *Controller) CheckEngagement(ctx context.Context) (*EngagementOutcome, error) {
	var settings models.Settings
	checked, err := c.begin(c.ids.Engagement, statusEngagement, func() ([]models.Lead, error) {
		checked := outreach.Engageable(c.leads)
		if len(checked) == 0 {
			return nil, ErrNothingSent
		}
		settings = c.settings
		return cloneAll(checked), nil
	})
	if err != nil {
		return nil, err
	}
	defer c.end()

	report, err := c.monitor.CheckEngagement(ctx, checked, settings)
	c.trackAgentCall(ctx, c.ids.Engagement, err)
	if err != nil {
		c.fail(engagementFailureMessage(err))
		return nil, err
	}
	if report == nil {
		report = &models.EngagementReport{}
	}
	if report.Results == nil {
		report.Results = []models.EngagementResult{}
	}

	message := outreach.EngagementMessage(report)

	c.mu.Lock()
	updated, transitions := outreach.ApplyEngagement(c.leads, checked, report.Results, c.now())
	c.leads = updated
	c.engagement = report
	c.status.StatusMessage = message
	c.mu.Unlock()

	for _, r := range report.Results {
		metrics.RecordEngagementSignal(r.SignalType)
	}
	c.observe(ctx, transitions)
	c.track(ctx, func(ctx context.Context) error {
		return c.activity.TrackEngagementCheck(ctx, len(checked), len(report.Results))
	})

	return &EngagementOutcome{Report: report, Message: message}, nil
}

// without removes the leads of drop from leads, by id
func without(leads, drop []models.Lead) []models.Lead {
	ids := make(map[string]bool, len(drop))
	for _, lead := range drop {
		ids[lead.ID] = true
	}
	out := []models.Lead{}
	for _, lead := range leads {
		if !ids[lead.ID] {
			out = append(out, lead)
		}
	}
	return out
}

// sendFailureText is the error shown on a failed send result. Direct
// delivery failures keep their own text.
func sendFailureText(err error) string {
	var deliveryErr *delivery.Error
	if errors.As(err, &deliveryErr) {
		return deliveryErr.Error()
	}
	return agent.FailureText(err)
}

func draftFailureMessage(err error) string {
	return failureMessage(err, "Failed to generate drafts. Please try again.", "An error occurred while generating drafts.")
}

func engagementFailureMessage(err error) string {
	return failureMessage(err, "Failed to check engagement.", "An error occurred while checking engagement.")
}

// failureMessage picks the alert text for a failed agent action: the agent's
// own error when it sent one, the rejected text when it sent none, and the
// generic text for transport problems.
func failureMessage(err error, rejected, generic string) string {
	var agentErr *agent.AgentError
	switch {
	case errors.As(err, &agentErr):
		if agentErr.Message != "" {
			return agentErr.Message
		}
		return rejected
	case errors.Is(err, agent.ErrTimeout):
		return generic + " The agent timed out."
	default:
		return generic
	}
}
