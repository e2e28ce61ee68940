package outreach

import (
	"fmt"
	"time"

	"outreach/internal/models"
)

// Approved returns the drafted leads approved for sending, in collection order
func Approved(leads []models.Lead) []models.Lead {
	out := []models.Lead{}
	for _, lead := range leads {
		if lead.Approved && lead.Status == models.StatusDrafted {
			out = append(out, lead)
		}
	}
	return out
}

// ApplySendSuccess marks a lead as sent and clears its approval
func ApplySendSuccess(lead models.Lead, now time.Time) (models.Lead, *Transition) {
	out := lead.Clone()
	out.Approved = false

	action := ActionEmailSent
	detail := out.SubjectLine
	if out.Channel == models.ChannelLinkedIn {
		action = ActionLinkedInSent
		detail = out.LinkedInURL
	}

	var transition *Transition
	if t, ok := setStatus(&out, models.StatusSent, "send"); ok {
		transition = &t
	}
	out.DaysSinceContact = 0
	touch(&out, action, now, detail)
	return out, transition
}

// ApplySendFailure records a failed attempt. Status and approval are kept so
// the send can be retried.
func ApplySendFailure(lead models.Lead, errText string, now time.Time) models.Lead {
	out := lead.Clone()
	out.Timeline = append(out.Timeline, models.TimelineEvent{
		ID:      newEventID(),
		Channel: out.Channel,
		Action:  ActionSendFailed,
		Date:    now.Format(dateLayout),
		Detail:  errText,
	})
	return out
}

// SendResults builds the result records for one attempt. Results reported by
// the delivery agent are kept as-is; otherwise one record is synthesized.
func SendResults(lead models.Lead, reported []models.SendResult, errText string, now time.Time) []models.SendResult {
	timestamp := now.UTC().Format(time.RFC3339)

	if errText != "" {
		return []models.SendResult{{
			LeadID:    lead.ID,
			LeadName:  lead.Name,
			Email:     lead.Email,
			Status:    models.SendFailed,
			Timestamp: timestamp,
			Error:     errText,
		}}
	}

	if len(reported) > 0 {
		out := make([]models.SendResult, len(reported))
		for i, r := range reported {
			if r.LeadID == "" {
				r.LeadID = lead.ID
			}
			out[i] = r
		}
		return out
	}

	return []models.SendResult{{
		LeadID:    lead.ID,
		LeadName:  lead.Name,
		Email:     lead.Email,
		Status:    models.SendSuccess,
		Timestamp: timestamp,
	}}
}

// CountResults tallies successful and failed send results
func CountResults(results []models.SendResult) (succeeded, failed int) {
	for _, r := range results {
		switch {
		case r.Succeeded():
			succeeded++
		case r.Status == models.SendFailed:
			failed++
		}
	}
	return succeeded, failed
}

// SendProgressMessage is the status line shown while item i of n is sent
func SendProgressMessage(i, n int, lead models.Lead) string {
	return fmt.Sprintf("Sending email %d of %d to %s...", i+1, n, lead.Name)
}

// SendMessage is the status line shown when a send run finishes
func SendMessage(results []models.SendResult) string {
	succeeded, failed := CountResults(results)
	return fmt.Sprintf("Sending complete. %d sent, %d failed.", succeeded, failed)
}
