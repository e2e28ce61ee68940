// Package outreach applies agent results to leads. Every function returns
// new lead values and leaves its inputs untouched; status writes go through
// the funnel guard in models.
package outreach

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"outreach/internal/models"
)

// Timeline and last-action labels
const (
	ActionDraftGenerated = "Draft generated"
	ActionDraftEdited    = "Draft edited"
	ActionApproved       = "Approved"
	ActionUnapproved     = "Approval revoked"
	ActionEmailSent      = "Email sent"
	ActionLinkedInSent   = "LinkedIn message sent"
	ActionSendFailed     = "Send failed"
	ActionEngagement     = "Engagement: "
	ActionStatusChanged  = "Status changed to "
)

const dateLayout = "2006-01-02"

// ErrNotDrafted is returned when approving or editing a lead that has no draft under review
var ErrNotDrafted = errors.New("lead is not awaiting review")

// Transition records one status change made while applying results
type Transition struct {
	LeadID   string        `json:"lead_id"`
	LeadName string        `json:"lead_name"`
	From     models.Status `json:"from"`
	To       models.Status `json:"to"`
	Reason   string        `json:"reason"`
}

func touch(lead *models.Lead, action string, now time.Time, detail string) {
	lead.Touch(newEventID(), action, now.Format(dateLayout), detail)
}

// setStatus applies a guarded status write and reports the change, if any
func setStatus(lead *models.Lead, to models.Status, reason string) (Transition, bool) {
	from := lead.Status
	if from == to || lead.SetStatus(to) != nil {
		return Transition{}, false
	}
	return Transition{LeadID: lead.ID, LeadName: lead.Name, From: from, To: to, Reason: reason}, true
}

// ClampScore rounds a quality score into 0-100
func ClampScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(score))))
}

// Progress is the send progress shown before item i of n
func Progress(i, n int) int {
	if n <= 0 {
		return 100
	}
	return int(math.Round(float64(i) / float64(n) * 100))
}

// FormatScore renders an optional average quality score
func FormatScore(score *float64) string {
	if score == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}

// ApplyStatus moves a lead to a new status by operator request
func ApplyStatus(lead models.Lead, to models.Status, now time.Time) (models.Lead, *Transition, error) {
	if !to.Valid() {
		return lead, nil, fmt.Errorf("unknown status %q: %w", to, models.ErrInvalidTransition)
	}
	if !models.CanTransition(lead.Status, to) {
		return lead, nil, fmt.Errorf("%s -> %s: %w", lead.Status, to, models.ErrInvalidTransition)
	}

	out := lead.Clone()
	t, changed := setStatus(&out, to, "manual")
	if !changed {
		return out, nil, nil
	}
	touch(&out, ActionStatusChanged+to.Label(), now, "")
	return out, &t, nil
}
