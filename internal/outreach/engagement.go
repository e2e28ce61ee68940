package outreach

import (
	"fmt"
	"time"

	"outreach/internal/models"
	"outreach/internal/utils"

	"github.com/google/uuid"
)

func newEventID() string {
	return uuid.NewString()
}

// Engageable returns leads whose status is sent, hot_lead or replied
func Engageable(leads []models.Lead) []models.Lead {
	out := []models.Lead{}
	for _, lead := range leads {
		if lead.Status.IsEngageable() {
			out = append(out, lead)
		}
	}
	return out
}

// ApplyEngagement applies monitor results to the checked leads. A result
// is matched by lead id when it names a lead, otherwise by case-insensitive name with
// the first checked lead winning. Leads outside the checked set never change.
func ApplyEngagement(leads []models.Lead, checked []models.Lead, results []models.EngagementResult, now time.Time) ([]models.Lead, []Transition) {
	candidates := make(map[string]bool, len(checked))
	for _, lead := range checked {
		candidates[lead.ID] = true
	}

	out := make([]models.Lead, len(leads))
	for i, lead := range leads {
		out[i] = lead.Clone()
	}

	transitions := []Transition{}
	for _, r := range results {
		idx := matchEngagement(out, candidates, r)
		if idx < 0 {
			continue
		}

		lead := &out[idx]
		if to, ok := models.StatusForSignal(r.SignalType); ok {
			if t, changed := setStatus(lead, to, "engagement"); changed {
				transitions = append(transitions, t)
			}
		}

		lead.EngagementSignal = r.SignalType
		if r.DaysSinceContact != nil {
			lead.DaysSinceContact = *r.DaysSinceContact
		}

		label := r.SignalType
		if label == "" {
			label = "checked"
		}
		touch(lead, ActionEngagement+label, now, r.FollowUpDraft)
	}

	return out, transitions
}

func matchEngagement(leads []models.Lead, candidates map[string]bool, r models.EngagementResult) int {
	// an id that names no lead falls back to the name
	if r.LeadID != "" {
		for i, lead := range leads {
			if lead.ID == r.LeadID {
				if candidates[lead.ID] {
					return i
				}
				return -1
			}
		}
	}

	name := utils.NormalizeName(r.LeadName)
	if name == "" {
		return -1
	}
	for i, lead := range leads {
		if candidates[lead.ID] && utils.NormalizeName(lead.Name) == name {
			return i
		}
	}
	return -1
}

// EngagementMessage is the status line shown after an engagement check
func EngagementMessage(report *models.EngagementReport) string {
	return fmt.Sprintf("Engagement check complete. %d hot leads, %d follow-ups due.", report.HotLeadsCount, report.FollowUpsDue)
}
